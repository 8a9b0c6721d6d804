package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/logger"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/model"
)

func identifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "identify <text|url|->",
		Short: "识别文本或链接对应的公司名称",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.Close()

			name, err := a.engine.Identify(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
}

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <text|url|->",
		Short: "生成五段式竞争分析与摘要，并保存到历史记录",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.engine.Analyze(cmd.Context(), input)
			if err != nil {
				return err
			}
			if err := a.store.SaveAnalysis(cmd.Context(), report); err != nil {
				logger.Log.Errorf("保存分析失败: %v", err)
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

func compareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <text|url> <text|url>",
		Short: "对比两家公司，并保存到对比历史",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.Close()

			cmp, err := a.engine.Compare(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if err := a.store.SaveComparison(cmd.Context(), cmp); err != nil {
				logger.Log.Errorf("保存对比失败: %v", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n\n%s\n", cmp.Key(), cmp.Result)
			return nil
		},
	}
}

func researchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "research <company name>",
		Short: "搜索公司相关报道并生成分析",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.engine.Research(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if err := a.store.SaveAnalysis(cmd.Context(), report); err != nil {
				logger.Log.Errorf("保存分析失败: %v", err)
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

func classifyCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "classify <feedback.csv|->",
		Short: "对 CSV 中的 feedback 列分类，追加 category 列",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = os.Stdin
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			out := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			a, err := newApp(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.classifier.ClassifyCSV(cmd.Context(), in, out)
			if err != nil {
				return err
			}
			if outPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "已分类 %d 条反馈，写入 %s\n", n, outPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "输出文件，默认标准输出")
	return cmd
}

func historyCmd() *cobra.Command {
	var comparisons bool
	cmd := &cobra.Command{
		Use:   "history [company]",
		Short: "查看分析历史或对比历史",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()
			out := cmd.OutOrStdout()

			if comparisons {
				list, err := a.store.ListComparisons(cmd.Context())
				if err != nil {
					return err
				}
				for _, c := range list {
					fmt.Fprintf(out, "# %s (%s)\n\n%s\n\n", c.Key(), c.CreatedAt.Format(time.DateTime), c.Result)
				}
				return nil
			}

			if len(args) == 1 {
				report, err := a.store.GetAnalysis(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("%s: %w", args[0], err)
				}
				printReport(out, report)
				return nil
			}

			list, err := a.store.ListAnalyses(cmd.Context())
			if err != nil {
				return err
			}
			for _, r := range list {
				fmt.Fprintf(out, "%s\t%s\t%s\n", r.CreatedAt.Format(time.DateTime), r.Company, r.Summary)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&comparisons, "comparisons", false, "显示对比历史")
	return cmd
}

func insightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "管理针对竞争对手的改进与保持笔记",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "列出所有笔记",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			list, err := a.store.ListInsights(cmd.Context())
			if err != nil {
				return err
			}
			for _, in := range list {
				printInsight(cmd.OutOrStdout(), in)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <company>",
		Short: "查看某个公司的笔记",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			in, err := a.store.GetInsight(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			printInsight(cmd.OutOrStdout(), in)
			return nil
		},
	})

	var improve, keep string
	set := &cobra.Command{
		Use:   "set <company>",
		Short: "新建或更新笔记",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.store.SaveInsight(cmd.Context(), &model.Insight{
				Company:   args[0],
				Improve:   improve,
				Keep:      keep,
				UpdatedAt: time.Now(),
			})
		},
	}
	set.Flags().StringVar(&improve, "improve", "", "需要改进的地方")
	set.Flags().StringVar(&keep, "keep", "", "需要保持的地方")
	cmd.AddCommand(set)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <company>",
		Short: "删除笔记",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.store.DeleteInsight(cmd.Context(), args[0])
		},
	})

	return cmd
}

func printReport(w io.Writer, r *model.Report) {
	fmt.Fprintf(w, "# %s\n", r.Company)
	if r.Source != "" {
		fmt.Fprintf(w, "Source: %s\n", r.Source)
	}
	fmt.Fprintf(w, "\n%s\n\nCompany Summary: %s\n", r.Analysis, r.Summary)
}

func printInsight(w io.Writer, in *model.Insight) {
	fmt.Fprintf(w, "# %s\nImprove: %s\nKeep: %s\n\n", in.Company, in.Improve, in.Keep)
}
