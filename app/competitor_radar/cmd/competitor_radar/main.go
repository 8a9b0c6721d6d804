package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/article"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/cache"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/config"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/engine"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/feedback"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/llm"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/logger"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/search/factory"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/storage"
)

const defaultConfigPath = "configs/config.yaml"

// app 一次命令执行所需的全部组件
type app struct {
	cfg        *config.Config
	engine     *engine.Engine
	classifier *feedback.Classifier
	store      *storage.Storage
	closers    []func() error
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Log.Warnf("关闭资源失败: %v", err)
		}
	}
}

var (
	configPath string
	cfg        *config.Config
)

func main() {
	root := &cobra.Command{
		Use:           "competitor_radar",
		Short:         "竞争对手分析助手：识别公司、生成五段式竞争分析、对比两家公司、分类用户反馈",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return fmt.Errorf("无法加载配置文件: %w", err)
			}
			if err := logger.InitLogger(c.Log.Level, c.Log.File); err != nil {
				return fmt.Errorf("无法初始化日志: %w", err)
			}
			cfg = c
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "配置文件路径")

	root.AddCommand(
		identifyCmd(),
		analyzeCmd(),
		compareCmd(),
		researchCmd(),
		classifyCmd(),
		historyCmd(),
		insightsCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "错误:", err)
		os.Exit(1)
	}
}

// loadConfig 未显式指定且默认配置不存在时使用默认值
func loadConfig(path string, explicit bool) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !explicit {
		c := &config.Config{}
		config.ApplyEnv(c)
		config.ApplyDefaults(c)
		return c, nil
	}
	return config.LoadConfig(path)
}

// newApp 初始化 LLM、抓取、搜索、缓存与存储。needLLM 为 false 时只打开存储。
func newApp(ctx context.Context, needLLM bool) (*app, error) {
	a := &app{cfg: cfg}

	store, err := storage.NewStorage(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}
	a.store = store
	a.closers = append(a.closers, store.Close)

	if !needLLM {
		return a, nil
	}

	client, err := llm.New(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	searcher, err := factory.NewSearcher(cfg.Search)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("搜索客户端初始化失败: %w", err)
	}

	opts := []engine.Option{}
	if searcher != nil {
		opts = append(opts, engine.WithSearcher(searcher))
	}
	if cfg.Redis.Host != "" {
		rc, err := cache.New(ctx, cfg.Redis)
		if err != nil {
			logger.Log.Warnf("redis 不可用，跳过缓存: %v", err)
		} else {
			opts = append(opts, engine.WithCache(rc))
			a.closers = append(a.closers, rc.Close)
		}
	}

	fetcher := article.NewFetcher(time.Duration(cfg.Fetch.Timeout) * time.Second)
	a.engine = engine.NewEngine(cfg, client, fetcher, opts...)
	a.classifier = feedback.NewClassifier(client)
	return a, nil
}

// readInput 将参数拼接为输入，"-" 表示从标准输入读取
func readInput(args []string) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return strings.Join(args, " "), nil
}
