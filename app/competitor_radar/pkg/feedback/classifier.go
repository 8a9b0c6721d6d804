// Package feedback 将用户反馈归入固定的四个类别
package feedback

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/llm"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/logger"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/model"
)

const (
	feedbackColumn = "feedback"
	categoryColumn = "category"
)

// ErrMissingFeedbackColumn CSV 表头中没有 feedback 列
var ErrMissingFeedbackColumn = errors.New("the CSV must contain a 'feedback' column")

// Classifier 反馈分类器
type Classifier struct {
	client llm.Client
}

// NewClassifier 创建分类器
func NewClassifier(client llm.Client) *Classifier {
	return &Classifier{client: client}
}

// Classify 对单条反馈分类，无法识别的回复归为 Other
func (c *Classifier) Classify(ctx context.Context, text string) (model.FeedbackCategory, error) {
	if strings.TrimSpace(text) == "" {
		return model.CategoryOther, nil
	}
	out, err := c.client.Complete(ctx, llm.Request{
		Prompt:      classifyPrompt(text),
		Temperature: 0,
	})
	if err != nil {
		return "", llm.Wrap("classify", err)
	}
	return ParseCategory(out), nil
}

// ParseCategory 将模型回复映射到固定类别
func ParseCategory(reply string) model.FeedbackCategory {
	reply = strings.ToLower(strings.Trim(strings.TrimSpace(reply), ".*\"'"))
	reply = strings.TrimLeft(reply, "0123456789.) ")
	for _, c := range model.FeedbackCategories {
		if strings.HasPrefix(reply, strings.ToLower(string(c))) {
			return c
		}
	}
	return model.CategoryOther
}

// ClassifyCSV 读取带 feedback 列的 CSV，追加 category 列后写出。返回处理的行数。
func (c *Classifier) ClassifyCSV(ctx context.Context, r io.Reader, w io.Writer) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, ErrMissingFeedbackColumn
		}
		return 0, fmt.Errorf("read csv header: %w", err)
	}
	col := -1
	for i, name := range header {
		if strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) == feedbackColumn {
			col = i
			break
		}
	}
	if col < 0 {
		return 0, ErrMissingFeedbackColumn
	}

	records, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("read csv: %w", err)
	}

	out := make([][]string, 0, len(records)+1)
	out = append(out, append(header, categoryColumn))
	for i, rec := range records {
		text := ""
		if col < len(rec) {
			text = rec[col]
		}
		category, err := c.Classify(ctx, text)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		out = append(out, append(rec, string(category)))
	}
	logger.Log.Infof("反馈分类完成，共 %d 条", len(records))

	writer := csv.NewWriter(w)
	if err := writer.WriteAll(out); err != nil {
		return 0, fmt.Errorf("write csv: %w", err)
	}
	return len(records), nil
}

func classifyPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("Classify the following user feedback into one of these categories:\n")
	for i, c := range model.FeedbackCategories {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, c)
	}
	fmt.Fprintf(&sb, "\nFeedback: %s\n\nReply with only the category name.\n", text)
	return sb.String()
}
