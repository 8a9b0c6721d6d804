package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/llm"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/model"
)

// Summarizer 将分析压缩为一段摘要
type Summarizer struct {
	client llm.Client
}

// NewSummarizer 创建摘要器
func NewSummarizer(client llm.Client) *Summarizer {
	return &Summarizer{client: client}
}

// Summarize 返回单段摘要，模型返回的多段内容会被合并为一段
func (s *Summarizer) Summarize(ctx context.Context, doc *model.Analysis) (string, error) {
	out, err := s.client.Complete(ctx, llm.Request{
		Prompt:      summaryPrompt(doc.String()),
		Temperature: 0,
	})
	if err != nil {
		return "", llm.Wrap("summarize", err)
	}
	return strings.Join(strings.Fields(out), " "), nil
}

// Comparator 对比两家公司的分析
type Comparator struct {
	client llm.Client
}

// NewComparator 创建对比器
func NewComparator(client llm.Client) *Comparator {
	return &Comparator{client: client}
}

// Compare 生成对比结果，结果中必须恰好包含一个 "Combined Summary:" 段落
func (c *Comparator) Compare(ctx context.Context, nameA string, docA *model.Analysis, nameB string, docB *model.Analysis) (*model.Comparison, error) {
	req := llm.Request{
		Prompt:      comparePrompt(nameA, docA.String(), nameB, docB.String()),
		Temperature: 0,
	}

	var lastErr error
	for attempt := 0; attempt <= structuralRetries; attempt++ {
		out, err := c.client.Complete(ctx, req)
		if err != nil {
			return nil, llm.Wrap("compare", err)
		}
		if n := strings.Count(out, CombinedSummaryMarker); n != 1 {
			lastErr = fmt.Errorf("comparison has %d %q paragraphs, want 1", n, CombinedSummaryMarker)
			continue
		}
		return &model.Comparison{
			CompanyA:  nameA,
			CompanyB:  nameB,
			Result:    out,
			CreatedAt: time.Now(),
		}, nil
	}
	return nil, llm.Wrap("compare", lastErr)
}
