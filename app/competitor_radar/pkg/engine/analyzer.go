package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/llm"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/logger"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/model"
)

const (
	analysisTemperature = 0.2
	// 结构校验失败后的额外尝试次数
	structuralRetries = 1
	partialSeparator  = "\n\n---\n\n"
)

// ErrNoAnalyses 合并时没有任何分块分析
var ErrNoAnalyses = errors.New("no analyses to combine")

// ChunkAnalyzer 对单个分块生成五段式分析
type ChunkAnalyzer struct {
	client llm.Client
}

// NewChunkAnalyzer 创建分块分析器
func NewChunkAnalyzer(client llm.Client) *ChunkAnalyzer {
	return &ChunkAnalyzer{client: client}
}

// Analyze 分析一个分块，模型失败或输出结构不完整时返回 *llm.Error
func (a *ChunkAnalyzer) Analyze(ctx context.Context, chunk string) (*model.Analysis, error) {
	start := time.Now()
	doc, err := completeAnalysis(ctx, a.client, "analyze", llm.Request{
		System:      analystSystemPrompt,
		Prompt:      analyzePrompt(chunk),
		Temperature: analysisTemperature,
	})
	if err != nil {
		return nil, err
	}
	logger.Log.Infof("分块分析完成，耗时 %.2fs，长度 %d", time.Since(start).Seconds(), len([]rune(chunk)))
	return doc, nil
}

// Aggregator 将多个分块分析合并为一份
type Aggregator struct {
	client llm.Client
}

// NewAggregator 创建合并器
func NewAggregator(client llm.Client) *Aggregator {
	return &Aggregator{client: client}
}

// Combine 按分块顺序合并分析。只有一份时校验后原样返回，不调用模型。
func (g *Aggregator) Combine(ctx context.Context, docs []*model.Analysis) (*model.Analysis, error) {
	switch len(docs) {
	case 0:
		return nil, ErrNoAnalyses
	case 1:
		if err := docs[0].Validate(); err != nil {
			return nil, err
		}
		return docs[0], nil
	}

	parts := make([]string, len(docs))
	for i, d := range docs {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("partial analysis %d: %w", i+1, err)
		}
		parts[i] = d.String()
	}

	start := time.Now()
	merged, err := completeAnalysis(ctx, g.client, "combine", llm.Request{
		System:      analystSystemPrompt,
		Prompt:      mergePrompt(strings.Join(parts, partialSeparator)),
		Temperature: analysisTemperature,
	})
	if err != nil {
		return nil, err
	}
	logger.Log.Infof("合并 %d 份分析完成，耗时 %.2fs", len(docs), time.Since(start).Seconds())
	return merged, nil
}

// completeAnalysis 调用模型并解析五段式结果，结构不完整时重试一次
func completeAnalysis(ctx context.Context, client llm.Client, op string, req llm.Request) (*model.Analysis, error) {
	var lastErr error
	for attempt := 0; attempt <= structuralRetries; attempt++ {
		text, err := client.Complete(ctx, req)
		if err != nil {
			return nil, llm.Wrap(op, err)
		}
		doc, err := model.ParseAnalysis(text)
		if err == nil {
			return doc, nil
		}
		lastErr = err
		logger.Log.Warnf("模型输出结构不完整 (%s, 第 %d 次): %v", op, attempt+1, err)
	}
	return nil, llm.Wrap(op, lastErr)
}
