package repo

import (
	"context"
	"io"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/model"
)

// Analyzer 分析引擎
type Analyzer interface {
	Identify(ctx context.Context, input string) (string, error)
	Analyze(ctx context.Context, input string) (*model.Report, error)
	Compare(ctx context.Context, inputA, inputB string) (*model.Comparison, error)
}

// FeedbackClassifier 反馈 CSV 分类
type FeedbackClassifier interface {
	ClassifyCSV(ctx context.Context, r io.Reader, w io.Writer) (int, error)
}

// HistoryRepo 分析与对比历史仓库
type HistoryRepo interface {
	SaveAnalysis(ctx context.Context, report *model.Report) error
	// GetAnalysis 不存在时返回 NotFound 错误
	GetAnalysis(ctx context.Context, company string) (*model.Report, error)
	ListAnalyses(ctx context.Context) ([]*model.Report, error)
	SaveComparison(ctx context.Context, c *model.Comparison) error
	ListComparisons(ctx context.Context) ([]*model.Comparison, error)
}

// InsightRepo 改进/保持笔记仓库
type InsightRepo interface {
	SaveInsight(ctx context.Context, in *model.Insight) error
	GetInsight(ctx context.Context, company string) (*model.Insight, error)
	ListInsights(ctx context.Context) ([]*model.Insight, error)
	DeleteInsight(ctx context.Context, company string) error
}
