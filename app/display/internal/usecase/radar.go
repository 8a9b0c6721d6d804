package usecase

import (
	"context"
	"io"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/model"
	"github.com/Matan-123/competitor_radar/app/display/internal/repo"
)

// RadarUseCase 分析、对比与历史查询
type RadarUseCase struct {
	analyzer   repo.Analyzer
	classifier repo.FeedbackClassifier
	history    repo.HistoryRepo
	log        *log.Helper
}

// NewRadarUseCase 创建分析业务逻辑实例
func NewRadarUseCase(analyzer repo.Analyzer, classifier repo.FeedbackClassifier, history repo.HistoryRepo, logger log.Logger) *RadarUseCase {
	return &RadarUseCase{
		analyzer:   analyzer,
		classifier: classifier,
		history:    history,
		log:        log.NewHelper(logger),
	}
}

// Identify 识别公司名称
func (uc *RadarUseCase) Identify(ctx context.Context, input string) (string, error) {
	name, err := uc.analyzer.Identify(ctx, input)
	return name, toAPIError(err)
}

// Analyze 分析并写入历史，写入失败不影响返回结果
func (uc *RadarUseCase) Analyze(ctx context.Context, input string) (*model.Report, error) {
	report, err := uc.analyzer.Analyze(ctx, input)
	if err != nil {
		uc.log.WithContext(ctx).Errorf("analyze failed: %v", err)
		return nil, toAPIError(err)
	}
	if err := uc.history.SaveAnalysis(ctx, report); err != nil {
		uc.log.WithContext(ctx).Errorf("save analysis of %s failed: %v", report.Company, err)
	}
	return report, nil
}

// Compare 对比两家公司并写入对比历史
func (uc *RadarUseCase) Compare(ctx context.Context, inputA, inputB string) (*model.Comparison, error) {
	cmp, err := uc.analyzer.Compare(ctx, inputA, inputB)
	if err != nil {
		uc.log.WithContext(ctx).Errorf("compare failed: %v", err)
		return nil, toAPIError(err)
	}
	if err := uc.history.SaveComparison(ctx, cmp); err != nil {
		uc.log.WithContext(ctx).Errorf("save comparison %s failed: %v", cmp.Key(), err)
	}
	return cmp, nil
}

// GetAnalysis 按公司名称读取历史分析
func (uc *RadarUseCase) GetAnalysis(ctx context.Context, company string) (*model.Report, error) {
	return uc.history.GetAnalysis(ctx, company)
}

// ListAnalyses 列出分析历史
func (uc *RadarUseCase) ListAnalyses(ctx context.Context) ([]*model.Report, error) {
	return uc.history.ListAnalyses(ctx)
}

// ListComparisons 列出对比历史
func (uc *RadarUseCase) ListComparisons(ctx context.Context) ([]*model.Comparison, error) {
	return uc.history.ListComparisons(ctx)
}

// ClassifyFeedback 分类反馈 CSV
func (uc *RadarUseCase) ClassifyFeedback(ctx context.Context, r io.Reader, w io.Writer) (int, error) {
	n, err := uc.classifier.ClassifyCSV(ctx, r, w)
	return n, toAPIError(err)
}
