package service

import (
	"context"
	"io"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/model"
	"github.com/Matan-123/competitor_radar/app/display/internal/domain"
	"github.com/Matan-123/competitor_radar/app/display/internal/usecase"
)

type RadarService struct {
	ucRadar   *usecase.RadarUseCase
	ucInsight *usecase.InsightUseCase
	log       *log.Helper
}

func NewRadarService(ucRadar *usecase.RadarUseCase, ucInsight *usecase.InsightUseCase, logger log.Logger) *RadarService {
	return &RadarService{
		ucRadar:   ucRadar,
		ucInsight: ucInsight,
		log:       log.NewHelper(logger),
	}
}

func (s *RadarService) Identify(ctx context.Context, req *domain.IdentifyRequest) (*domain.IdentifyReply, error) {
	name, err := s.ucRadar.Identify(ctx, req.Input)
	if err != nil {
		return nil, err
	}
	return &domain.IdentifyReply{Company: name}, nil
}

func (s *RadarService) Analyze(ctx context.Context, req *domain.AnalyzeRequest) (*domain.AnalysisDetail, error) {
	r, err := s.ucRadar.Analyze(ctx, req.Input)
	if err != nil {
		return nil, err
	}
	return toDetail(r), nil
}

func (s *RadarService) GetAnalysis(ctx context.Context, company string) (*domain.AnalysisDetail, error) {
	r, err := s.ucRadar.GetAnalysis(ctx, company)
	if err != nil {
		return nil, err
	}
	return toDetail(r), nil
}

func (s *RadarService) ListAnalyses(ctx context.Context) (*domain.ListAnalysesReply, error) {
	reports, err := s.ucRadar.ListAnalyses(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]*domain.AnalysisSummary, 0, len(reports))
	for _, r := range reports {
		list = append(list, &domain.AnalysisSummary{
			Company:   r.Company,
			Summary:   r.Summary,
			Source:    r.Source,
			CreatedAt: formatTime(r.CreatedAt),
		})
	}
	return &domain.ListAnalysesReply{Analyses: list, Total: len(list)}, nil
}

func (s *RadarService) Compare(ctx context.Context, req *domain.CompareRequest) (*domain.ComparisonItem, error) {
	c, err := s.ucRadar.Compare(ctx, req.InputA, req.InputB)
	if err != nil {
		return nil, err
	}
	return toComparisonItem(c), nil
}

func (s *RadarService) ListComparisons(ctx context.Context) (*domain.ListComparisonsReply, error) {
	comparisons, err := s.ucRadar.ListComparisons(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]*domain.ComparisonItem, 0, len(comparisons))
	for _, c := range comparisons {
		list = append(list, toComparisonItem(c))
	}
	return &domain.ListComparisonsReply{Comparisons: list, Total: len(list)}, nil
}

func (s *RadarService) ListInsights(ctx context.Context) (*domain.ListInsightsReply, error) {
	insights, err := s.ucInsight.List(ctx)
	if err != nil {
		return nil, err
	}
	if insights == nil {
		insights = []*model.Insight{}
	}
	return &domain.ListInsightsReply{Insights: insights, Total: len(insights)}, nil
}

func (s *RadarService) GetInsight(ctx context.Context, company string) (*model.Insight, error) {
	return s.ucInsight.Get(ctx, company)
}

func (s *RadarService) SaveInsight(ctx context.Context, company string, req *domain.InsightRequest) (*model.Insight, error) {
	return s.ucInsight.Save(ctx, company, req.Improve, req.Keep)
}

func (s *RadarService) DeleteInsight(ctx context.Context, company string) error {
	return s.ucInsight.Delete(ctx, company)
}

// ClassifyFeedback 读取上传的 CSV，写回带 category 列的 CSV
func (s *RadarService) ClassifyFeedback(ctx context.Context, r io.Reader, w io.Writer) error {
	n, err := s.ucRadar.ClassifyFeedback(ctx, r, w)
	if err != nil {
		return err
	}
	if n == 0 {
		return kerrors.BadRequest("EMPTY_FEEDBACK", "no feedback rows found")
	}
	s.log.WithContext(ctx).Infof("classified %d feedback rows", n)
	return nil
}

func toDetail(r *model.Report) *domain.AnalysisDetail {
	d := &domain.AnalysisDetail{
		ID:        r.ID,
		Company:   r.Company,
		Source:    r.Source,
		Summary:   r.Summary,
		Chunks:    r.Chunks,
		CreatedAt: formatTime(r.CreatedAt),
	}
	if r.Analysis != nil {
		d.Sections = r.Analysis.Sections[:]
		d.Text = r.Analysis.String()
	}
	return d
}

func toComparisonItem(c *model.Comparison) *domain.ComparisonItem {
	return &domain.ComparisonItem{
		Comparison: c.Key(),
		CompanyA:   c.CompanyA,
		CompanyB:   c.CompanyB,
		Result:     c.Result,
		CreatedAt:  formatTime(c.CreatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
