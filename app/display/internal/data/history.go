package data

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/model"
	"github.com/Matan-123/competitor_radar/app/display/internal/repo"
)

type historyRepo struct {
	data *Data
	log  *log.Helper
}

func NewHistoryRepo(data *Data, logger log.Logger) repo.HistoryRepo {
	return &historyRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *historyRepo) SaveAnalysis(ctx context.Context, report *model.Report) error {
	return r.data.store.SaveAnalysis(ctx, report)
}

func (r *historyRepo) GetAnalysis(ctx context.Context, company string) (*model.Report, error) {
	report, err := r.data.store.GetAnalysis(ctx, company)
	if err != nil {
		return nil, notFound(err, "ANALYSIS_NOT_FOUND", "no analysis for "+company)
	}
	return report, nil
}

func (r *historyRepo) ListAnalyses(ctx context.Context) ([]*model.Report, error) {
	return r.data.store.ListAnalyses(ctx)
}

func (r *historyRepo) SaveComparison(ctx context.Context, c *model.Comparison) error {
	return r.data.store.SaveComparison(ctx, c)
}

func (r *historyRepo) ListComparisons(ctx context.Context) ([]*model.Comparison, error) {
	return r.data.store.ListComparisons(ctx)
}
