package data

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/model"
	"github.com/Matan-123/competitor_radar/app/display/internal/repo"
)

type insightRepo struct {
	data *Data
	log  *log.Helper
}

func NewInsightRepo(data *Data, logger log.Logger) repo.InsightRepo {
	return &insightRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *insightRepo) SaveInsight(ctx context.Context, in *model.Insight) error {
	return r.data.store.SaveInsight(ctx, in)
}

func (r *insightRepo) GetInsight(ctx context.Context, company string) (*model.Insight, error) {
	in, err := r.data.store.GetInsight(ctx, company)
	if err != nil {
		return nil, notFound(err, "INSIGHT_NOT_FOUND", "no notes for "+company)
	}
	return in, nil
}

func (r *insightRepo) ListInsights(ctx context.Context) ([]*model.Insight, error) {
	return r.data.store.ListInsights(ctx)
}

func (r *insightRepo) DeleteInsight(ctx context.Context, company string) error {
	if err := r.data.store.DeleteInsight(ctx, company); err != nil {
		return notFound(err, "INSIGHT_NOT_FOUND", "no notes for "+company)
	}
	return nil
}
