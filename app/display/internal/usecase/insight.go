package usecase

import (
	"context"
	"strings"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/model"
	"github.com/Matan-123/competitor_radar/app/display/internal/repo"
)

// InsightUseCase 改进/保持笔记
type InsightUseCase struct {
	repo repo.InsightRepo
	log  *log.Helper
}

// NewInsightUseCase 创建笔记业务逻辑实例
func NewInsightUseCase(repo repo.InsightRepo, logger log.Logger) *InsightUseCase {
	return &InsightUseCase{repo: repo, log: log.NewHelper(logger)}
}

// List 列出全部笔记
func (uc *InsightUseCase) List(ctx context.Context) ([]*model.Insight, error) {
	return uc.repo.ListInsights(ctx)
}

// Get 读取笔记
func (uc *InsightUseCase) Get(ctx context.Context, company string) (*model.Insight, error) {
	return uc.repo.GetInsight(ctx, company)
}

// Save 新建或覆盖笔记
func (uc *InsightUseCase) Save(ctx context.Context, company, improve, keep string) (*model.Insight, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return nil, kerrors.BadRequest("EMPTY_COMPANY", "company is required")
	}
	in := &model.Insight{
		Company:   company,
		Improve:   strings.TrimSpace(improve),
		Keep:      strings.TrimSpace(keep),
		UpdatedAt: time.Now(),
	}
	if err := uc.repo.SaveInsight(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

// Delete 删除笔记
func (uc *InsightUseCase) Delete(ctx context.Context, company string) error {
	return uc.repo.DeleteInsight(ctx, company)
}
