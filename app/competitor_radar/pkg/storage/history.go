package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/model"
)

const analysisColumns = `company, run_id, source, analysis, summary, chunks, created_at`

// SaveAnalysis 保存分析结果，同名公司覆盖旧记录
func (s *Storage) SaveAnalysis(ctx context.Context, report *model.Report) error {
	data, err := json.Marshal(report.Analysis)
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}

	_, err = s.exec(ctx, `
		INSERT INTO analyses (`+analysisColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (company) DO UPDATE SET
			run_id = excluded.run_id,
			source = excluded.source,
			analysis = excluded.analysis,
			summary = excluded.summary,
			chunks = excluded.chunks,
			created_at = excluded.created_at`,
		report.Company, report.ID, report.Source, string(data), report.Summary, report.Chunks, report.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// GetAnalysis 按公司名称读取
func (s *Storage) GetAnalysis(ctx context.Context, company string) (*model.Report, error) {
	row := s.queryRow(ctx, `SELECT `+analysisColumns+` FROM analyses WHERE company = ?`, company)
	report, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return report, err
}

// ListAnalyses 按时间倒序列出所有分析
func (s *Storage) ListAnalyses(ctx context.Context) ([]*model.Report, error) {
	rows, err := s.query(ctx, `SELECT `+analysisColumns+` FROM analyses ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var reports []*model.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(sc scanner) (*model.Report, error) {
	var (
		report model.Report
		data   string
	)
	if err := sc.Scan(&report.Company, &report.ID, &report.Source, &data, &report.Summary, &report.Chunks, &report.CreatedAt); err != nil {
		return nil, err
	}
	report.Analysis = &model.Analysis{}
	if err := json.Unmarshal([]byte(data), report.Analysis); err != nil {
		return nil, fmt.Errorf("failed to decode analysis of %s: %w", report.Company, err)
	}
	return &report, nil
}

// SaveComparison 保存对比结果，键为 "A vs B"
func (s *Storage) SaveComparison(ctx context.Context, c *model.Comparison) error {
	_, err := s.exec(ctx, `
		INSERT INTO comparisons (comparison, company_a, company_b, result, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (comparison) DO UPDATE SET
			result = excluded.result,
			created_at = excluded.created_at`,
		c.Key(), c.CompanyA, c.CompanyB, c.Result, c.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save comparison: %w", err)
	}
	return nil
}

// ListComparisons 按时间倒序列出所有对比
func (s *Storage) ListComparisons(ctx context.Context) ([]*model.Comparison, error) {
	rows, err := s.query(ctx, `SELECT company_a, company_b, result, created_at FROM comparisons ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list comparisons: %w", err)
	}
	defer rows.Close()

	var list []*model.Comparison
	for rows.Next() {
		var c model.Comparison
		if err := rows.Scan(&c.CompanyA, &c.CompanyB, &c.Result, &c.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
