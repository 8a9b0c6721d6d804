package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/model"
)

// SaveInsight 新建或更新某个公司的笔记
func (s *Storage) SaveInsight(ctx context.Context, in *model.Insight) error {
	_, err := s.exec(ctx, `
		INSERT INTO insights (company, improve, keep, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (company) DO UPDATE SET
			improve = excluded.improve,
			keep = excluded.keep,
			updated_at = excluded.updated_at`,
		in.Company, in.Improve, in.Keep, in.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save insight: %w", err)
	}
	return nil
}

// GetInsight 读取笔记
func (s *Storage) GetInsight(ctx context.Context, company string) (*model.Insight, error) {
	var in model.Insight
	err := s.queryRow(ctx, `SELECT company, improve, keep, updated_at FROM insights WHERE company = ?`, company).
		Scan(&in.Company, &in.Improve, &in.Keep, &in.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &in, nil
}

// ListInsights 按公司名称排序列出
func (s *Storage) ListInsights(ctx context.Context) ([]*model.Insight, error) {
	rows, err := s.query(ctx, `SELECT company, improve, keep, updated_at FROM insights ORDER BY company`)
	if err != nil {
		return nil, fmt.Errorf("failed to list insights: %w", err)
	}
	defer rows.Close()

	var list []*model.Insight
	for rows.Next() {
		var in model.Insight
		if err := rows.Scan(&in.Company, &in.Improve, &in.Keep, &in.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, &in)
	}
	return list, rows.Err()
}

// DeleteInsight 删除笔记，不存在时返回 ErrNotFound
func (s *Storage) DeleteInsight(ctx context.Context, company string) error {
	res, err := s.exec(ctx, `DELETE FROM insights WHERE company = ?`, company)
	if err != nil {
		return fmt.Errorf("failed to delete insight: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
