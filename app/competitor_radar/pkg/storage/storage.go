// Package storage 分析历史、对比历史与改进笔记的持久化，支持 postgres 与 sqlite
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/config"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("not found")

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Storage 基于 database/sql 的存储
type Storage struct {
	db     *sql.DB
	driver string
}

// NewStorage 按配置打开数据库连接并初始化表结构
func NewStorage(ctx context.Context, cfg config.DBConfig) (*Storage, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverSQLite
	}
	return Open(ctx, driver, cfg.DSN())
}

// Open 使用驱动名与连接串打开数据库并初始化表结构
func Open(ctx context.Context, driver, dsn string) (*Storage, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported db driver: %s", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if driver == DriverSQLite {
		// sqlite 单写者
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := NewWithDB(db, driver)
	if err := s.InitSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// NewWithDB 使用已打开的连接，不会初始化表结构
func NewWithDB(db *sql.DB, driver string) *Storage {
	return &Storage{db: db, driver: driver}
}

// Close 关闭连接
func (s *Storage) Close() error {
	return s.db.Close()
}

// InitSchema 创建所需的表
func (s *Storage) InitSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			company TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			analysis TEXT NOT NULL,
			summary TEXT NOT NULL DEFAULT '',
			chunks INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS comparisons (
			comparison TEXT PRIMARY KEY,
			company_a TEXT NOT NULL,
			company_b TEXT NOT NULL,
			result TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS insights (
			company TEXT PRIMARY KEY,
			improve TEXT NOT NULL DEFAULT '',
			keep TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMP NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query %s: %w", query, err)
		}
	}
	return nil
}

// rebind 将 ? 占位符转换为 postgres 的 $n
func (s *Storage) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (s *Storage) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.rebind(query), args...)
}

func (s *Storage) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.rebind(query), args...)
}

func (s *Storage) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.rebind(query), args...)
}
