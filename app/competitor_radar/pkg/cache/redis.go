// Package cache 基于 redis 的分析报告缓存
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/config"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/model"
)

// ReportCache 以 JSON 形式缓存报告
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New 连接 redis 并校验连通性
func New(ctx context.Context, cfg config.RedisConfig) (*ReportCache, error) {
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr()})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr(), err)
	}
	return NewWithClient(client, time.Duration(cfg.TTL)*time.Second), nil
}

// NewWithClient 使用已有的客户端
func NewWithClient(client *redis.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{client: client, ttl: ttl}
}

// Get 读取报告，未命中时返回 nil, nil
func (c *ReportCache) Get(ctx context.Context, key string) (*model.Report, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failure: %w", err)
	}

	var report model.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode cached report: %w", err)
	}
	return &report, nil
}

// Set 写入报告，过期时间为配置的 TTL
func (c *ReportCache) Set(ctx context.Context, key string, report *model.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := c.client.Set(ctx, key, string(data), c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failure: %w", err)
	}
	return nil
}

// Close 关闭连接
func (c *ReportCache) Close() error {
	return c.client.Close()
}
