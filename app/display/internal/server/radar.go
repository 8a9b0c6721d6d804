package server

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/article"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/cache"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/config"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/engine"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/feedback"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/llm"
	drLogger "github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/logger"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/search/factory"
	"github.com/Matan-123/competitor_radar/app/display/internal/conf"
)

// NewRadarConfig 将 internal/conf.Radar 转换为 pkg/config.Config，并补全环境变量与默认值
func NewRadarConfig(c *conf.Radar) *config.Config {
	cfg := &config.Config{}
	if c == nil {
		c = &conf.Radar{}
	}

	if c.Llm != nil {
		cfg.LLM = config.LLMConfig{
			Provider:   c.Llm.Provider,
			BaseURL:    c.Llm.BaseUrl,
			APIKey:     c.Llm.ApiKey,
			Model:      c.Llm.Model,
			Timeout:    int(c.Llm.Timeout),
			MaxRetries: int(c.Llm.MaxRetries),
		}
	}
	if c.Chunk != nil {
		cfg.Chunk.MaxLength = int(c.Chunk.MaxLength)
	}
	if c.Fetch != nil {
		cfg.Fetch.Timeout = int(c.Fetch.Timeout)
	}
	if c.Search != nil {
		cfg.Search.Provider = c.Search.Provider
		if c.Search.Tavily != nil {
			cfg.Search.Tavily.APIKey = c.Search.Tavily.ApiKey
		}
		if c.Search.Searxng != nil {
			cfg.Search.SearXNG = config.SearXNGConfig{
				BaseURL: c.Search.Searxng.BaseUrl,
				Timeout: int(c.Search.Searxng.Timeout),
			}
		}
	}
	if c.Log != nil {
		cfg.Log = config.LogConfig{Level: c.Log.Level, File: c.Log.File}
	}
	if c.Concurrency != nil {
		cfg.Concurrency = config.ConcurrencyConfig{
			QPS:     int(c.Concurrency.Qps),
			RPM:     int(c.Concurrency.Rpm),
			Workers: int(c.Concurrency.Workers),
		}
	}
	if c.Redis != nil {
		cfg.Redis = config.RedisConfig{
			Host: c.Redis.Host,
			Port: int(c.Redis.Port),
			TTL:  int(c.Redis.Ttl),
		}
	}

	config.ApplyEnv(cfg)
	config.ApplyDefaults(cfg)
	return cfg
}

// NewLLMClient 创建进程内共享的 LLM 客户端
func NewLLMClient(cfg *config.Config, logger log.Logger) (*llm.ChatClient, error) {
	// 初始化日志
	if err := drLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.NewHelper(logger).Errorf("Failed to init radar logger: %v", err)
		_ = drLogger.InitLogger("info", "") // 降级处理
	}

	client, err := llm.New(context.Background(), cfg)
	if err != nil {
		log.NewHelper(logger).Errorf("Failed to init llm client: %v", err)
		return nil, err
	}
	return client, nil
}

// NewRadarEngine 初始化分析引擎，搜索与缓存均为可选
func NewRadarEngine(cfg *config.Config, client llm.Client, logger log.Logger) (*engine.Engine, func(), error) {
	helper := log.NewHelper(logger)
	fetcher := article.NewFetcher(time.Duration(cfg.Fetch.Timeout) * time.Second)

	var opts []engine.Option
	if cfg.Search.Provider != "" {
		searcher, err := factory.NewSearcher(cfg.Search)
		if err != nil {
			helper.Warnf("search disabled: %v", err)
		} else {
			opts = append(opts, engine.WithSearcher(searcher))
		}
	}

	cleanup := func() {
		helper.Info("Cleaning up radar engine")
	}
	if cfg.Redis.Host != "" {
		rc, err := cache.New(context.Background(), cfg.Redis)
		if err != nil {
			helper.Warnf("report cache disabled: %v", err)
		} else {
			opts = append(opts, engine.WithCache(rc))
			cleanup = func() {
				helper.Info("Cleaning up radar engine")
				_ = rc.Close()
			}
		}
	}

	return engine.NewEngine(cfg, client, fetcher, opts...), cleanup, nil
}

// NewFeedbackClassifier 创建反馈分类器
func NewFeedbackClassifier(client llm.Client) *feedback.Classifier {
	return feedback.NewClassifier(client)
}
