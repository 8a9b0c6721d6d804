package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"golang.org/x/time/rate"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/config"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/logger"
)

// New 根据配置创建 Client。进程内只创建一次，再注入到各组件。
func New(ctx context.Context, cfg *config.Config) (*ChatClient, error) {
	timeout := time.Duration(cfg.LLM.Timeout) * time.Second

	var cm model.BaseChatModel
	switch cfg.LLM.Provider {
	case "", "openai":
		chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL: cfg.LLM.BaseURL,
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
			Timeout: timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("LLM 初始化失败: %w", err)
		}
		cm = chatModel
	case "anthropic":
		cm = NewAnthropicModel(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLM.Provider)
	}

	limiter := NewLimiter(cfg.Concurrency)
	logger.Log.Infof("限流器已配置: Limit=%.2f req/s, Burst=%d", limiter.Limit(), limiter.Burst())

	return NewChatClient(cm,
		WithName(cfg.LLM.Provider),
		WithLimiter(limiter),
		WithTimeout(timeout),
		WithRetry(cfg.LLM.MaxRetries, defaultBaseDelay),
	), nil
}

// NewLimiter Limit 为 RPM/60，Burst 为 QPS
func NewLimiter(cfg config.ConcurrencyConfig) *rate.Limiter {
	if cfg.RPM <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	burst := cfg.QPS
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(cfg.RPM)/60.0), burst)
}
