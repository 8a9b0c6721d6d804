package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/logger"
)

const (
	defaultTimeout    = 60 * time.Second
	defaultMaxRetries = 3
	defaultBaseDelay  = 2 * time.Second
)

// ChatClient 基于 eino ChatModel 的 Client 实现
type ChatClient struct {
	name       string
	chatModel  model.BaseChatModel
	limiter    *rate.Limiter
	timeout    time.Duration
	maxRetries int
	baseDelay  time.Duration
}

// Option ChatClient 选项
type Option func(*ChatClient)

// WithLimiter 所有调用共享的限流器
func WithLimiter(l *rate.Limiter) Option {
	return func(c *ChatClient) { c.limiter = l }
}

// WithTimeout 单次调用超时
func WithTimeout(d time.Duration) Option {
	return func(c *ChatClient) { c.timeout = d }
}

// WithRetry 可重试错误的最大重试次数与退避基数
func WithRetry(maxRetries int, baseDelay time.Duration) Option {
	return func(c *ChatClient) {
		c.maxRetries = maxRetries
		c.baseDelay = baseDelay
	}
}

// WithName 日志与错误中使用的提供方名称
func WithName(name string) Option {
	return func(c *ChatClient) { c.name = name }
}

// NewChatClient 创建客户端
func NewChatClient(cm model.BaseChatModel, opts ...Option) *ChatClient {
	c := &ChatClient{
		name:       "chat",
		chatModel:  cm,
		limiter:    rate.NewLimiter(rate.Inf, 1),
		timeout:    defaultTimeout,
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Client = (*ChatClient)(nil)

// Complete 实现 Client。遇到 429、5xx 或超时按指数退避重试。
func (c *ChatClient) Complete(ctx context.Context, req Request) (string, error) {
	messages := make([]*schema.Message, 0, 2)
	if req.System != "" {
		messages = append(messages, schema.SystemMessage(req.System))
	}
	messages = append(messages, schema.UserMessage(req.Prompt))

	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", Wrap(c.name, err)
		}

		content, err := c.generate(ctx, messages, req.Temperature)
		if err == nil {
			return content, nil
		}
		if ctx.Err() != nil {
			return "", Wrap(c.name, ctx.Err())
		}
		if !isTransient(err) {
			return "", Wrap(c.name, err)
		}

		lastErr = err
		if i < c.maxRetries {
			delay := c.baseDelay * time.Duration(1<<i)
			logger.Log.Warnf("模型调用失败，%v 后重试 (%d/%d): %v", delay, i+1, c.maxRetries, err)
			if err := sleep(ctx, delay); err != nil {
				return "", Wrap(c.name, err)
			}
		}
	}
	return "", Wrap(c.name, fmt.Errorf("failed after %d retries: %w", c.maxRetries, lastErr))
}

func (c *ChatClient) generate(ctx context.Context, messages []*schema.Message, temperature float32) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.chatModel.Generate(callCtx, messages, model.WithTemperature(temperature))
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return "", fmt.Errorf("call timed out after %v: %w", c.timeout, context.DeadlineExceeded)
		}
		return "", err
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(resp.Content), nil
}

// 状态码按整词匹配，避免 "15000 tokens" 这类文本被误判
var transientStatus = regexp.MustCompile(`\b(429|500|502|503|504|529)\b`)

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= http.StatusInternalServerError
	}
	msg := strings.ToLower(err.Error())
	if transientStatus.MatchString(msg) {
		return true
	}
	for _, s := range []string{"too many requests", "rate limit", "overloaded", "timeout"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
