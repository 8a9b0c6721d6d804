// Package llm 对外部大模型补全接口的统一封装：限流、超时、重试与错误归类
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Request 一次补全请求
type Request struct {
	System      string // 可选的系统提示词
	Prompt      string
	Temperature float32
}

// Client 补全能力，需支持多个 goroutine 并发调用
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Error 模型调用失败、超时、被拒绝或返回内容不可用
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("llm %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap 将 err 包装为 *Error，已是 *Error 时原样返回
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var le *Error
	if errors.As(err, &le) {
		return err
	}
	return &Error{Op: op, Err: err}
}

// IsError 判断 err 链中是否包含 *Error
func IsError(err error) bool {
	var le *Error
	return errors.As(err, &le)
}

// ErrEmptyResponse 模型返回了空内容
var ErrEmptyResponse = errors.New("empty response")
