// Package article 抓取 URL 并用 readability 提取标题与正文
package article

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/model"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// ErrEmptyContent 页面可访问但提取不到正文
var ErrEmptyContent = errors.New("no readable content")

// FetchError URL 无法访问、无法解析或没有正文
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher 获取文章内容
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*model.Article, error)
}

// HTTPFetcher 通过 HTTP 抓取页面
type HTTPFetcher struct {
	client *http.Client
}

// NewFetcher 创建抓取器，timeout 为整个请求的超时时间
func NewFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

var _ Fetcher = (*HTTPFetcher)(nil)

// Fetch 抓取并提取正文，失败时返回 *FetchError
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*model.Article, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil || pageURL.Host == "" {
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("invalid url: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	parsed, err := readability.FromReader(resp.Body, pageURL)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}

	content := strings.TrimSpace(parsed.TextContent)
	if content == "" {
		return nil, &FetchError{URL: rawURL, Err: ErrEmptyContent}
	}

	return &model.Article{
		Title:   strings.TrimSpace(parsed.Title),
		Link:    rawURL,
		Content: content,
	}, nil
}

// IsURL 判断输入是否为 http/https 链接
func IsURL(input string) bool {
	u, err := url.Parse(strings.TrimSpace(input))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
