// Package tavily 通过 Tavily 搜索 API 收集公司相关报道
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/search"
)

const (
	defaultEndpoint   = "https://api.tavily.com/search"
	defaultMaxResults = 5
	requestTimeout    = 30 * time.Second
)

// Client Tavily API 客户端
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewClient 创建 Tavily 客户端
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: requestTimeout},
	}
}

// WithEndpoint 替换默认的 API 地址
func (c *Client) WithEndpoint(endpoint string) *Client {
	c.endpoint = endpoint
	return c
}

var _ search.Searcher = (*Client)(nil)

type searchRequest struct {
	Query             string `json:"query"`
	SearchDepth       string `json:"search_depth"`
	Topic             string `json:"topic"`
	MaxResults        int    `json:"max_results"`
	IncludeRawContent bool   `json:"include_raw_content,omitempty"`
}

type searchResponse struct {
	Results []struct {
		Title      string  `json:"title"`
		URL        string  `json:"url"`
		Content    string  `json:"content"`
		RawContent string  `json:"raw_content"`
		Score      float64 `json:"score"`
	} `json:"results"`
}

// Search 调用 /search，Topic 为空时使用 general
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	body := searchRequest{
		Query:             req.Query,
		SearchDepth:       "basic",
		Topic:             req.Topic,
		MaxResults:        req.MaxResults,
		IncludeRawContent: req.IncludeRawContent,
	}
	if body.Topic == "" {
		body.Topic = "general"
	}
	if body.MaxResults <= 0 {
		body.MaxResults = defaultMaxResults
	}

	var out searchResponse
	if err := c.post(ctx, body, &out); err != nil {
		return nil, err
	}

	results := make([]search.Result, 0, len(out.Results))
	for _, r := range out.Results {
		results = append(results, search.Result{
			Title:      r.Title,
			URL:        r.URL,
			Content:    r.Content,
			RawContent: r.RawContent,
			Score:      r.Score,
		})
	}
	return &search.Response{Results: results}, nil
}

func (c *Client) post(ctx context.Context, body searchRequest, out *searchResponse) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("tavily: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("tavily: create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("tavily: request %q: %w", body.Query, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("tavily: status %d: %s", res.StatusCode, bytes.TrimSpace(msg))
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("tavily: decode response: %w", err)
	}
	return nil
}
