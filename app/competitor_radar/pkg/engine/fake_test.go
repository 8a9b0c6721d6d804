package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/article"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/llm"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/model"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/search"
)

// fakeLLM 记录所有请求，由 handle 决定返回内容
type fakeLLM struct {
	mu       sync.Mutex
	requests []llm.Request
	handle   func(req llm.Request) (string, error)
}

func (f *fakeLLM) Complete(ctx context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return f.handle(req)
}

// count 返回提示词中包含 substr 的请求数
func (f *fakeLLM) count(substr string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if strings.Contains(r.Prompt, substr) {
			n++
		}
	}
	return n
}

// find 返回第一个包含 substr 的请求
func (f *fakeLLM) find(substr string) (llm.Request, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if strings.Contains(r.Prompt, substr) {
			return r, true
		}
	}
	return llm.Request{}, false
}

const (
	markAnalyze   = "Provide the competitive analysis"
	markMerge     = "Partial Analyses:"
	markIdentify  = "Identify the primary company"
	markSummarize = "Summarize the following"
	markCompare   = "Compare these two companies"
)

// stubLLM 按提示词类型返回确定性的结果：
// 分块分析引用分块的第一个词，合并按章节拼接并去重。
func stubLLM() *fakeLLM {
	return &fakeLLM{handle: stubHandle}
}

func stubHandle(req llm.Request) (string, error) {
	switch {
	case strings.Contains(req.Prompt, markCompare):
		return "Target Market: gyms.\nStrengths: coaching.\n\n" + CombinedSummaryMarker + " both compete on service.", nil
	case strings.Contains(req.Prompt, markSummarize):
		return "Profit Gym sells coaching.\n\nIt targets professionals.", nil
	case strings.Contains(req.Prompt, markMerge):
		return stubMerge(req.Prompt)
	case strings.Contains(req.Prompt, markAnalyze):
		return stubAnalysis(firstWordAfter(req.Prompt, "Text:")).String(), nil
	case strings.Contains(req.Prompt, markIdentify):
		return `"ProfitGym Ltd."`, nil
	}
	return "", fmt.Errorf("unexpected prompt: %.40s", req.Prompt)
}

func stubAnalysis(word string) *model.Analysis {
	return model.NewAnalysis(
		"Overview of "+word,
		"Selling points of "+word,
		"Customers of "+word,
		"Strategy of "+word,
		"",
	)
}

func stubMerge(prompt string) (string, error) {
	_, partials, ok := strings.Cut(prompt, markMerge)
	if !ok {
		return "", errors.New("no partials")
	}
	merged := make([][]string, model.SectionCount)
	for _, part := range strings.Split(strings.TrimSpace(partials), partialSeparator) {
		doc, err := model.ParseAnalysis(part)
		if err != nil {
			return "", err
		}
		for i := range doc.Sections {
			body := doc.Body(i)
			if !contains(merged[i], body) {
				merged[i] = append(merged[i], body)
			}
		}
	}
	bodies := make([]string, model.SectionCount)
	for i, m := range merged {
		bodies[i] = strings.Join(m, "; ")
	}
	return model.NewAnalysis(bodies...).String(), nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func firstWordAfter(s, marker string) string {
	_, rest, _ := strings.Cut(s, marker)
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// fakeFetcher 按 URL 返回预设文章，未登记的 URL 返回 *article.FetchError
type fakeFetcher struct {
	mu       sync.Mutex
	articles map[string]*model.Article
	calls    []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, rawURL string) (*model.Article, error) {
	f.mu.Lock()
	f.calls = append(f.calls, rawURL)
	f.mu.Unlock()
	if a, ok := f.articles[rawURL]; ok {
		return a, nil
	}
	return nil, &article.FetchError{URL: rawURL, Err: errors.New("connection refused")}
}

// fakeSearcher 返回固定的搜索结果
type fakeSearcher struct {
	results []search.Result
	err     error
	lastReq *search.Request
}

func (s *fakeSearcher) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &search.Response{Results: s.results}, nil
}

// memoryCache 内存报告缓存
type memoryCache struct {
	mu    sync.Mutex
	items map[string]*model.Report
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string]*model.Report{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) (*model.Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items[key], nil
}

func (c *memoryCache) Set(ctx context.Context, key string, r *model.Report) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = r
	return nil
}
