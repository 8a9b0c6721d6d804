// Package search 定义通用的网页搜索接口，用于按公司名称收集相关报道
package search

import "context"

// Searcher 定义通用的搜索接口
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用搜索请求
type Request struct {
	Query             string
	Topic             string // "news" or "general"
	MaxResults        int
	IncludeRawContent bool
}

// Response 通用搜索响应
type Response struct {
	Results []Result
}

// Result 单条搜索结果
type Result struct {
	Title      string
	URL        string
	Content    string
	RawContent string
	Score      float64
}

// Text 返回结果中最完整的文本
func (r Result) Text() string {
	if len(r.RawContent) > len(r.Content) {
		return r.RawContent
	}
	return r.Content
}
