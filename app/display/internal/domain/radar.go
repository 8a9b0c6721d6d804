package domain

import "github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/model"

// IdentifyRequest 识别公司请求
type IdentifyRequest struct {
	Input string `json:"input"`
}

// IdentifyReply 识别结果
type IdentifyReply struct {
	Company string `json:"company"`
}

// AnalyzeRequest 单公司分析请求，Input 为文本或链接
type AnalyzeRequest struct {
	Input string `json:"input"`
}

// CompareRequest 两家公司对比请求
type CompareRequest struct {
	InputA string `json:"input_a"`
	InputB string `json:"input_b"`
}

// InsightRequest 更新笔记请求
type InsightRequest struct {
	Improve string `json:"improve"`
	Keep    string `json:"keep"`
}

// AnalysisSummary 分析历史列表项
type AnalysisSummary struct {
	Company   string `json:"company"`
	Summary   string `json:"summary"`
	Source    string `json:"source"`
	CreatedAt string `json:"created_at"`
}

// AnalysisDetail 分析详情
type AnalysisDetail struct {
	ID        string          `json:"id"`
	Company   string          `json:"company"`
	Source    string          `json:"source"`
	Sections  []model.Section `json:"sections"`
	Text      string          `json:"text"`
	Summary   string          `json:"summary"`
	Chunks    int             `json:"chunks"`
	CreatedAt string          `json:"created_at"`
}

// ListAnalysesReply 分析历史
type ListAnalysesReply struct {
	Analyses []*AnalysisSummary `json:"analyses"`
	Total    int                `json:"total"`
}

// ComparisonItem 对比结果
type ComparisonItem struct {
	Comparison string `json:"comparison"`
	CompanyA   string `json:"company_a"`
	CompanyB   string `json:"company_b"`
	Result     string `json:"result"`
	CreatedAt  string `json:"created_at"`
}

// ListComparisonsReply 对比历史
type ListComparisonsReply struct {
	Comparisons []*ComparisonItem `json:"comparisons"`
	Total       int               `json:"total"`
}

// ListInsightsReply 笔记列表
type ListInsightsReply struct {
	Insights []*model.Insight `json:"insights"`
	Total    int              `json:"total"`
}
