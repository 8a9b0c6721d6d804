package model

import "time"

// UnknownCompany 无法识别公司名称时返回的占位名称
const UnknownCompany = "Unknown Company"

// Article 抓取到的文章
type Article struct {
	Title   string
	Link    string
	Content string
}

// Text 标题与正文拼接后的上下文
func (a *Article) Text() string {
	if a.Title == "" {
		return a.Content
	}
	return a.Title + "\n\n" + a.Content
}

// Report 单个公司的分析结果
type Report struct {
	ID        string    `json:"id"`
	Company   string    `json:"company"`
	Source    string    `json:"source"` // 原始 URL，文本输入时为空
	Analysis  *Analysis `json:"analysis"`
	Summary   string    `json:"summary"`
	Chunks    int       `json:"chunks"`
	CreatedAt time.Time `json:"created_at"`
}

// Comparison 两家公司的对比结果
type Comparison struct {
	CompanyA  string    `json:"company_a"`
	CompanyB  string    `json:"company_b"`
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

// Key 对比历史的存储键
func (c *Comparison) Key() string {
	return ComparisonKey(c.CompanyA, c.CompanyB)
}

// ComparisonKey 生成 "A vs B" 形式的键
func ComparisonKey(a, b string) string {
	return a + " vs " + b
}

// Insight 针对某个竞争对手的改进/保持笔记
type Insight struct {
	Company   string    `json:"company"`
	Improve   string    `json:"improve"`
	Keep      string    `json:"keep"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FeedbackCategory 用户反馈分类
type FeedbackCategory string

const (
	CategoryBug            FeedbackCategory = "Bug"
	CategoryFeatureRequest FeedbackCategory = "Feature Request"
	CategoryUserInterface  FeedbackCategory = "User Interface"
	CategoryOther          FeedbackCategory = "Other"
)

// FeedbackCategories 固定的四个分类，顺序即提示词中的顺序
var FeedbackCategories = []FeedbackCategory{
	CategoryBug,
	CategoryFeatureRequest,
	CategoryUserInterface,
	CategoryOther,
}
