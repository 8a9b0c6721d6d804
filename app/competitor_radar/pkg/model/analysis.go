package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// NotSpecified 缺失信息时的占位文本
const NotSpecified = "Not specified"

// ErrMalformedAnalysis 模型输出缺少固定章节或顺序错误
var ErrMalformedAnalysis = errors.New("malformed analysis")

// SectionTitles 五个固定章节，顺序不可变
var SectionTitles = [SectionCount]string{
	"Company Overview",
	"Unique Selling Points",
	"Target Market & Customers",
	"Strategic Positioning",
	"Potential Risks/Challenges",
}

// SectionCount 章节数量
const SectionCount = 5

// 章节标题的前缀与别名（小写）
var sectionKeys = [SectionCount][]string{
	{"company overview", "overview"},
	{"unique selling point", "unique selling points", "usp", "usps"},
	{"target market", "target market and customers", "target market & customers"},
	{"strategic positioning", "positioning"},
	{"potential risk", "potential risks", "potential risks and challenges", "risks", "risks and challenges"},
}

// 标题行中关键字之后允许出现的最大额外字符数，例如 "(usp)"、"& customers"
const headerSlack = 24

// Section 分析中的一个章节
type Section struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Analysis 五段式竞争分析
type Analysis struct {
	Sections [SectionCount]Section `json:"sections"`
}

// NewAnalysis 按固定顺序创建分析，空内容写为 "Not specified"
func NewAnalysis(bodies ...string) *Analysis {
	a := &Analysis{}
	for i := range a.Sections {
		a.Sections[i].Title = SectionTitles[i]
		if i < len(bodies) {
			a.Sections[i].Body = strings.TrimSpace(bodies[i])
		}
		if a.Sections[i].Body == "" {
			a.Sections[i].Body = NotSpecified
		}
	}
	return a
}

// String 渲染为带编号的标准文本
func (a *Analysis) String() string {
	var sb strings.Builder
	for i, s := range a.Sections {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "%d. %s\n%s", i+1, s.Title, s.Body)
	}
	return sb.String()
}

// Body 返回指定章节内容
func (a *Analysis) Body(i int) string {
	return a.Sections[i].Body
}

// Validate 检查五个章节是否齐全且顺序正确
func (a *Analysis) Validate() error {
	if a == nil {
		return fmt.Errorf("%w: nil analysis", ErrMalformedAnalysis)
	}
	for i, s := range a.Sections {
		if s.Title != SectionTitles[i] {
			return fmt.Errorf("%w: section %d is %q, want %q", ErrMalformedAnalysis, i+1, s.Title, SectionTitles[i])
		}
		if strings.TrimSpace(s.Body) == "" {
			return fmt.Errorf("%w: section %q is empty", ErrMalformedAnalysis, s.Title)
		}
	}
	return nil
}

// UnmarshalJSON 读取后重新校验，历史记录中的数据同样必须是五段式
func (a *Analysis) UnmarshalJSON(data []byte) error {
	type plain Analysis
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = Analysis(p)
	return a.Validate()
}

// ParseAnalysis 从模型输出中解析五个章节。
// 标题必须按固定顺序出现，标题前的内容被忽略，空章节写为 "Not specified"。
func ParseAnalysis(text string) (*Analysis, error) {
	bodies := make([][]string, SectionCount)
	current := -1

	for _, line := range strings.Split(text, "\n") {
		next := current + 1
		if next < SectionCount {
			if inline, ok := matchHeader(line, next); ok {
				current = next
				if inline != "" {
					bodies[current] = append(bodies[current], inline)
				}
				continue
			}
		}
		if current >= 0 {
			bodies[current] = append(bodies[current], line)
		}
	}

	if current != SectionCount-1 {
		missing := SectionTitles[current+1]
		return nil, fmt.Errorf("%w: missing section %q", ErrMalformedAnalysis, missing)
	}

	out := make([]string, SectionCount)
	for i, lines := range bodies {
		out[i] = strings.TrimSpace(strings.Join(lines, "\n"))
	}
	return NewAnalysis(out...), nil
}

// matchHeader 判断一行是否是第 idx 个章节的标题，返回标题行中冒号后的内联内容。
// 带编号、# 或 ** 标记的行按关键字前缀匹配；普通行必须与标题或别名完全一致，
// 因此 "Target market includes ..." 这类正文不会被当作标题。
func matchHeader(line string, idx int) (string, bool) {
	heading, inline, _ := strings.Cut(line, ":")
	marked := hasHeadingMarker(heading)
	heading = strings.ToLower(cleanHeading(heading))
	if heading == "" {
		return "", false
	}

	matched := heading == strings.ToLower(SectionTitles[idx])
	for _, key := range sectionKeys[idx] {
		if heading == key || marked && strings.HasPrefix(heading, key) && len(heading) <= len(key)+headerSlack {
			matched = true
			break
		}
	}
	if !matched {
		return "", false
	}
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(inline), "*_")), true
}

// hasHeadingMarker 行首是否为 markdown 标题、加粗或 "1." / "1)" 编号
func hasHeadingMarker(s string) bool {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") || strings.HasPrefix(s, "**") || strings.HasPrefix(s, "__") {
		return true
	}
	digits := len(s) - len(strings.TrimLeft(s, "0123456789"))
	return digits > 0 && digits < len(s) && (s[digits] == '.' || s[digits] == ')')
}

// cleanHeading 去掉 markdown 标记与编号，例如 "### 1. **Company Overview**"
func cleanHeading(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "#*_ \t")
	s = strings.TrimLeft(s, "0123456789")
	s = strings.TrimLeft(s, ".)- \t")
	s = strings.Trim(s, "*_ \t")
	return s
}
