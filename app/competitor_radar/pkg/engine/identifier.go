package engine

import (
	"context"
	"strings"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/article"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/chunker"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/llm"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/logger"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/model"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/naming"
)

// Identifier 从文本或链接中识别公司名称
type Identifier struct {
	client    llm.Client
	fetcher   article.Fetcher
	maxLength int
}

// NewIdentifier 创建识别器，maxLength 限制送入模型的上下文长度
func NewIdentifier(client llm.Client, fetcher article.Fetcher, maxLength int) *Identifier {
	if maxLength <= 0 {
		maxLength = chunker.DefaultMaxLength
	}
	return &Identifier{client: client, fetcher: fetcher, maxLength: maxLength}
}

// Identify 返回规范化后的公司名称。
// 链接抓取失败时退回到域名推断，不返回错误；自由文本的模型调用失败会返回 *llm.Error。
func (i *Identifier) Identify(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrEmptyInput
	}
	if !article.IsURL(input) {
		return i.Extract(ctx, input)
	}

	art, err := i.fetcher.Fetch(ctx, input)
	if err != nil {
		logger.Log.Warnf("抓取失败，使用域名推断公司名称 [%s]: %v", input, err)
		return naming.FromHost(input), nil
	}
	return i.FromArticle(ctx, input, art), nil
}

// FromArticle 基于已抓取的文章识别，模型失败时退回到域名推断
func (i *Identifier) FromArticle(ctx context.Context, rawURL string, art *model.Article) string {
	name, err := i.Extract(ctx, art.Text())
	if err != nil {
		logger.Log.Warnf("模型识别公司名称失败，使用域名推断 [%s]: %v", rawURL, err)
		return naming.FromHost(rawURL)
	}
	return name
}

// Extract 调用模型从文本中提取主体公司名称
func (i *Identifier) Extract(ctx context.Context, text string) (string, error) {
	chunks := chunker.Split(text, i.maxLength)
	if len(chunks) == 0 {
		return "", ErrEmptyInput
	}

	raw, err := i.client.Complete(ctx, llm.Request{
		System:      extractorSystemPrompt,
		Prompt:      extractPrompt(chunks[0]),
		Temperature: 0,
	})
	if err != nil {
		return "", llm.Wrap("identify", err)
	}
	return cleanName(raw), nil
}

// cleanName 去掉引号、标点与法律后缀后规范化，结果为空时返回 UnknownCompany
func cleanName(raw string) string {
	name := strings.TrimSpace(raw)
	if line, _, ok := strings.Cut(name, "\n"); ok {
		name = line
	}
	name = strings.TrimPrefix(name, "Company name:")
	name = strings.Trim(name, " \t\"'`*.,;:“”‘’")
	name = naming.StripLegalSuffix(name)
	name = naming.Normalize(name)
	if name == "" {
		return model.UnknownCompany
	}
	return name
}
