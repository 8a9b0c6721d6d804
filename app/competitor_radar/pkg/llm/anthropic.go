package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

const (
	defaultAnthropicModel = anthropic.ModelClaudeHaiku4_5
	anthropicMaxTokens    = 2048
)

// anthropicModel 将 Anthropic Messages API 适配为 eino BaseChatModel，
// 使两种提供方共用同一套限流与重试逻辑
type anthropicModel struct {
	client *anthropic.Client
	model  anthropic.Model
}

// NewAnthropicModel 创建 Anthropic 聊天模型
func NewAnthropicModel(apiKey, baseURL, modelName string) model.BaseChatModel {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := anthropic.NewClient(opts...)

	m := anthropic.Model(modelName)
	if modelName == "" {
		m = defaultAnthropicModel
	}
	return &anthropicModel{client: &client, model: m}
}

func (m *anthropicModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	params := anthropic.MessageNewParams{
		Model:     m.model,
		MaxTokens: anthropicMaxTokens,
	}

	common := model.GetCommonOptions(&model.Options{}, opts...)
	if common.Temperature != nil {
		params.Temperature = anthropic.Float(float64(*common.Temperature))
	}

	for _, msg := range input {
		switch msg.Role {
		case schema.System:
			params.System = append(params.System, anthropic.TextBlockParam{Text: msg.Content})
		case schema.Assistant:
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	resp, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}
	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("no response from anthropic: %w", ErrEmptyResponse)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		sb.WriteString(block.Text)
	}
	return schema.AssistantMessage(sb.String(), nil), nil
}

func (m *anthropicModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("anthropic: streaming is not supported")
}
