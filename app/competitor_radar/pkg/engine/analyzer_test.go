package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/llm"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/model"
)

func TestChunkAnalyzer_Analyze(t *testing.T) {
	client := stubLLM()
	doc, err := NewChunkAnalyzer(client).Analyze(context.Background(), "Profit Gym opened a studio")
	require.NoError(t, err)
	require.NoError(t, doc.Validate())
	assert.Equal(t, "Overview of Profit", doc.Body(0))
	assert.Equal(t, model.NotSpecified, doc.Body(4))

	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.Equal(t, analystSystemPrompt, req.System)
	assert.Contains(t, req.Prompt, "Profit Gym opened a studio")
	assert.Contains(t, req.Prompt, `"Not specified"`)
	for _, title := range model.SectionTitles {
		assert.Contains(t, req.Prompt, title)
	}
}

func TestChunkAnalyzer_RetriesMalformedOnce(t *testing.T) {
	calls := 0
	client := &fakeLLM{handle: func(req llm.Request) (string, error) {
		calls++
		if calls == 1 {
			return "Company Overview: a gym, nothing else", nil
		}
		return stubAnalysis("gym").String(), nil
	}}

	doc, err := NewChunkAnalyzer(client).Analyze(context.Background(), "gym text")
	require.NoError(t, err)
	assert.Equal(t, "Overview of gym", doc.Body(0))
	assert.Equal(t, 2, calls)
}

func TestChunkAnalyzer_MalformedTwiceIsLLMError(t *testing.T) {
	client := &fakeLLM{handle: func(req llm.Request) (string, error) {
		return "I cannot help with that.", nil
	}}

	_, err := NewChunkAnalyzer(client).Analyze(context.Background(), "gym text")
	require.Error(t, err)
	assert.True(t, llm.IsError(err))
	assert.ErrorIs(t, err, model.ErrMalformedAnalysis)
	assert.Len(t, client.requests, 2)
}

func TestChunkAnalyzer_ClientErrorNotRetried(t *testing.T) {
	boom := errors.New("401 unauthorized")
	client := &fakeLLM{handle: func(req llm.Request) (string, error) { return "", boom }}

	_, err := NewChunkAnalyzer(client).Analyze(context.Background(), "gym text")
	assert.True(t, llm.IsError(err))
	assert.ErrorIs(t, err, boom)
	assert.Len(t, client.requests, 1)
}

func TestAggregator_CombineNone(t *testing.T) {
	_, err := NewAggregator(stubLLM()).Combine(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoAnalyses)
}

func TestAggregator_CombineSingle(t *testing.T) {
	client := stubLLM()
	doc := stubAnalysis("only")

	got, err := NewAggregator(client).Combine(context.Background(), []*model.Analysis{doc})
	require.NoError(t, err)
	assert.Same(t, doc, got)
	assert.Empty(t, client.requests)
}

func TestAggregator_CombineSingleInvalid(t *testing.T) {
	bad := &model.Analysis{}
	_, err := NewAggregator(stubLLM()).Combine(context.Background(), []*model.Analysis{bad})
	assert.ErrorIs(t, err, model.ErrMalformedAnalysis)
}

func TestAggregator_CombineMany(t *testing.T) {
	client := stubLLM()
	docs := []*model.Analysis{stubAnalysis("alpha"), stubAnalysis("beta"), stubAnalysis("gamma")}

	got, err := NewAggregator(client).Combine(context.Background(), docs)
	require.NoError(t, err)
	require.NoError(t, got.Validate())

	require.Len(t, client.requests, 1)
	prompt := client.requests[0].Prompt
	assert.Equal(t, 2, strings.Count(prompt, partialSeparator))
	a := strings.Index(prompt, "Overview of alpha")
	b := strings.Index(prompt, "Overview of beta")
	c := strings.Index(prompt, "Overview of gamma")
	assert.True(t, a >= 0 && a < b && b < c, "partials must keep chunk order")

	// 每个分块的信息都保留在合并结果中
	for _, word := range []string{"alpha", "beta", "gamma"} {
		assert.Contains(t, got.Body(0), word)
		assert.Contains(t, got.Body(3), word)
	}
	assert.Equal(t, model.NotSpecified, got.Body(4))
}

func TestAggregator_CombineMalformedIsLLMError(t *testing.T) {
	client := &fakeLLM{handle: func(req llm.Request) (string, error) {
		return "1. Company Overview\nfoo", nil
	}}
	_, err := NewAggregator(client).Combine(context.Background(), []*model.Analysis{stubAnalysis("a"), stubAnalysis("b")})
	assert.True(t, llm.IsError(err))
	assert.Len(t, client.requests, 2)
}
