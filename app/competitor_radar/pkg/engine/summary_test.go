package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/llm"
)

func TestSummarizer_Summarize(t *testing.T) {
	client := stubLLM()
	got, err := NewSummarizer(client).Summarize(context.Background(), stubAnalysis("gym"))
	require.NoError(t, err)
	assert.Equal(t, "Profit Gym sells coaching. It targets professionals.", got)
	assert.NotContains(t, got, "\n")

	require.Len(t, client.requests, 1)
	assert.Contains(t, client.requests[0].Prompt, "Overview of gym")
	assert.Zero(t, client.requests[0].Temperature)
}

func TestSummarizer_Error(t *testing.T) {
	client := &fakeLLM{handle: func(req llm.Request) (string, error) { return "", errors.New("503") }}
	_, err := NewSummarizer(client).Summarize(context.Background(), stubAnalysis("gym"))
	assert.True(t, llm.IsError(err))
}

func TestComparator_Compare(t *testing.T) {
	client := stubLLM()
	got, err := NewComparator(client).Compare(context.Background(), "Profit Gym", stubAnalysis("profit"), "Iron Works", stubAnalysis("iron"))
	require.NoError(t, err)
	assert.Equal(t, "Profit Gym", got.CompanyA)
	assert.Equal(t, "Iron Works", got.CompanyB)
	assert.Equal(t, "Profit Gym vs Iron Works", got.Key())
	assert.Equal(t, 1, strings.Count(got.Result, CombinedSummaryMarker))

	prompt := client.requests[0].Prompt
	assert.Contains(t, prompt, "Company 1 (Profit Gym)")
	assert.Contains(t, prompt, "Overview of iron")
	for _, axis := range []string{"Target Market", "Strengths", "Weaknesses", "Main Services or Products"} {
		assert.Contains(t, prompt, axis)
	}
}

func TestComparator_RetriesOnSummaryCount(t *testing.T) {
	replies := []string{
		"A is fine.\n" + CombinedSummaryMarker + " a.\n" + CombinedSummaryMarker + " b.",
		"A vs B.\n" + CombinedSummaryMarker + " together.",
	}
	client := &fakeLLM{}
	client.handle = func(req llm.Request) (string, error) {
		return replies[len(client.requests)-1], nil
	}

	got, err := NewComparator(client).Compare(context.Background(), "A", stubAnalysis("a"), "B", stubAnalysis("b"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(got.Result, CombinedSummaryMarker))
	assert.Len(t, client.requests, 2)
}

func TestComparator_NoSummaryIsLLMError(t *testing.T) {
	client := &fakeLLM{handle: func(req llm.Request) (string, error) {
		return "Summary for A: fine.\nSummary for B: fine.", nil
	}}
	_, err := NewComparator(client).Compare(context.Background(), "A", stubAnalysis("a"), "B", stubAnalysis("b"))
	assert.True(t, llm.IsError(err))
	assert.Len(t, client.requests, 2)
}
