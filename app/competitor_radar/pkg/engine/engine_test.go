package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/article"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/config"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/llm"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/model"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/search"
)

func testConfig(maxLength, workers int) *config.Config {
	cfg := &config.Config{}
	cfg.Chunk.MaxLength = maxLength
	cfg.Concurrency.Workers = workers
	return cfg
}

// longText 生成 7000 个字符的文本，每个词 9 个字符
func longText() string {
	words := make([]string, 700)
	for i := range words {
		words[i] = fmt.Sprintf("word%05d", i)
	}
	return strings.Join(words, " ") + "."
}

func TestEngine_Analyze_LongText(t *testing.T) {
	text := longText()
	require.Len(t, text, 7000)

	client := stubLLM()
	e := NewEngine(testConfig(3000, 3), client, &fakeFetcher{})

	report, err := e.Analyze(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Chunks)
	assert.Equal(t, "Profit Gym", report.Company)
	assert.Empty(t, report.Source)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "Profit Gym sells coaching. It targets professionals.", report.Summary)

	require.NoError(t, report.Analysis.Validate())
	rendered := report.Analysis.String()
	last := -1
	for i, title := range model.SectionTitles {
		header := fmt.Sprintf("%d. %s", i+1, title)
		assert.Equal(t, 1, strings.Count(rendered, header))
		idx := strings.Index(rendered, header)
		assert.Greater(t, idx, last)
		last = idx
	}
	for _, first := range []string{"word00000", "word00300", "word00600"} {
		assert.Contains(t, report.Analysis.Body(0), first)
	}

	assert.Equal(t, 3, client.count(markAnalyze))
	assert.Equal(t, 1, client.count(markMerge))
	assert.Equal(t, 1, client.count(markIdentify))
	assert.Equal(t, 1, client.count(markSummarize))
}

func TestEngine_Analyze_PreservesChunkOrder(t *testing.T) {
	client := &fakeLLM{}
	client.handle = func(req llm.Request) (string, error) {
		// 第一个分块最慢完成
		if strings.Contains(req.Prompt, markAnalyze) && strings.Contains(req.Prompt, "word00000") {
			time.Sleep(30 * time.Millisecond)
		}
		return stubHandle(req)
	}
	e := NewEngine(testConfig(3000, 3), client, &fakeFetcher{})

	_, err := e.Analyze(context.Background(), longText())
	require.NoError(t, err)

	merge, ok := client.find(markMerge)
	require.True(t, ok)
	a := strings.Index(merge.Prompt, "Overview of word00000")
	b := strings.Index(merge.Prompt, "Overview of word00300")
	c := strings.Index(merge.Prompt, "Overview of word00600")
	assert.True(t, a >= 0 && a < b && b < c)
}

func TestEngine_Analyze_ShortTextSkipsMerge(t *testing.T) {
	client := stubLLM()
	e := NewEngine(testConfig(0, 0), client, &fakeFetcher{})

	report, err := e.Analyze(context.Background(), "ProfitGym offers personal coaching.")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Chunks)
	assert.Equal(t, 0, client.count(markMerge))
	assert.Equal(t, "Overview of ProfitGym", report.Analysis.Body(0))
}

func TestEngine_Analyze_ChunkFailureAborts(t *testing.T) {
	boom := errors.New("400 bad request")
	client := &fakeLLM{}
	client.handle = func(req llm.Request) (string, error) {
		if strings.Contains(req.Prompt, markAnalyze) && strings.Contains(req.Prompt, "word00300") {
			return "", boom
		}
		return stubHandle(req)
	}
	e := NewEngine(testConfig(3000, 3), client, &fakeFetcher{})

	report, err := e.Analyze(context.Background(), longText())
	assert.Nil(t, report)
	assert.True(t, llm.IsError(err))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "chunk 2/3")
	assert.Equal(t, 0, client.count(markMerge))
	assert.Equal(t, 0, client.count(markSummarize))
}

func TestEngine_Analyze_NameLookupFailureFallsBack(t *testing.T) {
	client := &fakeLLM{}
	client.handle = func(req llm.Request) (string, error) {
		if strings.Contains(req.Prompt, markIdentify) {
			return "", errors.New("provider rejected request")
		}
		return stubHandle(req)
	}
	e := NewEngine(testConfig(0, 0), client, &fakeFetcher{})

	report, err := e.Analyze(context.Background(), "ProfitGym offers personal coaching.")
	require.NoError(t, err)
	assert.Equal(t, model.UnknownCompany, report.Company)
	assert.Equal(t, "Overview of ProfitGym", report.Analysis.Body(0))
	assert.NotEmpty(t, report.Summary)

	_, err = e.Identify(context.Background(), "ProfitGym offers personal coaching.")
	assert.True(t, llm.IsError(err))
}

func TestEngine_Analyze_URL(t *testing.T) {
	client := stubLLM()
	fetcher := &fakeFetcher{articles: map[string]*model.Article{
		"https://news.example.com/profit": {Title: "Profit Gym grows", Content: "Profit Gym opened its tenth studio."},
	}}
	e := NewEngine(testConfig(0, 0), client, fetcher)

	report, err := e.Analyze(context.Background(), "https://news.example.com/profit")
	require.NoError(t, err)
	assert.Equal(t, "https://news.example.com/profit", report.Source)
	assert.Equal(t, "Profit Gym", report.Company)
	assert.Len(t, fetcher.calls, 1)

	req, ok := client.find(markAnalyze)
	require.True(t, ok)
	assert.Contains(t, req.Prompt, "Profit Gym grows")
}

func TestEngine_Analyze_UnreachableURL(t *testing.T) {
	client := stubLLM()
	e := NewEngine(testConfig(0, 0), client, &fakeFetcher{})

	_, err := e.Analyze(context.Background(), "https://down.example.com/a")
	var fe *article.FetchError
	assert.True(t, errors.As(err, &fe))
	assert.Empty(t, client.requests)
}

func TestEngine_Analyze_EmptyInput(t *testing.T) {
	e := NewEngine(testConfig(0, 0), stubLLM(), &fakeFetcher{})
	_, err := e.Analyze(context.Background(), " \n\t ")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestEngine_Analyze_Cache(t *testing.T) {
	client := stubLLM()
	cache := newMemoryCache()
	e := NewEngine(testConfig(0, 0), client, &fakeFetcher{}, WithCache(cache))

	first, err := e.Analyze(context.Background(), "ProfitGym offers coaching.")
	require.NoError(t, err)
	calls := len(client.requests)

	second, err := e.Analyze(context.Background(), "  ProfitGym offers coaching.  ")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Len(t, client.requests, calls)
	assert.Len(t, cache.items, 1)
}

func TestEngine_Compare(t *testing.T) {
	client := stubLLM()
	e := NewEngine(testConfig(0, 2), client, &fakeFetcher{})

	cmp, err := e.Compare(context.Background(), "ProfitGym sells coaching.", "IronWorks sells machines.")
	require.NoError(t, err)
	assert.Equal(t, "Profit Gym", cmp.CompanyA)
	assert.Equal(t, 1, strings.Count(cmp.Result, CombinedSummaryMarker))

	req, ok := client.find(markCompare)
	require.True(t, ok)
	assert.Contains(t, req.Prompt, "Overview of ProfitGym")
	assert.Contains(t, req.Prompt, "Overview of IronWorks")
}

func TestEngine_Compare_OneSideFails(t *testing.T) {
	e := NewEngine(testConfig(0, 0), stubLLM(), &fakeFetcher{})
	_, err := e.Compare(context.Background(), "ProfitGym sells coaching.", "")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestEngine_Research(t *testing.T) {
	long := strings.Repeat("Profit Gym keeps growing across Israel. ", 20)
	searcher := &fakeSearcher{results: []search.Result{
		{Title: "Expansion", URL: "https://a.example.com/1", Content: long},
		{Title: "Short", URL: "https://b.example.com/2", Content: "too short"},
		{Title: "Fetched", URL: "https://c.example.com/3", Content: "snippet"},
	}}
	fetcher := &fakeFetcher{articles: map[string]*model.Article{
		"https://c.example.com/3": {Title: "Fetched", Content: strings.Repeat("Full article text about coaching. ", 10)},
	}}
	client := stubLLM()
	e := NewEngine(testConfig(0, 0), client, fetcher, WithSearcher(searcher))

	report, err := e.Research(context.Background(), "ProfitGym")
	require.NoError(t, err)
	assert.Equal(t, "Profit Gym", searcher.lastReq.Query)
	assert.Equal(t, "news", searcher.lastReq.Topic)
	assert.Equal(t, "Profit Gym", report.Company)
	assert.Equal(t, 0, client.count(markIdentify))
	assert.ElementsMatch(t, []string{"https://b.example.com/2", "https://c.example.com/3"}, fetcher.calls)

	req, ok := client.find(markAnalyze)
	require.True(t, ok)
	assert.Contains(t, req.Prompt, "Expansion")
	assert.NotContains(t, req.Prompt, "too short")
}

func TestEngine_Research_Errors(t *testing.T) {
	e := NewEngine(testConfig(0, 0), stubLLM(), &fakeFetcher{})
	_, err := e.Research(context.Background(), "Acme")
	assert.ErrorIs(t, err, ErrNoSearcher)

	e = NewEngine(testConfig(0, 0), stubLLM(), &fakeFetcher{}, WithSearcher(&fakeSearcher{}))
	_, err = e.Research(context.Background(), "Acme")
	assert.ErrorIs(t, err, ErrNoResearchResults)

	_, err = e.Research(context.Background(), " ")
	assert.ErrorIs(t, err, ErrEmptyInput)
}
