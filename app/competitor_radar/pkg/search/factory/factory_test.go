package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/config"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/searxng"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/tavily"
)

func TestNewSearcher(t *testing.T) {
	s, err := NewSearcher(config.SearchConfig{})
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = NewSearcher(config.SearchConfig{Tavily: config.TavilyConfig{APIKey: "tvly-x"}})
	require.NoError(t, err)
	assert.IsType(t, &tavily.Client{}, s)

	s, err = NewSearcher(config.SearchConfig{SearXNG: config.SearXNGConfig{BaseURL: "http://searx:8080"}})
	require.NoError(t, err)
	assert.IsType(t, &searxng.Client{}, s)

	_, err = NewSearcher(config.SearchConfig{Provider: "tavily"})
	assert.Error(t, err)

	_, err = NewSearcher(config.SearchConfig{Provider: "bing"})
	assert.Error(t, err)
}
