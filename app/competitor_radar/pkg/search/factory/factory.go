package factory

import (
	"fmt"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/config"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/search"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/searxng"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/tavily"
)

// NewSearcher 根据配置创建搜索实例，未配置任何提供方时返回 nil
func NewSearcher(cfg config.SearchConfig) (search.Searcher, error) {
	provider := cfg.Provider
	if provider == "" {
		switch {
		case cfg.Tavily.APIKey != "":
			provider = "tavily"
		case cfg.SearXNG.BaseURL != "":
			provider = "searxng"
		default:
			return nil, nil
		}
	}

	switch provider {
	case "tavily":
		if cfg.Tavily.APIKey == "" {
			return nil, fmt.Errorf("tavily api key is missing")
		}
		return tavily.NewClient(cfg.Tavily.APIKey), nil

	case "searxng":
		if cfg.SearXNG.BaseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		return searxng.NewClient(cfg.SearXNG.BaseURL, cfg.SearXNG.Timeout), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", provider)
	}
}
