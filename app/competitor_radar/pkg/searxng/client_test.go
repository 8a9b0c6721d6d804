package searxng

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/search"
)

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Profit Gym", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "news", r.URL.Query().Get("categories"))

		_ = json.NewEncoder(w).Encode(SearchResponse{
			Query: "Profit Gym",
			Results: []SearchResult{
				{Title: "a", URL: "https://a.example.com", Content: "first"},
				{Title: "b", URL: "https://b.example.com", Content: "second"},
				{Title: "c", URL: "https://c.example.com", Content: "third"},
			},
		})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL, 5).Search(context.Background(), &search.Request{Query: "Profit Gym", Topic: "news", MaxResults: 2})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "first", resp.Results[0].Text())
	assert.Empty(t, resp.Results[1].RawContent)
}

func TestClient_Search_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, 5).Search(context.Background(), &search.Request{Query: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}
