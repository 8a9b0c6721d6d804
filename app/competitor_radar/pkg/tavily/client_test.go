package tavily

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
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tvly-test", r.Header.Get("Authorization"))

		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Profit Gym", req.Query)
		assert.Equal(t, "news", req.Topic)
		assert.Equal(t, "basic", req.SearchDepth)
		assert.True(t, req.IncludeRawContent)

		assert.Equal(t, 3, req.MaxResults)

		_, _ = w.Write([]byte(`{"query":"Profit Gym","results":[
			{"title":"Profit Gym expands","url":"https://news.example.com/1","content":"short","raw_content":"a much longer raw body","score":0.9}
		]}`))
	}))
	defer server.Close()

	c := NewClient("tvly-test").WithEndpoint(server.URL)
	resp, err := c.Search(context.Background(), &search.Request{Query: "Profit Gym", Topic: "news", MaxResults: 3, IncludeRawContent: true})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "https://news.example.com/1", resp.Results[0].URL)
	assert.Equal(t, "a much longer raw body", resp.Results[0].Text())
}

func TestClient_Search_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"invalid key"}`))
	}))
	defer server.Close()

	_, err := NewClient("bad").WithEndpoint(server.URL).Search(context.Background(), &search.Request{Query: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
