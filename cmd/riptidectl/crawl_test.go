package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCrawlStreamsNDJSONFrames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/crawl/stream", r.URL.Path)
		w.Header().Set("X-Request-ID", "req-test")
		w.Header().Set("Content-Type", "application/x-ndjson")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"type":"metadata","total_urls":1}` + "\n"))
		w.Write([]byte(`{"type":"summary","total":1,"successful":1}` + "\n"))
	}))
	defer srv.Close()

	serverAddr = srv.URL
	timeout = 5 * time.Second

	err := runCrawl(nil, []string{"https://example.com"})
	require.NoError(t, err)
}

func TestRunCrawlReturnsErrorOnNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	serverAddr = srv.URL
	timeout = 5 * time.Second

	err := runCrawl(nil, []string{"https://example.com"})
	assert.Error(t, err)
}

func TestRunCrawlPostsRequestBodyWithURLs(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	serverAddr = srv.URL
	timeout = 5 * time.Second
	concurrency = 3

	require.NoError(t, runCrawl(nil, []string{"https://a.example", "https://b.example"}))

	assert.True(t, strings.Contains(gotBody, "a.example"))
	assert.True(t, strings.Contains(gotBody, "b.example"))
}
