package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *httptest.Server, *int) {
	t.Helper()
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html></html>"))
	}))
	t.Cleanup(srv.Close)

	cfg := HighPerformanceConfig()
	cfg.AllowPrivateNetworks = true
	c := New(cfg)
	return c, srv, &hits
}

func TestParseCacheMode(t *testing.T) {
	cases := map[string]CacheMode{
		"":              CacheDisabled,
		"disabled":      CacheDisabled,
		"read_through":  CacheReadThrough,
		"read_only":     CacheReadOnly,
		"write_through": CacheWriteThrough,
	}
	for s, want := range cases {
		got, err := ParseCacheMode(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseCacheMode("bogus")
	assert.Error(t, err)
}

func TestFetchDisabledCacheAlwaysHitsNetwork(t *testing.T) {
	c, srv, hits := newTestClient(t)
	c.EnableResponseCache(1<<20, time.Minute)

	ctx := WithCacheMode(context.Background(), CacheDisabled)
	_, err := c.Fetch(ctx, srv.URL, nil)
	require.NoError(t, err)
	_, err = c.Fetch(ctx, srv.URL, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, *hits, "disabled cache mode must never short-circuit the network call")
}

func TestFetchReadThroughPopulatesThenHitsCache(t *testing.T) {
	c, srv, hits := newTestClient(t)
	c.EnableResponseCache(1<<20, time.Minute)

	ctx := WithCacheMode(context.Background(), CacheReadThrough)
	_, err := c.Fetch(ctx, srv.URL, nil)
	require.NoError(t, err)
	_, err = c.Fetch(ctx, srv.URL, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, *hits, "second read_through fetch should be served from cache")
}

func TestFetchReadOnlyMissReturnsErrorWithoutNetworkCall(t *testing.T) {
	c, srv, hits := newTestClient(t)
	c.EnableResponseCache(1<<20, time.Minute)

	ctx := WithCacheMode(context.Background(), CacheReadOnly)
	_, err := c.Fetch(ctx, srv.URL, nil)
	assert.Error(t, err)
	assert.Equal(t, 0, *hits)
}

func TestFetchWriteThroughAlwaysRefetchesAndRefreshes(t *testing.T) {
	c, srv, hits := newTestClient(t)
	c.EnableResponseCache(1<<20, time.Minute)

	ctx := WithCacheMode(context.Background(), CacheWriteThrough)
	_, err := c.Fetch(ctx, srv.URL, nil)
	require.NoError(t, err)
	_, err = c.Fetch(ctx, srv.URL, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, *hits, "write_through must always refetch live")

	readCtx := WithCacheMode(context.Background(), CacheReadThrough)
	_, err = c.Fetch(readCtx, srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, *hits, "write_through should have refreshed the cache entry for a later read_through hit")
}

func TestFetchWithoutEnabledCacheIgnoresMode(t *testing.T) {
	c, srv, hits := newTestClient(t)

	ctx := WithCacheMode(context.Background(), CacheReadThrough)
	_, err := c.Fetch(ctx, srv.URL, nil)
	require.NoError(t, err)
	_, err = c.Fetch(ctx, srv.URL, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, *hits, "with no cache enabled, every mode behaves like a live fetch")
}
