package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/riptide-project/riptide/internal/cache"
)

// CacheMode controls how Fetch uses the client's response cache for a
// single request, mirroring the crawl request's per-call cache_mode option.
type CacheMode int

const (
	// CacheDisabled bypasses the cache entirely: no read, no write.
	CacheDisabled CacheMode = iota
	// CacheReadThrough reads from cache on hit, fetches and populates on miss.
	CacheReadThrough
	// CacheReadOnly reads from cache only; a miss is returned as a cache miss,
	// never triggers a live fetch.
	CacheReadOnly
	// CacheWriteThrough always fetches live and refreshes the cache entry.
	CacheWriteThrough
)

// ParseCacheMode maps the request-facing string form of cache_mode onto a
// CacheMode, defaulting to CacheDisabled for an empty string. An unrecognized
// value is reported back to the caller rather than silently ignored.
func ParseCacheMode(s string) (CacheMode, error) {
	switch s {
	case "", "disabled":
		return CacheDisabled, nil
	case "read_through":
		return CacheReadThrough, nil
	case "read_only":
		return CacheReadOnly, nil
	case "write_through":
		return CacheWriteThrough, nil
	default:
		return CacheDisabled, fmt.Errorf("fetch: unknown cache_mode %q", s)
	}
}

type cacheModeKey struct{}

// WithCacheMode returns a context that carries mode for the next Fetch call
// made with it. Absent a value, Fetch behaves as CacheDisabled.
func WithCacheMode(ctx context.Context, mode CacheMode) context.Context {
	return context.WithValue(ctx, cacheModeKey{}, mode)
}

func cacheModeFromContext(ctx context.Context) CacheMode {
	if m, ok := ctx.Value(cacheModeKey{}).(CacheMode); ok {
		return m
	}
	return CacheDisabled
}

// cacheMissErr is returned by Fetch when mode is CacheReadOnly and the URL
// isn't already cached.
type cacheMissErr struct{ url string }

func (e *cacheMissErr) Error() string { return "fetch: cache miss for " + e.url }

// EnableResponseCache attaches a bounded LRU response cache to c, keyed by
// URL. maxBytes bounds total cached response size; ttl bounds how long an
// entry is trusted before a fresh fetch is required even under
// CacheReadThrough.
func (c *Client) EnableResponseCache(maxBytes int64, ttl time.Duration) {
	c.respCache = cache.New(maxBytes, ttl)
}
