// Package fetch is the HTTP layer shared by the gating pipeline's Fast and
// Headless paths: it performs the request, guards against SSRF, detects
// encoding, and hands back decoded HTML bytes plus response metadata.
package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/riptide-project/riptide/internal/cache"
)

// Response is the metadata the gating pipeline inspects to make its Fast /
// Headless / ProbesFirst decision (spec's GateDecision inputs).
type Response struct {
	FinalURL      string
	StatusCode    int
	ContentType   string
	ContentLength int64
	Body          []byte // decoded to UTF-8 text already
}

// Client performs HTTP fetches with a pooled, tuned transport, grounded on
// the teacher's high-performance connection pool preset.
type Client struct {
	http                 *http.Client
	userAgent            string
	allowPrivateNetworks bool

	respCache *cache.Cache // nil unless EnableResponseCache was called
}

// Config tunes the underlying transport.
type Config struct {
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	MaxConnsPerHost     int
	IdleConnTimeout     time.Duration
	ConnectTimeout      time.Duration
	TLSHandshakeTimeout time.Duration

	UserAgent            string
	AllowPrivateNetworks bool
}

// HighPerformanceConfig mirrors the teacher's NewHighPerformanceConfig preset.
func HighPerformanceConfig() Config {
	return Config{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 20,
		MaxConnsPerHost:     50,
		IdleConnTimeout:     120 * time.Second,
		ConnectTimeout:      10 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		UserAgent:           "RipTide/1.0 (+https://riptide.example/bot)",
	}
}

// New builds a Client from cfg.
func New(cfg Config) *Client {
	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		MaxConnsPerHost:     cfg.MaxConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		TLSHandshakeTimeout: cfg.TLSHandshakeTimeout,
		DialContext: guardedDialer(cfg.AllowPrivateNetworks, &net.Dialer{
			Timeout: cfg.ConnectTimeout,
		}),
		TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
	}

	return &Client{
		http:                 &http.Client{Transport: transport},
		userAgent:            cfg.UserAgent,
		allowPrivateNetworks: cfg.AllowPrivateNetworks,
	}
}

// Fetch performs a GET against url with connect timeout 3s and total timeout
// bounded by the caller's context, decoding the body to UTF-8 text. If a
// response cache is enabled, the caller's CacheMode (set via WithCacheMode,
// defaulting to CacheDisabled) governs whether Fetch consults or populates
// it before hitting the network.
func (c *Client) Fetch(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	mode := cacheModeFromContext(ctx)

	if c.respCache != nil && (mode == CacheReadThrough || mode == CacheReadOnly) {
		if v, ok := c.respCache.Get(url); ok {
			resp := v.(*Response)
			cp := *resp
			return &cp, nil
		}
		if mode == CacheReadOnly {
			return nil, &cacheMissErr{url: url}
		}
	}

	resp, err := c.fetchLive(ctx, url, headers)
	if err != nil {
		return nil, err
	}

	if c.respCache != nil && (mode == CacheReadThrough || mode == CacheWriteThrough) {
		cp := *resp
		c.respCache.Set(url, &cp, int64(len(resp.Body)))
	}

	return resp, nil
}

func (c *Client) fetchLive(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20)) // 32 MiB cap
	if err != nil {
		return nil, fmt.Errorf("fetch: read body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	text, err := decodeToUTF8(body, contentType)
	if err != nil {
		return nil, fmt.Errorf("fetch: decode body: %w", err)
	}

	return &Response{
		FinalURL:      resp.Request.URL.String(),
		StatusCode:    resp.StatusCode,
		ContentType:   contentType,
		ContentLength: resp.ContentLength,
		Body:          []byte(text),
	}, nil
}
