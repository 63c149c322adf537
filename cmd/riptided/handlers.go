package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/riptide-project/riptide/internal/fetch"
	"github.com/riptide-project/riptide/pkg/streaming"
)

// crawlOptions mirrors the request's nested "options" object (spec §6).
// CacheMode and Concurrency are threaded into the orchestrator call below;
// TimeoutMs, UserAgent, and RespectRobots are accepted so well-formed
// clients never get a validation error for fields the core doesn't yet
// act on per request (those are process-wide settings today).
type crawlOptions struct {
	CacheMode     string `json:"cache_mode"`
	Concurrency   int    `json:"concurrency"`
	Stream        bool   `json:"stream"`
	TimeoutMs     int64  `json:"timeout_ms"`
	UserAgent     string `json:"user_agent"`
	RespectRobots bool   `json:"respect_robots"`
}

type crawlRequest struct {
	URLs    []string     `json:"urls"`
	Options crawlOptions `json:"options"`
}

type deepsearchRequest struct {
	Query          string       `json:"query"`
	Limit          int          `json:"limit"`
	IncludeContent bool         `json:"include_content"`
	CrawlOptions   crawlOptions `json:"crawl_options"`
}

const maxURLsPerRequest = 100

// handleCrawlStream implements POST /crawl/stream: validates the request,
// opens the NDJSON stream, and delegates the fan-out to the Orchestrator.
func (s *Server) handleCrawlStream(w http.ResponseWriter, r *http.Request) {
	var req crawlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid JSON body")
		return
	}

	if len(req.URLs) == 0 {
		writeError(w, http.StatusBadRequest, "validation_error", "urls must be non-empty")
		return
	}
	if len(req.URLs) > maxURLsPerRequest {
		writeError(w, http.StatusBadRequest, "validation_error", "urls exceeds the per-request cap")
		return
	}

	cacheMode, err := fetch.ParseCacheMode(req.Options.CacheMode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	requestID := uuid.NewString()
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Transfer-Encoding", "chunked")
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(http.StatusOK)

	ctx := fetch.WithCacheMode(r.Context(), cacheMode)
	stream := streaming.New(w)
	if err := s.orchestrator.Crawl(ctx, req.URLs, req.Options.Concurrency, stream); err != nil {
		s.logger.Error("crawl stream ended early", "request_id", requestID, "err", err)
	}
}

// handleDeepsearchStream implements POST /deepsearch/stream: resolves the
// query to URLs via the configured search provider, then streams them
// through the same crawl pipeline.
func (s *Server) handleDeepsearchStream(w http.ResponseWriter, r *http.Request) {
	var req deepsearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid JSON body")
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "validation_error", "query must be non-empty")
		return
	}
	if req.Limit <= 0 || req.Limit > 50 {
		req.Limit = 10
	}

	if s.search == nil {
		writeError(w, http.StatusBadRequest, "config_error", "SERPER_API_KEY is not configured")
		return
	}

	cacheMode, err := fetch.ParseCacheMode(req.CrawlOptions.CacheMode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	searchStart := time.Now()
	hits, err := s.search.Search(r.Context(), req.Query, req.Limit)
	searchDuration := time.Since(searchStart)
	if err != nil {
		writeError(w, http.StatusBadGateway, "dependency_error", "search provider request failed")
		return
	}

	requestID := uuid.NewString()
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Transfer-Encoding", "chunked")
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(http.StatusOK)

	stream := streaming.New(w)
	if err := stream.Write(streaming.NewMetadataFrame(len(hits), requestID, "deepsearch")); err != nil {
		return
	}
	if err := stream.Write(streaming.NewSearchFrame(req.Query, len(hits), searchDuration)); err != nil {
		return
	}

	urls := make([]string, len(hits))
	for i, h := range hits {
		urls[i] = h.URL
	}

	ctx := fetch.WithCacheMode(r.Context(), cacheMode)
	if err := s.orchestrator.CrawlDeepsearch(ctx, req.Query, urls, req.CrawlOptions.Concurrency, stream); err != nil {
		s.logger.Error("deepsearch stream ended early", "request_id", requestID, "query", req.Query, "err", err)
	}
}
