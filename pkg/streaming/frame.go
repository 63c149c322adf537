// Package streaming implements the NDJSON response framing used by the
// crawl and deepsearch HTTP endpoints: one JSON object per line, flushed as
// each result becomes available rather than buffered until the batch ends.
package streaming

// Frame is any value that can be written as one NDJSON line. The interface
// exists so Stream.Write can accept any of the six concrete frame types
// uniformly; FrameType is what differentiates low-priority (droppable)
// frames from the ones that must never be dropped.
type Frame interface {
	FrameType() string
}

// MetadataFrame is emitted exactly once, first, before any extraction work
// begins.
type MetadataFrame struct {
	Type       string `json:"type"`
	TotalURLs  int    `json:"total_urls"`
	RequestID  string `json:"request_id"`
	Timestamp  string `json:"timestamp"`
	StreamType string `json:"stream_type"`
}

func (MetadataFrame) FrameType() string { return "metadata" }

// SearchFrame is emitted once on a deepsearch stream, immediately after
// Metadata and before any Result frames, reporting how many URLs the search
// provider turned up and how long the lookup took.
type SearchFrame struct {
	Type          string `json:"type"`
	Query         string `json:"query"`
	URLsFound     int    `json:"urls_found"`
	SearchTimeMs  int64  `json:"search_time_ms"`
}

func (SearchFrame) FrameType() string { return "search" }

// ResultFrame is emitted as each extraction completes, in completion order
// rather than input order.
type ResultFrame struct {
	Type     string        `json:"type"`
	Index    int           `json:"index"`
	Result   ResultPayload `json:"result"`
	Progress ProgressTotal `json:"progress"`
}

func (ResultFrame) FrameType() string { return "result" }

// ResultPayload is a Result frame's inner "result" object. Exactly one of
// Document or Error is populated.
type ResultPayload struct {
	URL              string       `json:"url"`
	Status           int          `json:"status"`
	FromCache        bool         `json:"from_cache"`
	GateDecision     string       `json:"gate_decision"`
	QualityScore     float64      `json:"quality_score"`
	ProcessingTimeMs int64        `json:"processing_time_ms"`
	Document         any          `json:"document,omitempty"`
	Error            *ErrorDetail `json:"error,omitempty"`
	CacheKey         string       `json:"cache_key,omitempty"`
	SearchResult     any          `json:"search_result,omitempty"`
}

// ErrorDetail conveys a failed extraction in-band inside a Result frame.
type ErrorDetail struct {
	ErrorType string `json:"error_type"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

// ProgressTotal is the running completion tally carried on every Result
// frame.
type ProgressTotal struct {
	Completed   int     `json:"completed"`
	Total       int     `json:"total"`
	SuccessRate float64 `json:"success_rate"`
}

// ProgressFrame is emitted every N completions for long-running batches
// (N > 10 total URLs); low priority, droppable under backpressure.
type ProgressFrame struct {
	Type                string  `json:"type"`
	OperationID         string  `json:"operation_id"`
	OperationType       string  `json:"operation_type"`
	StartedAt           string  `json:"started_at"`
	CurrentPhase        string  `json:"current_phase"`
	ProgressPercentage  float64 `json:"progress_percentage"`
	ItemsCompleted      int     `json:"items_completed"`
	ItemsTotal          int     `json:"items_total"`
	EstimatedCompletion string  `json:"estimated_completion,omitempty"`
	CurrentItem         string  `json:"current_item,omitempty"`
}

func (ProgressFrame) FrameType() string { return "progress" }

// HeartbeatFrame is emitted on a timer to keep idle connections alive; low
// priority, droppable under backpressure.
type HeartbeatFrame struct {
	Type           string `json:"type"`
	Timestamp      string `json:"timestamp"`
	StreamID       string `json:"stream_id"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
	ItemsProcessed int    `json:"items_processed"`
}

func (HeartbeatFrame) FrameType() string { return "heartbeat" }

// SummaryFrame is emitted exactly once, last, regardless of partial
// failure.
type SummaryFrame struct {
	Type                 string  `json:"type"`
	TotalURLs            int     `json:"total_urls"`
	Successful           int     `json:"successful"`
	Failed               int     `json:"failed"`
	FromCache            int     `json:"from_cache"`
	TotalProcessingTimeMs int64  `json:"total_processing_time_ms"`
	CacheHitRate         float64 `json:"cache_hit_rate"`

	// Deepsearch-only fields, omitted for crawl streams.
	Query          string `json:"query,omitempty"`
	TotalURLsFound int    `json:"total_urls_found,omitempty"`
	Status         string `json:"status,omitempty"`
}

func (SummaryFrame) FrameType() string { return "summary" }

// droppable reports whether a frame type may be silently dropped under
// sustained backpressure. Result and Summary must never be dropped; the
// stream's correctness invariants (§8: metadata-first, summary-last, every
// result accounted for) depend on it.
func droppable(frameType string) bool {
	return frameType == "progress" || frameType == "heartbeat"
}
