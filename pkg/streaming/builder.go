package streaming

import "time"

// NewMetadataFrame builds the stream-opening frame, filling the type tag a
// caller would otherwise have to remember to set by hand.
func NewMetadataFrame(totalURLs int, requestID, streamType string) MetadataFrame {
	return MetadataFrame{
		Type:       "metadata",
		TotalURLs:  totalURLs,
		RequestID:  requestID,
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
		StreamType: streamType,
	}
}

// NewResultFrame builds a Result frame, computing the running success rate
// from completed/total and the accumulated success count.
func NewResultFrame(index int, result ResultPayload, completed, total, successCount int) ResultFrame {
	rate := 0.0
	if completed > 0 {
		rate = float64(successCount) / float64(completed)
	}
	return ResultFrame{
		Type:   "result",
		Index:  index,
		Result: result,
		Progress: ProgressTotal{
			Completed:   completed,
			Total:       total,
			SuccessRate: rate,
		},
	}
}

// NewSearchFrame builds the deepsearch-only frame reporting the search
// provider's result count, emitted once right after the Metadata frame.
func NewSearchFrame(query string, urlsFound int, searchTime time.Duration) SearchFrame {
	return SearchFrame{
		Type:         "search",
		Query:        query,
		URLsFound:    urlsFound,
		SearchTimeMs: searchTime.Milliseconds(),
	}
}

// NewProgressFrame builds a Progress frame for a long-running operation.
func NewProgressFrame(operationID, operationType, currentPhase string, startedAt time.Time, completed, total int) ProgressFrame {
	pct := 0.0
	if total > 0 {
		pct = float64(completed) / float64(total) * 100
	}
	return ProgressFrame{
		Type:               "progress",
		OperationID:        operationID,
		OperationType:      operationType,
		StartedAt:          startedAt.UTC().Format(time.RFC3339Nano),
		CurrentPhase:       currentPhase,
		ProgressPercentage: pct,
		ItemsCompleted:     completed,
		ItemsTotal:         total,
	}
}

// NewHeartbeatFrame builds a Heartbeat frame for the given stream.
func NewHeartbeatFrame(streamID string, uptime time.Duration, itemsProcessed int) HeartbeatFrame {
	return HeartbeatFrame{
		Type:           "heartbeat",
		Timestamp:      time.Now().UTC().Format(time.RFC3339Nano),
		StreamID:       streamID,
		UptimeSeconds:  int64(uptime.Seconds()),
		ItemsProcessed: itemsProcessed,
	}
}

// NewCrawlSummaryFrame builds the stream-closing frame for a crawl stream.
func NewCrawlSummaryFrame(total, successful, failed, fromCache int, totalTime time.Duration) SummaryFrame {
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(fromCache) / float64(total)
	}
	return SummaryFrame{
		Type:                  "summary",
		TotalURLs:             total,
		Successful:            successful,
		Failed:                failed,
		FromCache:             fromCache,
		TotalProcessingTimeMs: totalTime.Milliseconds(),
		CacheHitRate:          hitRate,
	}
}

// NewDeepsearchSummaryFrame builds the stream-closing frame for a
// deepsearch stream, which carries the additional query/found/status
// fields a crawl summary omits.
func NewDeepsearchSummaryFrame(total, successful, failed, fromCache int, totalTime time.Duration, query string, urlsFound int, status string) SummaryFrame {
	f := NewCrawlSummaryFrame(total, successful, failed, fromCache, totalTime)
	f.Query = query
	f.TotalURLsFound = urlsFound
	f.Status = status
	return f
}
