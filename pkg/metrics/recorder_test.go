package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryRecorderFallbackCount(t *testing.T) {
	r := NewInMemoryRecorder()
	r.RecordExtractionFallback("raw", "headless", "quality_threshold_not_met")
	r.RecordExtractionFallback("raw", "headless", "fast_extraction_failed")
	r.RecordExtractionFallback("raw", "headless", "quality_threshold_not_met")

	assert.Equal(t, 2, r.FallbackCount("quality_threshold_not_met"))
	assert.Equal(t, 1, r.FallbackCount("fast_extraction_failed"))
}

func TestInMemoryRecorderHTTPRequestCount(t *testing.T) {
	r := NewInMemoryRecorder()
	r.RecordHTTPRequest("/crawl/stream", 200, 0.2)
	r.RecordHTTPRequest("/crawl/stream", 500, 0.1)
	assert.Equal(t, 2, r.HTTPRequestCount())
}
