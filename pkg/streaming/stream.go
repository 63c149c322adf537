package streaming

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/riptide-project/riptide/internal/pools"
)

// MaxBufferedBytes bounds the amount of pending, un-flushed frame data a
// Stream will hold before applying its drop policy to low-priority frames.
const MaxBufferedBytes = 65536

// Stream writes NDJSON frames to an underlying http.ResponseWriter, one
// JSON object per line, flushed immediately after each write so a slow
// first byte never hides behind Go's default response buffering.
//
// Write calls are serialized by an internal mutex, so concurrent Write calls
// from multiple goroutines never interleave their lines.
type Stream struct {
	w       *bufio.Writer
	flusher http.Flusher

	mu          sync.Mutex
	pendingBytes int64

	startedAt time.Time
}

// New wraps w as an NDJSON stream. w must also implement http.Flusher for
// the TTFB guarantee to hold; if it doesn't, Write still writes each line to
// w but skips the HTTP-level flush and returns no error for it.
func New(w http.ResponseWriter) *Stream {
	flusher, _ := w.(http.Flusher)
	return &Stream{
		w:         bufio.NewWriter(w),
		flusher:   flusher,
		startedAt: time.Now(),
	}
}

// Uptime reports how long this stream has been open, used for Heartbeat
// frames.
func (s *Stream) Uptime() time.Duration { return time.Since(s.startedAt) }

// Write encodes frame as one JSON line and flushes it immediately. Result
// and Summary frames always write; Progress and Heartbeat frames are
// silently dropped if the stream is currently over its backpressure budget,
// per the non-batching, never-drop-results invariant.
func (s *Stream) Write(frame Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	frameType := frame.FrameType()
	if droppable(frameType) && s.pendingBytes >= MaxBufferedBytes {
		return nil
	}

	buf := pools.GetBuffer()
	defer pools.PutBuffer(buf)

	enc := json.NewEncoder(buf)
	if err := enc.Encode(frame); err != nil {
		return fmt.Errorf("streaming: encode %s frame: %w", frameType, err)
	}

	n, err := s.w.Write(buf.Bytes())
	s.pendingBytes += int64(n)
	if err != nil {
		return fmt.Errorf("streaming: write %s frame: %w", frameType, err)
	}
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("streaming: flush %s frame: %w", frameType, err)
	}
	s.pendingBytes = 0
	if s.flusher != nil {
		s.flusher.Flush()
	}
	return nil
}
