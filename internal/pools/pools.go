// Package pools provides sync.Pool wrappers for the byte buffers and string
// builders; the streaming layer's frame encoding uses the buffer pool.
package pools

import (
	"bytes"
	"strings"
	"sync"
)

var bufferPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// GetBuffer returns a reset *bytes.Buffer from the pool.
func GetBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns buf to the pool. Buffers that have grown unreasonably
// large are dropped rather than pooled, so one oversized response doesn't
// permanently inflate the pool's steady-state footprint.
func PutBuffer(buf *bytes.Buffer) {
	const maxPooled = 1 << 20 // 1 MiB
	if buf.Cap() > maxPooled {
		return
	}
	bufferPool.Put(buf)
}

var builderPool = sync.Pool{
	New: func() any { return new(strings.Builder) },
}

// PooledStringBuilder wraps a pooled strings.Builder; call Close to return
// it once done.
type PooledStringBuilder struct {
	*strings.Builder
}

// GetStringBuilder acquires a reset builder from the pool.
func GetStringBuilder() *PooledStringBuilder {
	b := builderPool.Get().(*strings.Builder)
	b.Reset()
	return &PooledStringBuilder{b}
}

// Close returns the builder to the pool.
func (p *PooledStringBuilder) Close() {
	builderPool.Put(p.Builder)
}

// WithPooledBuffer runs fn with a pooled buffer and returns it afterward.
func WithPooledBuffer(fn func(*bytes.Buffer)) {
	buf := GetBuffer()
	defer PutBuffer(buf)
	fn(buf)
}
