package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	c := New(1024, 0)
	defer c.Close()

	c.Set("a", "value-a", 10)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "value-a", v)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Sets)
}

func TestLRUEviction(t *testing.T) {
	c := New(20, 0)
	defer c.Close()

	c.Set("a", "1", 10)
	c.Set("b", "2", 10)
	// touch a so b becomes least-recently-used
	c.Get("a")
	c.Set("c", "3", 10) // should evict b

	_, hasB := c.Get("b")
	assert.False(t, hasB)
	_, hasA := c.Get("a")
	assert.True(t, hasA)
	_, hasC := c.Get("c")
	assert.True(t, hasC)
}

func TestTTLExpiry(t *testing.T) {
	c := New(1024, 10*time.Millisecond)
	defer c.Close()

	c.Set("a", "1", 10)
	time.Sleep(25 * time.Millisecond)
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestInvalidate(t *testing.T) {
	c := New(1024, 0)
	defer c.Close()

	c.Set("a", "1", 10)
	c.Invalidate("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
}
