package sandbox

import (
	"sync/atomic"
	"time"
)

// Instance is a mutable runtime handle borrowing one Module for a single
// extraction. The module itself is immutable and shared; only the
// instance's own counters mutate.
type Instance struct {
	module    *Module
	createdAt time.Time
	lastUsed  time.Time
	useCount  int64
	extracting int32
}

func newInstance(module *Module) *Instance {
	now := time.Now()
	return &Instance{module: module, createdAt: now, lastUsed: now}
}

// ResetState clears any per-extraction mutable state an Instance carries
// between borrows. The regexes are stateless, so this only resets the
// bookkeeping counters; a future stateful extraction mode has a place to
// hook into.
func (i *Instance) ResetState() {
	atomic.StoreInt32(&i.extracting, 0)
}

func (i *Instance) markUse() {
	atomic.AddInt64(&i.useCount, 1)
	i.lastUsed = time.Now()
}

func (i *Instance) isExpired(maxLifetime time.Duration) bool {
	return time.Since(i.createdAt) > maxLifetime
}

func (i *Instance) isIdle(idleTimeout time.Duration) bool {
	return time.Since(i.lastUsed) > idleTimeout
}

// UseCount reports how many extractions this instance has served.
func (i *Instance) UseCount() int64 {
	return atomic.LoadInt64(&i.useCount)
}
