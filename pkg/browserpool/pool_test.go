package browserpool

import (
	"context"
	"testing"
	"time"
)

// These tests exercise the pool's bookkeeping and permit-reclaim logic
// without actually launching a browser process (there is none available in
// this sandboxed test environment), so they operate on hand-built
// pooledBrowser values rather than going through New/Checkout.

func newTestPool(cfg Config) *Pool {
	p := &Pool{
		cfg:     cfg,
		inUse:   make(map[string]*pooledBrowser),
		permits: make(chan struct{}, cfg.MaxPoolSize),
		events:  make(chan Event, 64),
		stopCh:  make(chan struct{}),
	}
	for i := 0; i < cfg.MaxPoolSize; i++ {
		p.permits <- struct{}{}
	}
	return p
}

func fakeBrowser(id string) *pooledBrowser {
	now := time.Now()
	return &pooledBrowser{
		id: id, createdAt: now, lastUsed: now, health: HealthHealthy,
		cancelTab: func() {}, cancelAll: func() {},
		probe: func() error { return nil },
	}
}

func TestPoolStatsReflectAvailableAndInUse(t *testing.T) {
	cfg := DefaultConfig()
	p := newTestPool(cfg)
	p.available = []*pooledBrowser{fakeBrowser("a"), fakeBrowser("b")}
	p.inUse["c"] = fakeBrowser("c")

	stats := p.Stats()
	if stats.Available != 2 {
		t.Errorf("Available = %d, want 2", stats.Available)
	}
	if stats.InUse != 1 {
		t.Errorf("InUse = %d, want 1", stats.InUse)
	}
	if stats.Capacity != cfg.MaxPoolSize {
		t.Errorf("Capacity = %d, want %d", stats.Capacity, cfg.MaxPoolSize)
	}
}

func TestPopAvailableIsLIFOAndEmptySafe(t *testing.T) {
	p := newTestPool(DefaultConfig())
	if got := p.popAvailable(); got != nil {
		t.Fatalf("expected nil from empty available list, got %v", got)
	}

	p.available = []*pooledBrowser{fakeBrowser("a"), fakeBrowser("b")}
	got := p.popAvailable()
	if got.id != "b" {
		t.Fatalf("expected LIFO pop to return the last-pushed browser, got %s", got.id)
	}
	if len(p.available) != 1 {
		t.Fatalf("expected one browser left in available, got %d", len(p.available))
	}
}

func TestCheckinReclaimsPermitAndReturnsHealthyBrowser(t *testing.T) {
	p := newTestPool(DefaultConfig())
	// drain one permit to simulate a prior checkout
	<-p.permits

	b := fakeBrowser("x")
	b.inUse = true
	p.inUse[b.id] = b

	p.checkin(b)

	if len(p.permits) != cap(p.permits) {
		t.Fatalf("expected checkin to restore the permit, have %d of %d", len(p.permits), cap(p.permits))
	}
	if _, stillInUse := p.inUse[b.id]; stillInUse {
		t.Fatalf("expected browser removed from inUse after checkin")
	}
	p.availMu.Lock()
	n := len(p.available)
	p.availMu.Unlock()
	if n != 1 {
		t.Fatalf("expected healthy browser returned to available, got %d entries", n)
	}
}

func TestCleanupExpiredRemovesStaleBrowsers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxLifetime = time.Millisecond
	p := newTestPool(cfg)
	p.ctx = context.Background()

	stale := fakeBrowser("stale")
	stale.createdAt = time.Now().Add(-time.Hour)
	fresh := fakeBrowser("fresh")

	p.available = []*pooledBrowser{stale, fresh}
	p.cleanupExpired()

	p.availMu.Lock()
	defer p.availMu.Unlock()
	if len(p.available) != 1 || p.available[0].id != "fresh" {
		t.Fatalf("expected only the fresh browser to survive cleanup, got %+v", p.available)
	}
}

func TestEventKindStringCoversAllVariants(t *testing.T) {
	kinds := []EventKind{
		EventBrowserCreated, EventBrowserRemoved, EventBrowserCheckedOut,
		EventBrowserCheckedIn, EventPoolExpanded, EventPoolShrunk,
		EventHealthCheckCompleted, EventMemoryAlert,
	}
	for _, k := range kinds {
		if k.String() == "unknown" {
			t.Errorf("EventKind %d missing from String()", k)
		}
	}
}
