package sandbox

import (
	"context"
	"testing"
	"time"
)

func testPool(t *testing.T, cfg PoolConfig) *Pool {
	t.Helper()
	module, err := compileModule(ModeArticle)
	if err != nil {
		t.Fatalf("compile module: %v", err)
	}
	pool := NewPool(module, cfg)
	t.Cleanup(pool.Close)
	return pool
}

func TestPoolCheckoutReturnRoundTrip(t *testing.T) {
	cfg := DefaultPoolConfig()
	cfg.Initial = 1
	pool := testPool(t, cfg)

	inst, err := pool.Checkout(context.Background())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	stats := pool.Stats()
	if stats.InUse != 1 {
		t.Fatalf("expected 1 in-use instance, got %d", stats.InUse)
	}

	pool.Return(inst)
	stats = pool.Stats()
	if stats.InUse != 0 {
		t.Fatalf("expected 0 in-use instances after return, got %d", stats.InUse)
	}
}

func TestPoolGrowsUpToMax(t *testing.T) {
	cfg := DefaultPoolConfig()
	cfg.Initial = 0
	cfg.Min = 0
	cfg.Max = 3
	pool := testPool(t, cfg)

	var checked []*Instance
	for i := 0; i < cfg.Max; i++ {
		inst, err := pool.Checkout(context.Background())
		if err != nil {
			t.Fatalf("checkout %d: %v", i, err)
		}
		checked = append(checked, inst)
	}

	if stats := pool.Stats(); stats.InUse != cfg.Max {
		t.Fatalf("expected %d in-use instances, got %d", cfg.Max, stats.InUse)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := pool.Checkout(ctx); err == nil {
		t.Fatalf("expected checkout beyond Max to block until context deadline, got a success")
	}

	for _, inst := range checked {
		pool.Return(inst)
	}
}

func TestPoolReturnIsIdempotent(t *testing.T) {
	cfg := DefaultPoolConfig()
	cfg.Initial = 1
	pool := testPool(t, cfg)

	inst, err := pool.Checkout(context.Background())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	pool.Return(inst)
	pool.Return(inst) // second return must be a no-op, not a double-free into the channel

	if stats := pool.Stats(); stats.Available > cfg.Initial {
		t.Fatalf("double return leaked an extra free-list slot: %+v", stats)
	}
}

func TestPoolReapAndReplenishMaintainsMinimum(t *testing.T) {
	cfg := DefaultPoolConfig()
	cfg.Initial = 2
	cfg.Min = 2
	cfg.Max = 8
	cfg.IdleTimeout = time.Millisecond
	cfg.MaxLifetime = time.Hour
	pool := testPool(t, cfg)

	time.Sleep(5 * time.Millisecond)
	pool.reapAndReplenish()

	stats := pool.Stats()
	if stats.Available < cfg.Min {
		t.Fatalf("expected reaper to top back up to Min=%d, got %d available", cfg.Min, stats.Available)
	}
}
