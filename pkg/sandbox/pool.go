package sandbox

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// PoolConfig bounds an instance Pool's size and lifetime.
type PoolConfig struct {
	Min             int
	Max             int
	Initial         int
	IdleTimeout     time.Duration
	MaxLifetime     time.Duration
	MaintainEvery   time.Duration
}

// DefaultPoolConfig mirrors the browser pool's defaults scaled down for a
// much cheaper resource: instances are regex bundles, not OS processes, so
// the ceiling is higher and the lifetime longer.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		Min:           2,
		Max:           16,
		Initial:       4,
		IdleTimeout:   30 * time.Second,
		MaxLifetime:   10 * time.Minute,
		MaintainEvery: 10 * time.Second,
	}
}

// Pool hands out Instances bound to one Module, backed by a buffered
// channel acting as both the free list and the backpressure mechanism:
// Checkout blocks (respecting ctx) when the pool is fully checked out.
type Pool struct {
	cfg    PoolConfig
	module *Module

	mu        sync.Mutex
	available chan *Instance
	inUse     map[*Instance]bool

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewPool builds a Pool for module, pre-filled to cfg.Initial instances,
// and starts its background maintainer goroutine.
func NewPool(module *Module, cfg PoolConfig) *Pool {
	p := &Pool{
		cfg:       cfg,
		module:    module,
		available: make(chan *Instance, cfg.Max),
		inUse:     make(map[*Instance]bool),
		stopCh:    make(chan struct{}),
	}
	for i := 0; i < cfg.Initial; i++ {
		p.available <- newInstance(module)
	}
	go p.maintain()
	return p
}

// Checkout borrows an Instance, blocking until one is free or ctx is done.
// It creates a fresh instance instead of waiting if the pool hasn't reached
// Max yet.
func (p *Pool) Checkout(ctx context.Context) (*Instance, error) {
	select {
	case inst := <-p.available:
		p.markInUse(inst)
		return inst, nil
	default:
	}

	p.mu.Lock()
	canGrow := len(p.inUse) < p.cfg.Max
	p.mu.Unlock()
	if canGrow {
		inst := newInstance(p.module)
		p.markInUse(inst)
		return inst, nil
	}

	select {
	case inst := <-p.available:
		p.markInUse(inst)
		return inst, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("sandbox: checkout: %w", ctx.Err())
	}
}

func (p *Pool) markInUse(inst *Instance) {
	p.mu.Lock()
	p.inUse[inst] = true
	p.mu.Unlock()
	inst.markUse()
}

// Return hands inst back to the pool. Calling Return twice on the same
// instance, or after it was already reaped, is a safe no-op.
func (p *Pool) Return(inst *Instance) {
	p.mu.Lock()
	if !p.inUse[inst] {
		p.mu.Unlock()
		return
	}
	delete(p.inUse, inst)
	p.mu.Unlock()

	inst.ResetState()
	select {
	case p.available <- inst:
	default:
		// pool already at capacity in the free list; drop the instance.
	}
}

// Stats reports the pool's current occupancy.
type Stats struct {
	Available int
	InUse     int
	Capacity  int
}

func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{Available: len(p.available), InUse: len(p.inUse), Capacity: p.cfg.Max}
}

// Close stops the background maintainer. Safe to call more than once.
func (p *Pool) Close() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}

func (p *Pool) maintain() {
	ticker := time.NewTicker(p.cfg.MaintainEvery)
	defer ticker.Stop()
	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.reapAndReplenish()
		}
	}
}

func (p *Pool) reapAndReplenish() {
	var kept []*Instance
	drain := len(p.available)
	for i := 0; i < drain; i++ {
		select {
		case inst := <-p.available:
			if inst.isExpired(p.cfg.MaxLifetime) || inst.isIdle(p.cfg.IdleTimeout) {
				continue
			}
			kept = append(kept, inst)
		default:
		}
	}
	for _, inst := range kept {
		p.available <- inst
	}

	p.mu.Lock()
	total := len(p.available) + len(p.inUse)
	p.mu.Unlock()
	for total < p.cfg.Min {
		p.available <- newInstance(p.module)
		total++
	}
}
