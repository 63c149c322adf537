package browserpool

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Pool manages a bounded set of headless browser instances, checked out via
// Lease and returned with Lease.Close. Ownership mirrors the original:
// available browsers sit behind one mutex, in-use browsers behind another,
// and a buffered channel of permits caps total concurrency.
type Pool struct {
	cfg     Config
	ctx     context.Context
	cancel  context.CancelFunc

	availMu   sync.Mutex
	available []*pooledBrowser

	inUseMu sync.RWMutex
	inUse   map[string]*pooledBrowser

	permits chan struct{}
	events  chan Event

	stopOnce sync.Once
	stopCh   chan struct{}
}

// New builds a Pool, launching cfg.InitialPoolSize browsers up front and
// starting its background health-check/reaper loop. The supplied ctx bounds
// every browser's lifetime: cancelling it tears the whole pool down.
func New(ctx context.Context, cfg Config) (*Pool, error) {
	poolCtx, cancel := context.WithCancel(ctx)
	p := &Pool{
		cfg:     cfg,
		ctx:     poolCtx,
		cancel:  cancel,
		inUse:   make(map[string]*pooledBrowser),
		permits: make(chan struct{}, cfg.MaxPoolSize),
		events:  make(chan Event, 64),
		stopCh:  make(chan struct{}),
	}
	for i := 0; i < cfg.MaxPoolSize; i++ {
		p.permits <- struct{}{}
	}

	for i := 0; i < cfg.InitialPoolSize; i++ {
		b, err := newPooledBrowser(poolCtx)
		if err != nil {
			p.emit(newEvent(EventBrowserRemoved, withReason("initial launch failed: "+err.Error())))
			continue
		}
		p.available = append(p.available, b)
		p.emit(newEvent(EventBrowserCreated, withBrowserID(b.id)))
	}

	go p.maintain()
	return p, nil
}

// Events returns the channel of pool lifecycle notifications. Consumers
// must keep draining it; a full buffer causes emit to drop the event rather
// than block pool operations.
func (p *Pool) Events() <-chan Event { return p.events }

func (p *Pool) emit(e Event) {
	select {
	case p.events <- e:
	default:
	}
}

// Checkout acquires a permit and hands back a Lease wrapping a healthy
// browser, launching one if none is available and the pool hasn't reached
// MaxPoolSize.
func (p *Pool) Checkout(ctx context.Context) (*Lease, error) {
	select {
	case <-p.permits:
	case <-ctx.Done():
		return nil, fmt.Errorf("browserpool: checkout: %w", ctx.Err())
	}

	b := p.popAvailable()
	if b == nil {
		launched, err := newPooledBrowser(p.ctx)
		if err != nil {
			p.permits <- struct{}{}
			return nil, fmt.Errorf("browserpool: checkout: launch new browser: %w", err)
		}
		b = launched
		p.emit(newEvent(EventBrowserCreated, withBrowserID(b.id)))
	}

	b.inUse = true
	b.markUsed()
	p.inUseMu.Lock()
	p.inUse[b.id] = b
	p.inUseMu.Unlock()

	p.emit(newEvent(EventBrowserCheckedOut, withBrowserID(b.id)))
	return &Lease{pool: p, browser: b}, nil
}

func (p *Pool) popAvailable() *pooledBrowser {
	p.availMu.Lock()
	defer p.availMu.Unlock()
	n := len(p.available)
	if n == 0 {
		return nil
	}
	b := p.available[n-1]
	p.available = p.available[:n-1]
	return b
}

// checkin is called by Lease.Close to return a browser to the pool, after a
// health check decides whether it's fit to be reused.
func (p *Pool) checkin(b *pooledBrowser) {
	p.inUseMu.Lock()
	delete(p.inUse, b.id)
	p.inUseMu.Unlock()

	b.inUse = false
	health := b.healthCheck(p.ctx, p.cfg.MemoryThresholdMB)
	p.emit(newEvent(EventBrowserCheckedIn, withBrowserID(b.id)))

	if health == HealthHealthy {
		p.availMu.Lock()
		p.available = append(p.available, b)
		p.availMu.Unlock()
	} else {
		b.close()
		p.emit(newEvent(EventBrowserRemoved, withBrowserID(b.id), withReason(health.String())))
	}

	p.permits <- struct{}{}
}

// Stats reports the pool's current occupancy.
type Stats struct {
	Available int
	InUse     int
	Capacity  int
}

func (p *Pool) Stats() Stats {
	p.availMu.Lock()
	avail := len(p.available)
	p.availMu.Unlock()
	p.inUseMu.RLock()
	inUse := len(p.inUse)
	p.inUseMu.RUnlock()
	return Stats{Available: avail, InUse: inUse, Capacity: p.cfg.MaxPoolSize}
}

// Close stops the background maintainer and shuts down every browser, in
// the pool and checked out alike.
func (p *Pool) Close() {
	p.stopOnce.Do(func() {
		close(p.stopCh)
		p.cancel()

		p.availMu.Lock()
		for _, b := range p.available {
			b.close()
		}
		p.available = nil
		p.availMu.Unlock()
	})
}

func (p *Pool) maintain() {
	ticker := time.NewTicker(p.cfg.HealthCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.performHealthChecks()
			p.cleanupExpired()
			p.maintainMinimumSize()
		}
	}
}

func (p *Pool) performHealthChecks() {
	p.availMu.Lock()
	snapshot := append([]*pooledBrowser(nil), p.available...)
	p.availMu.Unlock()

	healthy, unhealthy := 0, 0
	for _, b := range snapshot {
		if b.healthCheck(p.ctx, p.cfg.MemoryThresholdMB) == HealthHealthy {
			healthy++
		} else {
			unhealthy++
		}
	}
	p.emit(newEvent(EventHealthCheckCompleted, withHealthCounts(healthy, unhealthy)))
}

func (p *Pool) cleanupExpired() {
	p.availMu.Lock()
	kept := p.available[:0]
	var removed []*pooledBrowser
	for _, b := range p.available {
		if b.isExpired(p.cfg.MaxLifetime) || b.isIdle(p.cfg.IdleTimeout) || b.health != HealthHealthy {
			removed = append(removed, b)
			continue
		}
		kept = append(kept, b)
	}
	p.available = kept
	p.availMu.Unlock()

	for _, b := range removed {
		b.close()
		p.emit(newEvent(EventBrowserRemoved, withBrowserID(b.id), withReason("expired_or_idle")))
	}
	if len(removed) > 0 {
		p.emit(newEvent(EventPoolShrunk, withNewSize(p.Stats().Available)))
	}
}

func (p *Pool) maintainMinimumSize() {
	stats := p.Stats()
	deficit := p.cfg.MinPoolSize - (stats.Available + stats.InUse)
	for i := 0; i < deficit; i++ {
		b, err := newPooledBrowser(p.ctx)
		if err != nil {
			continue
		}
		p.availMu.Lock()
		p.available = append(p.available, b)
		p.availMu.Unlock()
		p.emit(newEvent(EventBrowserCreated, withBrowserID(b.id)))
	}
	if deficit > 0 {
		p.emit(newEvent(EventPoolExpanded, withNewSize(p.Stats().Available)))
	}
}
