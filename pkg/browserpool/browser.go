package browserpool

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/performance"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
)

// Health classifies a pooled browser's condition.
type Health int

const (
	HealthHealthy Health = iota
	HealthUnhealthy
	HealthCrashed
	HealthMemoryExceeded
	HealthTimeout
)

func (h Health) String() string {
	switch h {
	case HealthHealthy:
		return "healthy"
	case HealthUnhealthy:
		return "unhealthy"
	case HealthCrashed:
		return "crashed"
	case HealthMemoryExceeded:
		return "memory_exceeded"
	case HealthTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// stats tracks a single browser's lifetime usage.
type stats struct {
	totalUses      uint64
	memoryUsageMB  uint64
	crashes        uint32
	timeouts       uint32
}

// pooledBrowser wraps one chromedp allocator/tab context pair along with its
// bookkeeping. It is unexported: callers only ever observe a *Lease or the
// pool's aggregate Stats.
type pooledBrowser struct {
	id        string
	allocCtx  context.Context
	cancelAll context.CancelFunc
	tabCtx    context.Context
	cancelTab context.CancelFunc

	createdAt time.Time
	lastUsed  time.Time
	stats     stats
	health    Health
	inUse     bool

	// probe overrides healthCheck's chromedp.Run for testing; nil means use
	// the real chromedp-backed probe.
	probe func() error
}

// newPooledBrowser launches a fresh headless Chrome instance, grounded on
// the allocator/context construction in tomasbasham-har-capture's Capture.
func newPooledBrowser(parent context.Context) (*pooledBrowser, error) {
	id := uuid.NewString()

	allocCtx, cancelAll := chromedp.NewExecAllocator(parent,
		append(
			chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
		)...,
	)

	tabCtx, cancelTab := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...any) {}),
		chromedp.WithErrorf(func(string, ...any) {}),
	)

	// Force the underlying browser process to start now rather than lazily
	// on the first Run call, so a launch failure surfaces at checkout time.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAll()
		return nil, fmt.Errorf("browserpool: launch browser %s: %w", id, err)
	}

	now := time.Now()
	return &pooledBrowser{
		id:        id,
		allocCtx:  allocCtx,
		cancelAll: cancelAll,
		tabCtx:    tabCtx,
		cancelTab: cancelTab,
		createdAt: now,
		lastUsed:  now,
		health:    HealthHealthy,
	}, nil
}

func (b *pooledBrowser) isExpired(maxLifetime time.Duration) bool {
	return time.Since(b.createdAt) > maxLifetime
}

func (b *pooledBrowser) isIdle(idleTimeout time.Duration) bool {
	return !b.inUse && time.Since(b.lastUsed) > idleTimeout
}

func (b *pooledBrowser) markUsed() {
	b.stats.totalUses++
	b.lastUsed = time.Now()
}

// healthCheck probes liveness with a bounded chromedp.Run against the
// browser's own tab context: it lists the page's frame tree (a crashed or
// detached tab fails this before anything else runs) and reads the tab's
// JS heap usage off the CDP Performance domain, distinguishing a graceful
// timeout (not fatal, but disqualifying) from a hard failure. probe is
// overridable in tests, where no real browser process is available to
// drive; when set, the real CDP round trip is skipped entirely and
// b.stats.memoryUsageMB is left as the test fixture set it, rather than
// being overwritten by a read that never happened.
func (b *pooledBrowser) healthCheck(_ context.Context, memoryThresholdMB uint64) Health {
	var err error
	if b.probe != nil {
		err = b.probe()
	} else {
		probeCtx, cancel := context.WithTimeout(b.tabCtx, 5*time.Second)
		defer cancel()
		err = chromedp.Run(probeCtx, chromedp.ActionFunc(func(ctx context.Context) error {
			if _, ferr := page.GetFrameTree().Do(ctx); ferr != nil {
				return fmt.Errorf("list open targets: %w", ferr)
			}
			if eerr := performance.Enable().Do(ctx); eerr != nil {
				return fmt.Errorf("enable performance domain: %w", eerr)
			}
			ms, merr := performance.GetMetrics().Do(ctx)
			if merr != nil {
				return fmt.Errorf("read performance metrics: %w", merr)
			}
			for _, m := range ms {
				if m.Name == "JSHeapUsedSize" {
					b.stats.memoryUsageMB = uint64(m.Value) / (1024 * 1024)
				}
			}
			return nil
		}))
	}
	switch {
	case err == nil:
		if b.stats.memoryUsageMB > memoryThresholdMB {
			b.health = HealthMemoryExceeded
		} else {
			b.health = HealthHealthy
		}
	case isTimeoutError(err):
		b.health = HealthTimeout
		b.stats.timeouts++
	default:
		b.health = HealthUnhealthy
	}
	return b.health
}

// render navigates to rawURL and returns the fully rendered document HTML,
// waiting for the page's outerHTML after the DOM content has loaded.
func (b *pooledBrowser) render(ctx context.Context, rawURL string) (string, error) {
	var html string
	err := chromedp.Run(ctx,
		chromedp.Navigate(rawURL),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("browserpool: render %s: %w", rawURL, err)
	}
	return html, nil
}

// close shuts the browser process and its tab context down.
func (b *pooledBrowser) close() {
	b.cancelTab()
	b.cancelAll()
}

func isTimeoutError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
