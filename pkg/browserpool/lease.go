package browserpool

import (
	"context"
	"sync"
)

// Lease is a checked-out browser borrowed from a Pool. Callers must call
// Close when finished; a Lease left open holds a permit and a browser out
// of rotation indefinitely.
type Lease struct {
	pool    *Pool
	browser *pooledBrowser

	closeOnce sync.Once
}

// Render navigates the leased browser to rawURL and returns its rendered
// outerHTML once the DOM has settled.
func (l *Lease) Render(ctx context.Context, rawURL string) (string, error) {
	return l.browser.render(ctx, rawURL)
}

// ID returns the leased browser's identifier, for logging and metrics.
func (l *Lease) ID() string { return l.browser.id }

// Close returns the browser to its pool. Safe to call more than once; only
// the first call has any effect.
func (l *Lease) Close() {
	l.closeOnce.Do(func() {
		l.pool.checkin(l.browser)
	})
}
