package browserpool

import "context"

// Renderer adapts a Pool to the shape the reliability pipeline expects of
// its Headless-path collaborator: Render(ctx, url) (string, error).
type Renderer struct {
	pool *Pool
}

// NewRenderer wraps pool as a reliability.Renderer-shaped adapter.
func NewRenderer(pool *Pool) *Renderer {
	return &Renderer{pool: pool}
}

// Render checks out a browser, navigates it to rawURL, and returns the
// rendered document HTML, always releasing the lease before returning.
func (r *Renderer) Render(ctx context.Context, rawURL string) (string, error) {
	lease, err := r.pool.Checkout(ctx)
	if err != nil {
		return "", err
	}
	defer lease.Close()
	return lease.Render(ctx, rawURL)
}
