// Package search is the opaque search-API adapter the deepsearch endpoint
// consults: query in, ranked URLs out. Treated as an external collaborator
// per spec — the core pipeline never imports this package directly, only
// cmd/riptided wires it into the request handler.
package search

import "context"

// Result is one ranked search hit.
type Result struct {
	URL     string
	Title   string
	Snippet string
	Rank    int
}

// Provider is the opaque function query -> ranked URLs the deepsearch
// endpoint calls before handing URLs to the crawl pipeline.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}
