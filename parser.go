package riptide

import "context"

// Parser is the interface for URL and pre-fetched-HTML content extraction.
// Implement this to create test doubles for code that depends on an
// Orchestrator.
type Parser interface {
	// Parse fetches url and extracts its content, choosing fast, headless,
	// or probes-first per the gating pipeline.
	Parse(ctx context.Context, url string) (*Result, error)

	// ParseHTML extracts content from pre-fetched HTML, skipping the fetch
	// stage entirely (and therefore the gate decision, which always runs
	// the fast path extractor chain against the given markup).
	ParseHTML(ctx context.Context, html, url string) (*Result, error)
}

// LLMEnhancer is an optional, injected post-extraction enhancement step —
// for example, an LLM-backed summarizer or categorizer. It has no coupling
// to the gating pipeline's GateDecision; Orchestrator calls it, if set,
// after a Result is fully assembled and scored.
type LLMEnhancer interface {
	Enhance(ctx context.Context, result *Result) error
}

// Ensure Orchestrator implements the Parser interface.
var _ Parser = (*Orchestrator)(nil)
