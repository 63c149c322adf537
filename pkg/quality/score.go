// Package quality computes the deterministic quality heuristic used by the
// gating pipeline to decide whether a fast-path extraction is good enough to
// accept without escalating to a headless render.
package quality

import (
	"strings"
)

// Document is the minimal view over an extracted document that Score needs.
// riptide.Result satisfies it; defining the interface here (rather than
// depending on the root package) keeps pkg/quality free of any import back
// into riptide, which would otherwise cycle through pkg/reliability.
type Document interface {
	GetTitle() string
	GetText() string
	GetMarkdown() string
	GetByline() string
	GetDescription() string
	HasPublishedAt() bool
	LinkCount() int
}

// Score computes the quality score of a document in [0, 1]. Weights are
// fixed and must not be rebalanced. Their maximum is 0.20 + 0.40 + 0.20 +
// 4*0.05 = 1.00, which float64 addition carries to 1.0000000000000002: the
// result is clamped to 1.0, which is the behavioral contract downstream
// thresholds rely on.
func Score(doc Document) float64 {
	var score float64

	if strings.TrimSpace(doc.GetTitle()) != "" {
		score += 0.20
	}

	textLen := len(doc.GetText())
	switch {
	case textLen > 1000:
		score += 0.40
	case textLen > 200:
		score += 0.20
	}

	markers := strings.Count(doc.GetMarkdown(), "#") +
		strings.Count(doc.GetMarkdown(), "*") +
		strings.Count(doc.GetMarkdown(), "[")
	switch {
	case markers > 5:
		score += 0.20
	case markers > 2:
		score += 0.10
	}

	if doc.GetByline() != "" {
		score += 0.05
	}
	if doc.HasPublishedAt() {
		score += 0.05
	}
	if doc.GetDescription() != "" {
		score += 0.05
	}
	if doc.LinkCount() > 0 {
		score += 0.05
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}
