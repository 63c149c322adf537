package quality

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDoc struct {
	title, text, markdown, byline, description string
	publishedAt                                bool
	links                                      int
}

func (f fakeDoc) GetTitle() string       { return f.title }
func (f fakeDoc) GetText() string        { return f.text }
func (f fakeDoc) GetMarkdown() string    { return f.markdown }
func (f fakeDoc) GetByline() string      { return f.byline }
func (f fakeDoc) GetDescription() string { return f.description }
func (f fakeDoc) HasPublishedAt() bool   { return f.publishedAt }
func (f fakeDoc) LinkCount() int         { return f.links }

func TestScoreHighQuality(t *testing.T) {
	d := fakeDoc{
		title:       "A Real Title",
		text:        strings.Repeat("x", 1500),
		markdown:    "# H1\n## H2\n* item\n* item2\n[link](u)\n[link2](u)",
		byline:      "Jane Doe",
		description: "desc",
		publishedAt: true,
		links:       3,
	}
	score := Score(d)
	assert.GreaterOrEqual(t, score, 0.8)
	assert.LessOrEqual(t, score, 1.0)
}

func TestScoreLowQuality(t *testing.T) {
	d := fakeDoc{text: "too short"}
	score := Score(d)
	assert.Less(t, score, 0.3)
}

func TestScoreClampedNotRebalanced(t *testing.T) {
	// Every qualifying attribute present: the float64 sum of the weights is
	// 1.0000000000000002 before clamp.
	d := fakeDoc{
		title:       "t",
		text:        strings.Repeat("x", 1500),
		markdown:    "######******[[[[[[",
		byline:      "b",
		description: "d",
		publishedAt: true,
		links:       1,
	}
	require.Equal(t, 1.0, Score(d))
}

func TestScoreMonotonicNonDecreasing(t *testing.T) {
	base := fakeDoc{text: strings.Repeat("x", 300)}
	baseScore := Score(base)

	withTitle := base
	withTitle.title = "t"
	assert.GreaterOrEqual(t, Score(withTitle), baseScore)

	withByline := withTitle
	withByline.byline = "b"
	assert.GreaterOrEqual(t, Score(withByline), Score(withTitle))
}

func TestScoreDeterministic(t *testing.T) {
	d := fakeDoc{title: "t", text: strings.Repeat("y", 250)}
	a := Score(d)
	b := Score(d)
	assert.Equal(t, a, b)
}
