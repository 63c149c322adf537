package riptide

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/riptide-project/riptide/pkg/reliability"
)

func TestResultFromDocumentComputesReadingTimeFromWordCount(t *testing.T) {
	doc := &reliability.Document{
		FinalURL:     "https://example.com/a",
		Title:        "Example",
		Text:         "body",
		WordCount:    401, // rounds up to 3 minutes at 200wpm
		QualityScore: 0.9,
		Provenance:   reliability.Provenance{Parser: "native", Path: "fast"},
	}

	result := resultFromDocument("https://example.com/a", doc)

	assert.Equal(t, "https://example.com/a", result.SourceURL)
	assert.Equal(t, 401, result.WordCount)
	assert.Equal(t, 3, result.ReadingTime)
	assert.Equal(t, 0.9, result.QualityScore)
	assert.Equal(t, "native", result.Provenance.Parser)
}

func TestResultFromDocumentZeroWordsStillReadingTimeZero(t *testing.T) {
	doc := &reliability.Document{FinalURL: "https://example.com"}
	result := resultFromDocument("https://example.com", doc)
	assert.Equal(t, 0, result.ReadingTime)
}

func TestLinkRefsToLinksRoundTripsFields(t *testing.T) {
	refs := []reliability.LinkRef{
		{URL: "https://a.example", Text: "a", Context: "para", Kind: int(LinkExternal)},
	}
	links := linkRefsToLinks(refs)
	assert.Len(t, links, 1)
	assert.Equal(t, "https://a.example", links[0].URL)
	assert.Equal(t, LinkExternal, links[0].Type)
}

func TestLinkRefsToLinksNilOnEmpty(t *testing.T) {
	assert.Nil(t, linkRefsToLinks(nil))
}

func TestMediaRefsToMediaRoundTripsFields(t *testing.T) {
	refs := []reliability.MediaRef{{URL: "https://img.example/a.png", Alt: "alt", Width: 100, Height: 50}}
	media := mediaRefsToMedia(refs)
	assert.Len(t, media, 1)
	assert.Equal(t, 100, media[0].Width)
	assert.Equal(t, 50, media[0].Height)
}

func TestSandboxLinksToRefsWrapsBareURLs(t *testing.T) {
	refs := sandboxLinksToRefs([]string{"https://a.example", "https://b.example"})
	assert.Len(t, refs, 2)
	assert.Equal(t, "https://a.example", refs[0].URL)
	assert.Empty(t, refs[0].Text)
}

func TestSandboxLinksToRefsNilOnEmpty(t *testing.T) {
	assert.Nil(t, sandboxLinksToRefs(nil))
}

func TestProvenanceParseTimeSurvivesConversion(t *testing.T) {
	doc := &reliability.Document{
		Provenance: reliability.Provenance{ParseTime: 42 * time.Millisecond},
	}
	result := resultFromDocument("u", doc)
	assert.Equal(t, 42*time.Millisecond, result.Provenance.ParseTime)
}
