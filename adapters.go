package riptide

import (
	"context"
	"fmt"

	"github.com/riptide-project/riptide/internal/fetch"
	"github.com/riptide-project/riptide/internal/nativeparser"
	"github.com/riptide-project/riptide/pkg/reliability"
	"github.com/riptide-project/riptide/pkg/sandbox"
)

// fetchAdapter satisfies reliability.Fetcher by wrapping internal/fetch.Client.
type fetchAdapter struct {
	client *fetch.Client
}

func (a *fetchAdapter) Fetch(ctx context.Context, url string, headers map[string]string) (*reliability.FetchResult, error) {
	resp, err := a.client.Fetch(ctx, url, headers)
	if err != nil {
		return nil, err
	}
	return &reliability.FetchResult{
		FinalURL:      resp.FinalURL,
		StatusCode:    resp.StatusCode,
		ContentType:   resp.ContentType,
		ContentLength: resp.ContentLength,
		Body:          resp.Body,
	}, nil
}

// sandboxAdapter satisfies reliability.SandboxExtractor by wrapping
// pkg/sandbox.Extractor.
type sandboxAdapter struct {
	extractor *sandbox.Extractor
}

func (a *sandboxAdapter) Extract(ctx context.Context, html []byte, url string, mode reliability.ExtractionMode, profileID string) (*reliability.Document, error) {
	doc, err := a.extractor.ExtractMode(ctx, html, url, sandboxModeFor(mode), profileID)
	if err != nil {
		return nil, err
	}
	return &reliability.Document{
		FinalURL: url,
		Title:    doc.Title,
		Byline:   doc.Author,
		Text:     doc.Text,
		Markdown: doc.Markdown,
		Links:    sandboxLinksToRefs(doc.Links),
		Provenance: reliability.Provenance{
			Parser: "sandbox",
		},
	}, nil
}

// sandboxModeFor maps the reliability pipeline's decoupled ExtractionMode
// onto the concrete pkg/sandbox.Mode it actually dispatches on, defaulting
// an unset mode to Article so legacy callers that never set Config.ExtractionMode
// keep today's behavior.
func sandboxModeFor(mode reliability.ExtractionMode) sandbox.Mode {
	switch mode {
	case reliability.ExtractFull:
		return sandbox.ModeFull
	case reliability.ExtractMetadata:
		return sandbox.ModeMetadata
	case reliability.ExtractCustom:
		return sandbox.ModeCustom
	default:
		return sandbox.ModeArticle
	}
}

func sandboxLinksToRefs(links []string) []reliability.LinkRef {
	if len(links) == 0 {
		return nil
	}
	refs := make([]reliability.LinkRef, len(links))
	for i, l := range links {
		refs[i] = reliability.LinkRef{URL: l}
	}
	return refs
}

// nativeAdapter satisfies reliability.NativeParser by wrapping
// internal/nativeparser.Engine. The engine itself is synchronous and
// doesn't block on I/O, so ctx is accepted for interface compliance only.
type nativeAdapter struct {
	engine *nativeparser.Engine
}

func (a *nativeAdapter) ParseHTML(_ context.Context, html, url string) (*reliability.Document, error) {
	doc, err := a.engine.Extract(html, url)
	if err != nil {
		return nil, fmt.Errorf("native parse: %w", err)
	}
	return &reliability.Document{
		FinalURL:    url,
		Title:       doc.Title,
		Byline:      doc.Byline,
		Description: doc.Description,
		PublishedAt: doc.PublishedAt,
		Language:    doc.Language,
		SiteName:    doc.SiteName,
		Text:        doc.Text,
		Markdown:    doc.Markdown,
		RawHTML:     doc.RawHTML,
		Links:       nativeLinksToRefs(doc.Links),
		Media:       nativeMediaToRefs(doc.Media),
		WordCount:   doc.WordCount,
		Provenance: reliability.Provenance{
			Parser: "native",
		},
	}, nil
}

func nativeLinksToRefs(links []nativeparser.Link) []reliability.LinkRef {
	if len(links) == 0 {
		return nil
	}
	refs := make([]reliability.LinkRef, len(links))
	for i, l := range links {
		refs[i] = reliability.LinkRef{URL: l.URL, Text: l.Text, Context: l.Context, Kind: int(l.Kind)}
	}
	return refs
}

func nativeMediaToRefs(media []nativeparser.Media) []reliability.MediaRef {
	if len(media) == 0 {
		return nil
	}
	refs := make([]reliability.MediaRef, len(media))
	for i, m := range media {
		refs[i] = reliability.MediaRef{URL: m.URL, Alt: m.Alt}
	}
	return refs
}

// resultFromDocument converts the reliability pipeline's internal Document
// into the public Result type, the one place the package-local mirrored
// types collapse back into the root package's own.
func resultFromDocument(sourceURL string, doc *reliability.Document) *Result {
	return &Result{
		SourceURL:    sourceURL,
		FinalURL:     doc.FinalURL,
		Title:        doc.Title,
		Byline:       doc.Byline,
		Description:  doc.Description,
		PublishedAt:  doc.PublishedAt,
		Language:     doc.Language,
		SiteName:     doc.SiteName,
		Text:         doc.Text,
		Markdown:     doc.Markdown,
		RawHTML:      doc.RawHTML,
		Links:        linkRefsToLinks(doc.Links),
		Media:        mediaRefsToMedia(doc.Media),
		WordCount:    doc.WordCount,
		ReadingTime:  (doc.WordCount + 199) / 200,
		QualityScore: doc.QualityScore,
		Provenance: ParseProvenance{
			Parser:           doc.Provenance.Parser,
			Confidence:       doc.Provenance.Confidence,
			FallbackOccurred: doc.Provenance.FallbackOccurred,
			ParseTime:        doc.Provenance.ParseTime,
			Path:             doc.Provenance.Path,
			PrimaryError:     doc.Provenance.PrimaryError,
		},
	}
}

func linkRefsToLinks(refs []reliability.LinkRef) []Link {
	if len(refs) == 0 {
		return nil
	}
	links := make([]Link, len(refs))
	for i, r := range refs {
		links[i] = Link{URL: r.URL, Text: r.Text, Context: r.Context, Type: LinkType(r.Kind)}
	}
	return links
}

func mediaRefsToMedia(refs []reliability.MediaRef) []MediaRef {
	if len(refs) == 0 {
		return nil
	}
	media := make([]MediaRef, len(refs))
	for i, r := range refs {
		media[i] = MediaRef{URL: r.URL, Alt: r.Alt, Width: r.Width, Height: r.Height}
	}
	return media
}
