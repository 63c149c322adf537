// Package nativeparser is the always-available extraction path: goquery DOM
// parsing, readability-style content scoring, site-specific rules where
// they exist, and conversion to markdown and plain text. It backs both the
// Fast path's native fallback and the Headless path's native primary.
package nativeparser

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"

	"github.com/riptide-project/riptide/internal/htmlutil"
	"github.com/riptide-project/riptide/internal/nativeparser/cleaners"
	"github.com/riptide-project/riptide/internal/nativeparser/custom"
	"github.com/riptide-project/riptide/internal/nativeparser/dom"
	"github.com/riptide-project/riptide/internal/nativeparser/generic"
)

// Document is what the native parser produces. The caller (the root
// package's extraction orchestrator) adapts this into a riptide.Result,
// since this package must not import riptide to avoid a cycle.
type Document struct {
	Title       string
	Byline      string
	Description string
	PublishedAt *time.Time
	Language    string
	Direction   string
	SiteName    string

	Text     string
	Markdown string
	RawHTML  string

	Links []Link
	Media []Media

	WordCount int
}

// Link mirrors riptide.Link with a package-local LinkKind so this package
// stays independent of the root package.
type Link struct {
	URL     string
	Text    string
	Context string
	Kind    htmlutil.LinkKind
}

// Media mirrors riptide.MediaRef.
type Media struct {
	URL string
	Alt string
}

// DefaultMaxDocumentSize bounds how much HTML Extract will parse. Beyond
// this, goquery's full-document DOM tree is the dominant cost driver, not
// the extraction logic itself, so Extract rejects the input instead of
// silently degrading.
const DefaultMaxDocumentSize = 50 * 1024 * 1024 // 50MB

// Engine extracts a Document from raw HTML given the page's URL.
type Engine struct {
	registry        *custom.Registry
	maxDocumentSize int64
}

// New builds an Engine with the built-in curated site extractors loaded and
// DefaultMaxDocumentSize as its input size guard.
func New() *Engine {
	return &Engine{registry: custom.NewRegistry(), maxDocumentSize: DefaultMaxDocumentSize}
}

// WithMaxDocumentSize overrides the input size guard. A non-positive value
// disables it.
func (e *Engine) WithMaxDocumentSize(n int64) *Engine {
	e.maxDocumentSize = n
	return e
}

// Extract parses rawHTML fetched from pageURL and returns the extracted
// Document, choosing a custom site extractor when one is registered for the
// page's domain and otherwise falling back to the generic readability path.
func (e *Engine) Extract(rawHTML, pageURL string) (*Document, error) {
	if e.maxDocumentSize > 0 && int64(len(rawHTML)) > e.maxDocumentSize {
		return nil, fmt.Errorf("nativeparser: document size %d exceeds limit of %d bytes", len(rawHTML), e.maxDocumentSize)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("nativeparser: parse page url: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("nativeparser: parse html: %w", err)
	}

	custExtractor := e.registry.Lookup(baseDomain(base.Hostname()))

	var candidate *goquery.Selection
	var defaultCleaner bool
	if custExtractor != nil && len(custExtractor.ContentSelectors) > 0 {
		candidate, defaultCleaner = extractCustomContent(doc, custExtractor)
	}
	if candidate == nil || candidate.Length() == 0 {
		candidate = extractGenericContent(doc)
		defaultCleaner = true
	}

	cleaned := cleaners.Content(candidate, cleaners.Options{
		Title:          pickTitle(doc, custExtractor),
		BaseURL:        base,
		DefaultCleaner: defaultCleaner,
	})

	contentHTML, _ := cleaned.Html()
	markdown := toMarkdown(contentHTML)
	text := strings.TrimSpace(cleaned.Text())

	result := &Document{
		Title:       pickTitle(doc, custExtractor),
		Byline:      pickAuthor(doc, custExtractor),
		Description: generic.Description(doc),
		PublishedAt: pickDate(doc, custExtractor),
		Language:    generic.Language(doc),
		Direction:   generic.Direction(text),
		SiteName:    extractFromMetaSiteName(doc),
		Text:        text,
		Markdown:    markdown,
		RawHTML:     htmlutil.SanitizeRawHTML(contentHTML),
		Links:       extractLinks(cleaned, base),
		Media:       extractMedia(cleaned, base),
		WordCount:   generic.WordCount(text),
	}
	return result, nil
}

func extractGenericContent(doc *goquery.Document) *goquery.Selection {
	dom.RemoveUnlikelyCandidates(doc)
	dom.StripUnwantedTags(doc)
	dom.ScoreCandidates(doc)
	return dom.TopCandidate(doc)
}

func extractCustomContent(doc *goquery.Document, ex *custom.Extractor) (*goquery.Selection, bool) {
	for _, sel := range ex.ContentSelectors {
		match := doc.Find(sel)
		if match.Length() > 0 {
			for _, clean := range ex.CleanSelectors {
				match.Find(clean).Remove()
			}
			return match.First(), ex.DefaultCleaner
		}
	}
	return nil, ex.DefaultCleaner
}

func pickTitle(doc *goquery.Document, ex *custom.Extractor) string {
	if ex != nil {
		for _, sel := range ex.TitleSelectors {
			if t := strings.TrimSpace(doc.Find(sel).First().Text()); t != "" {
				return t
			}
		}
	}
	return generic.Title(doc)
}

func pickAuthor(doc *goquery.Document, ex *custom.Extractor) string {
	if ex != nil {
		for _, sel := range ex.AuthorSelectors {
			if a := strings.TrimSpace(doc.Find(sel).First().Text()); a != "" {
				return a
			}
		}
	}
	return generic.Author(doc)
}

func pickDate(doc *goquery.Document, ex *custom.Extractor) *time.Time {
	if ex != nil {
		for _, sel := range ex.DateSelectors {
			match := doc.Find(sel).First()
			if match.Length() == 0 {
				continue
			}
			if dt, ok := match.Attr("datetime"); ok {
				if t := parseDateOrNil(dt); t != nil {
					return t
				}
			}
			if t := parseDateOrNil(strings.TrimSpace(match.Text())); t != nil {
				return t
			}
		}
	}
	return generic.PublishedAt(doc)
}

func extractFromMetaSiteName(doc *goquery.Document) string {
	sel := doc.Find(`meta[property="og:site_name"]`)
	if sel.Length() == 0 {
		return ""
	}
	v, _ := sel.First().Attr("content")
	return strings.TrimSpace(v)
}

func extractLinks(content *goquery.Selection, base *url.URL) []Link {
	var links []Link
	seen := make(map[string]bool)
	content.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		abs := htmlutil.AbsoluteURL(base, href)
		if abs == "" || seen[abs] {
			return
		}
		seen[abs] = true
		links = append(links, Link{
			URL:  htmlutil.SanitizeURL(abs),
			Text: strings.TrimSpace(a.Text()),
			Kind: htmlutil.ClassifyLink(base, href),
		})
	})
	return links
}

func extractMedia(content *goquery.Selection, base *url.URL) []Media {
	var media []Media
	content.Find("img[src]").Each(func(_ int, img *goquery.Selection) {
		src, _ := img.Attr("src")
		abs := htmlutil.AbsoluteURL(base, src)
		if abs == "" {
			return
		}
		alt, _ := img.Attr("alt")
		media = append(media, Media{URL: abs, Alt: alt})
	})
	return media
}

func toMarkdown(html string) string {
	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(html)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(markdown)
}

func baseDomain(host string) string {
	parts := strings.Split(host, ".")
	if len(parts) <= 2 {
		return host
	}
	return strings.Join(parts[len(parts)-2:], ".")
}

func parseDateOrNil(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "January 2, 2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
