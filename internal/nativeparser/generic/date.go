package generic

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/markusmobius/go-dateparser"
)

var datePublishedMetaTags = []string{
	"article:published_time", "displaydate", "dc.date.issued", "date",
	"parsely-pub-date", "sailthru.date", "og:published_time",
}

var datePublishedSelectors = []string{
	".entry-date", ".byline .date", "time[datetime]", "time[pubdate]", ".published",
	".post-date", "span.date",
}

// PublishedAt locates a publish date from meta tags or CSS selectors and
// parses it with go-dateparser, which tolerates the wide variety of
// human-readable and relative formats sites actually emit.
func PublishedAt(doc *goquery.Document) *time.Time {
	if raw := extractFromMeta(doc, datePublishedMetaTags); raw != "" {
		if t := parseDate(raw); t != nil {
			return t
		}
	}

	for _, sel := range datePublishedSelectors {
		match := doc.Find(sel)
		if match.Length() == 0 {
			continue
		}
		if dt, ok := match.First().Attr("datetime"); ok {
			if t := parseDate(dt); t != nil {
				return t
			}
		}
		if t := parseDate(strings.TrimSpace(match.First().Text())); t != nil {
			return t
		}
	}
	return nil
}

func parseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	cfg := &dateparser.Configuration{StrictParsing: false}
	if parsed, err := dateparser.Parse(cfg, raw); err == nil && parsed != nil {
		t := parsed.Time.UTC()
		return &t
	}
	for _, layout := range []string{
		time.RFC3339, time.RFC1123Z, time.RFC1123, "2006-01-02", "January 2, 2006",
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
