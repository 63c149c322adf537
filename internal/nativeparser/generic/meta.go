package generic

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractFromMeta walks names in priority order and returns the content of
// the first <meta name="..."> or <meta property="..."> that has a non-empty
// value, matching the ordered-priority meta lookup the native parser uses
// throughout its generic extractors.
func extractFromMeta(doc *goquery.Document, names []string) string {
	for _, name := range names {
		sel := doc.Find(`meta[name="` + name + `"], meta[property="` + name + `"]`)
		if sel.Length() == 0 {
			continue
		}
		if v, ok := sel.First().Attr("content"); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// extractFromSelectors returns the text of the first selector match with
// non-empty trimmed text.
func extractFromSelectors(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		match := doc.Find(sel)
		if match.Length() == 0 {
			continue
		}
		if text := strings.TrimSpace(match.First().Text()); text != "" {
			return text
		}
	}
	return ""
}

var spaceCollapser = func(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func normalizeSpaces(s string) string {
	return spaceCollapser(strings.TrimSpace(s))
}
