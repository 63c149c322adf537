// Package generic extracts document metadata (title, byline, publish date,
// excerpt, lead image, language, direction, word count, description) when no
// site-specific extractor claims the URL.
package generic

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var strongTitleMetaTags = []string{"tweetmeme-title", "dc.title", "rbtitle", "headline", "title"}
var weakTitleMetaTags = []string{"og:title"}

var strongTitleSelectors = []string{
	".hentry .entry-title", "h1#articleHeader", "h1.articleHeader", "h1.article",
	".instapaper_title", "#meebo-title",
}
var weakTitleSelectors = []string{
	"article h1", "#entry-title", ".entry-title", "#entryTitle", "#entrytitle",
	".entryTitle", ".entrytitle", "#articleTitle", ".articleTitle", "h1",
}

var titleSplitters = regexp.MustCompile(`(: | - | \| )`)

// Title finds the article title, preferring meta tags, then CSS selectors,
// then falling back to a cleaned <title> with the site name split off.
func Title(doc *goquery.Document) string {
	if t := extractFromMeta(doc, strongTitleMetaTags); t != "" {
		return cleanTitle(t, doc)
	}
	if t := extractFromSelectors(doc, strongTitleSelectors); t != "" {
		return cleanTitle(t, doc)
	}
	if t := extractFromMeta(doc, weakTitleMetaTags); t != "" {
		return cleanTitle(t, doc)
	}
	if t := extractFromSelectors(doc, weakTitleSelectors); t != "" {
		return cleanTitle(t, doc)
	}
	return cleanTitle(strings.TrimSpace(doc.Find("title").First().Text()), doc)
}

func cleanTitle(title string, doc *goquery.Document) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	if parts := titleSplitters.Split(title, -1); len(parts) > 1 {
		longest := parts[0]
		for _, p := range parts {
			if len(strings.TrimSpace(p)) > len(strings.TrimSpace(longest)) {
				longest = p
			}
		}
		if len(strings.TrimSpace(longest)) > len(title)/2 {
			title = strings.TrimSpace(longest)
		}
	}
	return normalizeSpaces(title)
}
