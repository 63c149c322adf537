package generic

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var authorMetaTags = []string{"byl", "clmst", "dc.author", "dcsext.author", "dc.creator", "rbauthors", "authors"}

var authorSelectors = []string{
	".entry .entry-author", ".byline .author", ".byline", "#byline", ".author.vcard .fn",
	".author-name", ".c-byline__author", "[rel=author]", ".byline-name", ".post-author",
}

const authorMaxLength = 300

var bylineRe = regexp.MustCompile(`^[\n\s]*By[:\s]*`)
var bylineRePrefix = regexp.MustCompile(`(?i)^[\n\s]*By`)

// Author finds a byline, preferring meta tags, then CSS selectors, then any
// element whose text starts with "By" and is short enough to be a name.
func Author(doc *goquery.Document) string {
	if a := extractFromMeta(doc, authorMetaTags); a != "" && len(a) <= authorMaxLength {
		return cleanAuthor(a)
	}
	if a := extractFromSelectors(doc, authorSelectors); a != "" && len(a) <= authorMaxLength {
		return cleanAuthor(a)
	}

	var found string
	doc.Find("*").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		text := strings.TrimSpace(el.Text())
		if bylineRePrefix.MatchString(text) && len(text) <= authorMaxLength {
			found = text
			return false
		}
		return true
	})
	if found != "" {
		return cleanAuthor(found)
	}
	return ""
}

func cleanAuthor(author string) string {
	author = bylineRe.ReplaceAllString(author, "")
	return normalizeSpaces(author)
}
