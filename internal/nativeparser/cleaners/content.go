// Package cleaners runs the post-extraction cleaning pipeline over a
// candidate content node: stripping junk tags, absolutizing links, trimming
// low-quality subtrees, and removing attribute noise before conversion to
// markdown or plain text.
package cleaners

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/riptide-project/riptide/internal/nativeparser/dom"
)

// Options configures how aggressively Content cleans a candidate node.
type Options struct {
	Title          string
	BaseURL        *url.URL
	DefaultCleaner bool
}

var junkTags = []string{"script", "style", "noscript", "button", "input", "textarea", "select", "object", "embed", "form", "iframe"}

var attrAllowlist = map[string]bool{
	"src": true, "srcset": true, "href": true, "alt": true, "width": true, "height": true,
}

// Content runs the cleaning pipeline over candidate in place and returns it.
func Content(candidate *goquery.Selection, opts Options) *goquery.Selection {
	if candidate == nil || candidate.Length() == 0 {
		return candidate
	}

	rewriteTopLevel(candidate)
	makeLinksAbsolute(candidate, opts.BaseURL)
	stripJunkTags(candidate)
	cleanHeaders(candidate, opts.Title)
	if opts.DefaultCleaner {
		cleanHighLinkDensity(candidate)
	}
	removeEmpty(candidate)
	cleanAttributes(candidate)
	return candidate
}

// rewriteTopLevel converts a top-level html/body candidate into a div, since
// a raw html or body node can't be serialized standalone.
func rewriteTopLevel(candidate *goquery.Selection) {
	tag := strings.ToLower(goquery.NodeName(candidate))
	if tag == "html" || tag == "body" {
		candidate.Nodes[0].Data = "div"
	}
}

func makeLinksAbsolute(candidate *goquery.Selection, base *url.URL) {
	if base == nil {
		return
	}
	candidate.Find("a[href], img[src]").Each(func(_ int, el *goquery.Selection) {
		for _, attr := range []string{"href", "src"} {
			if v, ok := el.Attr(attr); ok && v != "" {
				if u, err := url.Parse(v); err == nil {
					el.SetAttr(attr, base.ResolveReference(u).String())
				}
			}
		}
	})
}

func stripJunkTags(candidate *goquery.Selection) {
	for _, tag := range junkTags {
		candidate.Find(tag).Remove()
	}
}

// cleanHeaders drops h1/h2 headers that duplicate the article title, which
// otherwise show up twice in the rendered output.
func cleanHeaders(candidate *goquery.Selection, title string) {
	if title == "" {
		return
	}
	candidate.Find("h1, h2").Each(func(_ int, h *goquery.Selection) {
		if similarEnough(strings.TrimSpace(h.Text()), title) {
			h.Remove()
		}
	})
}

func similarEnough(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	return a != "" && (a == b || strings.Contains(b, a) || strings.Contains(a, b))
}

var highDensityCandidateTags = regexp.MustCompile(`(?i)^(div|section|aside|ul|ol)$`)

// cleanHighLinkDensity removes div/section/aside/ul/ol subtrees whose link
// density is above 0.5 and whose text is shorter than 200 characters.
func cleanHighLinkDensity(candidate *goquery.Selection) {
	candidate.Find("*").Each(func(_ int, el *goquery.Selection) {
		tag := strings.ToLower(goquery.NodeName(el))
		if !highDensityCandidateTags.MatchString(tag) {
			return
		}
		text := strings.TrimSpace(el.Text())
		if len(text) == 0 {
			return
		}
		density := dom.LinkDensity(el)
		if density > 0.5 && len(text) < 200 {
			el.Remove()
		}
	})
}

func removeEmpty(candidate *goquery.Selection) {
	candidate.Find("p, div, span, li").Each(func(_ int, el *goquery.Selection) {
		if el.Children().Length() == 0 && strings.TrimSpace(el.Text()) == "" {
			el.Remove()
		}
	})
}

func cleanAttributes(candidate *goquery.Selection) {
	candidate.Find("*").Each(func(_ int, el *goquery.Selection) {
		node := el.Nodes[0]
		kept := node.Attr[:0]
		for _, attr := range node.Attr {
			if attrAllowlist[attr.Key] {
				kept = append(kept, attr)
			}
		}
		node.Attr = kept
	})
}
