package sandbox

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	tagRE      = regexp.MustCompile(`(?s)<[^>]+>`)
	anchorHref = regexp.MustCompile(`(?is)<a\s+[^>]*href="([^"]*)"`)
	whitespace = regexp.MustCompile(`\s+`)
)

// stripTags removes markup from s, leaving plain text. It is deliberately
// crude: the sandbox trades extraction fidelity for hard resource bounds, so
// callers relying on this as their only extraction path should expect a
// rougher result than the native parser's.
func stripTags(s string) string {
	s = stripScriptAndStyle(s)
	return tagRE.ReplaceAllString(s, " ")
}

func stripScriptAndStyle(s string) string {
	for _, tag := range []string{"script", "style", "noscript"} {
		open := "<" + tag
		closeTag := "</" + tag
		for {
			start := strings.Index(strings.ToLower(s), open)
			if start < 0 {
				break
			}
			rest := s[start:]
			end := strings.Index(strings.ToLower(rest), closeTag)
			if end < 0 {
				s = s[:start]
				break
			}
			tagEnd := strings.Index(rest[end:], ">")
			if tagEnd < 0 {
				s = s[:start]
				break
			}
			s = s[:start] + rest[end+tagEnd+1:]
		}
	}
	return s
}

func normalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// extractLinks pulls every anchor href out of body and resolves it against
// base, silently dropping hrefs that don't parse.
func extractLinks(body string, base *url.URL) []string {
	matches := anchorHref.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	links := make([]string, 0, len(matches))
	for _, m := range matches {
		href := strings.TrimSpace(m[1])
		if href == "" || strings.HasPrefix(href, "#") {
			continue
		}
		ref, err := url.Parse(href)
		if err != nil {
			continue
		}
		resolved := base.ResolveReference(ref).String()
		if seen[resolved] {
			continue
		}
		seen[resolved] = true
		links = append(links, resolved)
	}
	return links
}
