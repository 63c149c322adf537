// Package htmlutil holds DOM helpers shared by the native parser and the
// sandboxed extractor: link absolutization/classification, URL sanitization,
// and raw-HTML sanitization.
package htmlutil

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"
)

// LinkKind classifies a link. Ordinal values match riptide.LinkType exactly
// so callers convert with a plain int cast; htmlutil does not import the
// root riptide package to avoid a cycle (riptide -> htmlutil -> riptide).
type LinkKind int

const (
	LinkInternal LinkKind = iota
	LinkExternal
	LinkDownload
	LinkEmail
	LinkPhone
	LinkAnchor
)

var trackingParams = []string{
	"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content",
	"fbclid", "gclid", "ref", "source", "campaign",
}

// AbsoluteURL resolves href against base, returning "" if either fails to
// parse.
func AbsoluteURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}

// SanitizeURL strips known tracking query parameters from rawURL.
func SanitizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	for _, p := range trackingParams {
		q.Del(p)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

var phoneRe = regexp.MustCompile(`^tel:`)

// ClassifyLink determines a link's type relative to the document's base
// host, matching the {internal, external, download, email, phone, anchor}
// enumeration.
func ClassifyLink(base *url.URL, href string) LinkKind {
	switch {
	case strings.HasPrefix(href, "#"):
		return LinkAnchor
	case strings.HasPrefix(href, "mailto:"):
		return LinkEmail
	case phoneRe.MatchString(href):
		return LinkPhone
	}

	u, err := url.Parse(href)
	if err != nil {
		return LinkExternal
	}
	if u.Host == "" || u.Host == base.Host {
		if isDownloadPath(u.Path) {
			return LinkDownload
		}
		return LinkInternal
	}
	if isDownloadPath(u.Path) {
		return LinkDownload
	}
	return LinkExternal
}

var downloadExtensions = map[string]bool{
	".pdf": true, ".zip": true, ".doc": true, ".docx": true, ".xls": true,
	".xlsx": true, ".ppt": true, ".pptx": true, ".tar": true, ".gz": true,
	".mp3": true, ".mp4": true, ".exe": true, ".dmg": true,
}

func isDownloadPath(path string) bool {
	for ext := range downloadExtensions {
		if strings.HasSuffix(strings.ToLower(path), ext) {
			return true
		}
	}
	return false
}

// ValidEmail reports whether s parses as an RFC 5322 mailbox. ClassifyLink
// does not call it: any href starting with "mailto:" is an email link.
func ValidEmail(s string) bool {
	_, err := mail.ParseAddress(s)
	return err == nil
}
