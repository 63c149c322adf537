package generic

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Language reads the document's declared language from <html lang>, a
// Content-Language meta tag, or og:locale, in that priority order.
func Language(doc *goquery.Document) string {
	if lang, ok := doc.Find("html").First().Attr("lang"); ok && lang != "" {
		return normalizeLang(lang)
	}
	if lang := extractFromMeta(doc, []string{"content-language"}); lang != "" {
		return normalizeLang(lang)
	}
	if locale := extractFromMeta(doc, []string{"og:locale"}); locale != "" {
		return normalizeLang(strings.ReplaceAll(locale, "_", "-"))
	}
	return ""
}

func normalizeLang(lang string) string {
	lang = strings.TrimSpace(lang)
	if idx := strings.IndexByte(lang, ','); idx >= 0 {
		lang = lang[:idx]
	}
	return strings.ToLower(lang)
}
