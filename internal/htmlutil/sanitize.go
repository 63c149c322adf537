package htmlutil

import "github.com/microcosm-cc/bluemonday"

var sanitizerPolicy = bluemonday.UGCPolicy()

// SanitizeRawHTML strips scripts, event handlers, and other active content
// from html before it is echoed back in a Result's RawHTML field. HTML handed
// to the native parser for extraction is not sanitized.
func SanitizeRawHTML(html string) string {
	return sanitizerPolicy.Sanitize(html)
}
