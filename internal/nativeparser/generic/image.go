package generic

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var leadImageMetaTags = []string{"og:image", "twitter:image", "image_src", "parsely-image-url"}
var leadImageSelectors = []string{
	"#main-content img", ".entry-content img", "article img", ".post-content img",
}

// LeadImage picks the article's representative image, preferring
// og:image/twitter:image metadata over the first in-content <img>.
func LeadImage(doc *goquery.Document, base string) string {
	for _, name := range leadImageMetaTags {
		sel := doc.Find(`meta[property="` + name + `"], meta[name="` + name + `"], link[rel="image_src"]`)
		if sel.Length() == 0 {
			continue
		}
		first := sel.First()
		if v, ok := first.Attr("content"); ok && v != "" {
			return v
		}
		if v, ok := first.Attr("href"); ok && v != "" {
			return v
		}
	}

	var found string
	for _, sel := range leadImageSelectors {
		doc.Find(sel).EachWithBreak(func(_ int, img *goquery.Selection) bool {
			src, ok := img.Attr("src")
			if !ok || strings.TrimSpace(src) == "" {
				return true
			}
			if isLikelyIcon(img) {
				return true
			}
			found = src
			return false
		})
		if found != "" {
			break
		}
	}
	return found
}

func isLikelyIcon(img *goquery.Selection) bool {
	class, _ := img.Attr("class")
	class = strings.ToLower(class)
	return strings.Contains(class, "icon") || strings.Contains(class, "avatar") || strings.Contains(class, "logo")
}
