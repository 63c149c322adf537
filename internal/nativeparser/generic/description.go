package generic

import "github.com/PuerkitoBio/goquery"

var descriptionMetaTags = []string{"description", "og:description", "twitter:description", "dc.description"}

const descriptionMaxLength = 1000

// Description finds a page summary from meta description tags, truncated to
// a sane maximum since some sites stuff full articles into the tag.
func Description(doc *goquery.Document) string {
	desc := extractFromMeta(doc, descriptionMetaTags)
	if len(desc) > descriptionMaxLength {
		desc = desc[:descriptionMaxLength]
	}
	return desc
}
