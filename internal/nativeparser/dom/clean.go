package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripUnwantedTags removes script/style/form/etc. nodes before scoring, so
// their text never contributes to a candidate's content score.
func StripUnwantedTags(doc *goquery.Document) {
	for _, tag := range stripOutputTags {
		doc.Find(tag).Remove()
	}
	doc.Find("*").Each(func(_ int, el *goquery.Selection) {
		for _, attr := range el.Nodes[0].Attr {
			if strings.HasPrefix(attr.Key, "on") {
				el.RemoveAttr(attr.Key)
			}
		}
	})
}

// RemoveUnlikelyCandidates drops nodes whose class/id strongly suggest
// boilerplate (nav, sidebar, footer, ad units) before scoring begins, unless
// the node also carries an article/body-ish positive hint.
func RemoveUnlikelyCandidates(doc *goquery.Document) {
	doc.Find("*").Each(func(_ int, el *goquery.Selection) {
		tag := strings.ToLower(goquery.NodeName(el))
		if tag == "html" || tag == "body" {
			return
		}
		classAndID, _ := el.Attr("class")
		id, _ := el.Attr("id")
		hint := classAndID + " " + id
		if unlikelyCandidatesRE.MatchString(hint) && !positiveScoreRE.MatchString(hint) {
			el.Remove()
		}
	})
}

// CleanHeaders removes every <h1>/<h2> in the candidate subtree whose
// class/id weight is negative, so a site's nav heading doesn't survive into
// the extracted body.
func CleanHeaders(candidate *goquery.Selection) {
	candidate.Find("h1, h2").Each(func(_ int, h *goquery.Selection) {
		if weight(h) < 0 {
			h.Remove()
		}
	})
}
