package dom

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func scoreCommas(text string) int {
	return strings.Count(text, ",")
}

func scoreLength(text string) int {
	return len(text) / 50
}

func scoreParagraph(p *goquery.Selection) int {
	text := strings.TrimSpace(p.Text())
	if text == "" {
		return 0
	}
	score := scoreCommas(text) + scoreLength(text)
	if len(text) < 20 {
		score -= 10
	}
	if len(text) >= 50 && len(text) <= 200 {
		score += 5
	}
	return score
}

func scoreNode(el *goquery.Selection) int {
	tag := strings.ToLower(goquery.NodeName(el))
	switch {
	case paragraphScoreTags.MatchString(tag):
		return scoreParagraph(el)
	case tag == "div":
		return 5
	case childContentTags.MatchString(tag):
		return 3
	case badTags.MatchString(tag):
		return -3
	case tag == "th":
		return -5
	}
	return 0
}

// weight scores a node by its class/id hints, favoring content-ish names and
// penalizing boilerplate-ish ones.
func weight(el *goquery.Selection) int {
	classes, _ := el.Attr("class")
	id, _ := el.Attr("id")
	score := 0

	if id != "" {
		if positiveScoreRE.MatchString(id) {
			score += 25
		}
		if negativeScoreRE.MatchString(id) {
			score -= 25
		}
	}
	if classes != "" {
		if score == 0 {
			if positiveScoreRE.MatchString(classes) {
				score += 25
			}
			if negativeScoreRE.MatchString(classes) {
				score -= 25
			}
		}
		if photoHintsRE.MatchString(classes) {
			score += 10
		}
		if readabilityAsset.MatchString(classes) {
			score += 25
		}
	}
	return score
}

func getScore(el *goquery.Selection) int {
	if s, ok := el.Attr("data-content-score"); ok {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return 0
}

func setScore(el *goquery.Selection, score int) {
	el.SetAttr("data-content-score", strconv.Itoa(score))
}

func addScore(el *goquery.Selection, amount int) {
	score := getOrInitScore(el) + amount
	setScore(el, score)
}

func getOrInitScore(el *goquery.Selection) int {
	if score := getScore(el); score != 0 {
		return score
	}
	score := scoreNode(el) + weight(el)
	addToParent(el, score)
	return score
}

// addToParent propagates a quarter of a scored node's value up to its
// parent, so a cluster of good paragraphs lifts the div wrapping them.
func addToParent(el *goquery.Selection, score int) {
	parent := el.Parent()
	if parent.Length() > 0 {
		addScore(parent, int(float64(score)*0.25))
	}
}

// ScoreCandidates assigns a data-content-score attribute to every paragraph,
// list item, div, and similar content-bearing node in doc.
func ScoreCandidates(doc *goquery.Document) {
	doc.Find("p, li, span, pre, div, td, blockquote, ol, ul, dl").Each(func(_ int, el *goquery.Selection) {
		score := scoreNode(el) + weight(el)
		addToParent(el, score)
		setScore(el, getScore(el)+score)
	})
}

// TopCandidate returns the highest-scored element after ScoreCandidates has
// run, merging in well-scored sibling nodes.
func TopCandidate(doc *goquery.Document) *goquery.Selection {
	var best *goquery.Selection
	topScore := 0

	doc.Find("[data-content-score]").Each(func(_ int, el *goquery.Selection) {
		tag := strings.ToLower(goquery.NodeName(el))
		if nonTopCandidateTags.MatchString(tag) {
			return
		}
		if s := getScore(el); s > topScore {
			topScore = s
			best = el
		}
	})

	if best == nil {
		if body := doc.Find("body"); body.Length() > 0 {
			return body
		}
		return doc.Selection
	}
	return mergeSiblings(best, topScore)
}

func mergeSiblings(candidate *goquery.Selection, topScore int) *goquery.Selection {
	parent := candidate.Parent()
	if parent.Length() == 0 {
		return candidate
	}

	threshold := 10
	if t := int(float64(topScore) * 0.25); t > threshold {
		threshold = t
	}

	var keep []*goquery.Selection
	parent.Children().Each(func(_ int, sib *goquery.Selection) {
		tag := strings.ToLower(goquery.NodeName(sib))
		if nonTopCandidateTags.MatchString(tag) {
			return
		}
		if sib.Get(0) == candidate.Get(0) {
			keep = append(keep, sib)
			return
		}
		sibScore := getScore(sib)
		if sibScore == 0 {
			return
		}
		density := LinkDensity(sib)
		bonus := 0
		if density < 0.05 {
			bonus += 20
		}
		if density >= 0.5 {
			bonus -= 20
		}
		sc, _ := sib.Attr("class")
		cc, _ := candidate.Attr("class")
		if sc != "" && sc == cc {
			bonus += int(float64(topScore) * 0.2)
		}
		if sibScore+bonus >= threshold {
			keep = append(keep, sib)
		}
	})

	if len(keep) <= 1 {
		return candidate
	}
	return joinSelections(keep)
}

func joinSelections(sels []*goquery.Selection) *goquery.Selection {
	joined := sels[0]
	for _, s := range sels[1:] {
		joined = joined.AddSelection(s)
	}
	return joined
}

// LinkDensity is the fraction of a node's text that sits inside anchor tags,
// used to downweight nav/boilerplate blocks that score well on length alone.
func LinkDensity(el *goquery.Selection) float64 {
	text := strings.TrimSpace(el.Text())
	if text == "" {
		return 0
	}
	var linkLen int
	el.Find("a").Each(func(_ int, a *goquery.Selection) {
		linkLen += len(strings.TrimSpace(a.Text()))
	})
	return float64(linkLen) / float64(len(text))
}
