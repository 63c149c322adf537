package htmlutil

import "github.com/agnivade/levenshtein"

// NearDuplicateAnchorText reports whether two anchor texts are close enough
// to be considered duplicates of the same link (e.g. "Read more" vs
// "Read More »"): true when their edit distance is under 20% of the longer
// text's length. Link extraction does not call it.
func NearDuplicateAnchorText(a, b string) bool {
	if a == b {
		return true
	}
	if a == "" || b == "" {
		return false
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return true
	}
	dist := levenshtein.ComputeDistance(a, b)
	return float64(dist)/float64(longest) < 0.2
}
