package generic

import "regexp"

var rtlScriptRanges = [][2]rune{
	{0x0590, 0x05FF}, // Hebrew
	{0x0600, 0x06FF}, // Arabic
	{0x0700, 0x074F}, // Syriac
	{0x0780, 0x07BF}, // Thaana
	{0x07C0, 0x07FF}, // NKo
	{0x2D30, 0x2D7F}, // Tifinagh
}

var stripNonDirectional = regexp.MustCompile(`[\s\n\x00\f\t\v'"\-0-9+?!]+`)

// Direction returns "ltr", "rtl", "bidi", or "" for text with no detectable
// directional script, scanning its first strongly-directional characters.
func Direction(text string) string {
	stripped := []rune(stripNonDirectional.ReplaceAllString(text, ""))
	if len(stripped) == 0 {
		return ""
	}

	var hasLTR, hasRTL bool
	for _, r := range stripped {
		if isRTLRune(r) {
			hasRTL = true
		} else {
			hasLTR = true
		}
		if hasLTR && hasRTL {
			return "bidi"
		}
	}
	switch {
	case hasRTL:
		return "rtl"
	case hasLTR:
		return "ltr"
	}
	return ""
}

func isRTLRune(r rune) bool {
	for _, rng := range rtlScriptRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}
	return false
}
