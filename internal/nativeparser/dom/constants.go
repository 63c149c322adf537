// Package dom implements the readability-style scoring algorithm the native
// parser uses to find a document's main content node: tag/class/id weighting,
// sibling merging, and link-density based pruning.
package dom

import "regexp"

var (
	paragraphScoreTags = regexp.MustCompile(`(?i)^(p|li|span|pre)$`)
	childContentTags   = regexp.MustCompile(`(?i)^(td|blockquote|ol|ul|dl)$`)
	badTags            = regexp.MustCompile(`(?i)^(address|form)$`)
	nonTopCandidateTags = regexp.MustCompile(`(?i)^(br|b|i|label|hr|area|base|basefont|input|img|link|meta)$`)

	positiveScoreRE = regexp.MustCompile(`(?i)article|articlecontent|instapaper_body|blog|body|content|entry-content-asset|entry|hentry|main|normal|page|pagination|permalink|post|story|text|[-_]copy`)
	negativeScoreRE = regexp.MustCompile(`(?i)adbox|advert|author|bio|bookmark|bottom|byline|clear|com-|combx|comment|contact|copy|credit|crumb|date|deck|excerpt|featured|foot|footer|footnote|graf|head|info|infotext|instapaper_ignore|jump|linebreak|link|masthead|media|meta|modal|outbrain|promo|pr_|related|respond|roundcontent|scroll|secondary|share|shopping|shoutbox|side|sidebar|sponsor|stamp|sub|summary|tags|tools|widget`)
	photoHintsRE    = regexp.MustCompile(`(?i)figure|photo|image|caption`)
	readabilityAsset = regexp.MustCompile(`(?i)entry-content-asset`)

	unlikelyCandidatesRE = regexp.MustCompile(`(?i)banner|combx|comment|community|disqus|extra|foot|header|menu|remark|rss|shoutbox|sidebar|sponsor|ad-break|agegate|pagination|pager|popup|tweet|twitter`)

	stripOutputTags = []string{"script", "style", "noscript", "iframe", "form", "object", "embed", "textarea", "button", "input", "select"}
)
