package custom

var mediumExtractor = &Extractor{
	Domain:           "medium.com",
	SupportedDomains: []string{"towardsdatascience.com", "betterhumans.coach.me"},
	TitleSelectors:   []string{"h1"},
	AuthorSelectors:  []string{"a[rel=author]", ".pw-author-name"},
	ContentSelectors: []string{"article section"},
	CleanSelectors:   []string{".pw-multi-vote-icon", ".speechify-ignore", "[data-testid=audioPlayButton]"},
	DefaultCleaner:   true,
}
