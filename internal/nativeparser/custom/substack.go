package custom

var substackExtractor = &Extractor{
	Domain:           "substack.com",
	TitleSelectors:   []string{"h1.post-title"},
	AuthorSelectors:  []string{".byline-names"},
	ContentSelectors: []string{".available-content", ".body.markup"},
	CleanSelectors:   []string{".subscription-widget", ".post-ufi", ".button-wrapper"},
	DefaultCleaner:   true,
}

var nytimesExtractor = &Extractor{
	Domain:           "nytimes.com",
	TitleSelectors:   []string{"h1[data-testid=headline]", "h1.headline"},
	AuthorSelectors:  []string{"span[itemprop=name]", ".byline-author"},
	ContentSelectors: []string{"section[name=articleBody]"},
	CleanSelectors:   []string{".ad", ".css-1dv1kvn", "figure.media"},
	DefaultCleaner:   true,
}
