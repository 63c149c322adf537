package custom

var githubExtractor = &Extractor{
	Domain:           "github.com",
	TitleSelectors:   []string{"strong[itemprop=name]", ".js-repo-root h1"},
	ContentSelectors: []string{"article.markdown-body", "#readme"},
	CleanSelectors:   []string{".octicon", "a.anchor"},
	DefaultCleaner:   false,
}
