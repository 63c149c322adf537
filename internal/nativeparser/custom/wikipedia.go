package custom

var wikipediaExtractor = &Extractor{
	Domain:           "wikipedia.org",
	TitleSelectors:   []string{"h1#firstHeading", "h2.title"},
	ContentSelectors: []string{"#mw-content-text"},
	CleanSelectors:   []string{".mw-editsection", "#toc", ".navbox", ".infobox tr, .infobox td, .infobox tbody", "sup.reference"},
	DateSelectors:    []string{"#footer-info-lastmod"},
	DefaultCleaner:   false,
}
