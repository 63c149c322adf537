package nativeparser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleArticle = `
<html lang="en">
<head>
<title>Example Site - A Long Article About Testing</title>
<meta property="og:description" content="A short summary of the article.">
<meta property="article:published_time" content="2024-03-15T10:00:00Z">
</head>
<body>
<nav class="sidebar">unrelated nav links</nav>
<article>
<h1>A Long Article About Testing</h1>
<div class="byline">By Jane Doe</div>
<p>This is the first paragraph of real content, it has quite a lot of detail, commas, and substance to score well against the boilerplate nav above.</p>
<p>This is a second paragraph continuing the narrative with more detail, more commas, and more substantial sentences than the navigation bar.</p>
<a href="/relative/link">Read more</a>
<img src="/images/hero.jpg" alt="hero image">
</article>
<footer class="footer">copyright stuff</footer>
</body>
</html>`

func TestExtractGenericArticle(t *testing.T) {
	e := New()
	doc, err := e.Extract(sampleArticle, "https://example.com/articles/testing")
	require.NoError(t, err)

	assert.Contains(t, doc.Title, "Testing")
	assert.NotEmpty(t, doc.Text)
	assert.Contains(t, doc.Text, "first paragraph")
	assert.True(t, doc.WordCount > 0)
	assert.Equal(t, "2024-03-15", doc.PublishedAt.Format("2006-01-02"))
}

func TestExtractLinksResolvedAbsolute(t *testing.T) {
	e := New()
	doc, err := e.Extract(sampleArticle, "https://example.com/articles/testing")
	require.NoError(t, err)

	require.NotEmpty(t, doc.Links)
	assert.True(t, strings.HasPrefix(doc.Links[0].URL, "https://example.com/"))
}

func TestExtractWikipediaUsesCustomExtractor(t *testing.T) {
	html := `<html><body><div id="mw-content-text"><p>Wikipedia body text that should be picked up directly rather than scored.</p></div><div class="navbox">nav junk</div></body></html>`
	e := New()
	doc, err := e.Extract(html, "https://en.wikipedia.org/wiki/Example")
	require.NoError(t, err)
	assert.Contains(t, doc.Text, "Wikipedia body text")
	assert.NotContains(t, doc.Text, "nav junk")
}

func TestExtractRejectsDocumentOverMaxSize(t *testing.T) {
	e := New().WithMaxDocumentSize(10)
	_, err := e.Extract(sampleArticle, "https://example.com/articles/testing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds limit")
}

func TestExtractZeroMaxSizeDisablesGuard(t *testing.T) {
	e := New().WithMaxDocumentSize(0)
	_, err := e.Extract(sampleArticle, "https://example.com/articles/testing")
	require.NoError(t, err)
}

func TestBaseDomain(t *testing.T) {
	assert.Equal(t, "example.com", baseDomain("www.example.com"))
	assert.Equal(t, "example.com", baseDomain("example.com"))
	assert.Equal(t, "co.uk", baseDomain("co.uk"))
}
