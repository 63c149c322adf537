package sandbox

import (
	"context"
	"reflect"
	"testing"
)

const sampleArticleHTML = `<!DOCTYPE html>
<html>
<head>
<title>Deep Sea Vents Found Off Azores</title>
<meta name="author" content="Maria Costa">
<meta property="article:published_time" content="2026-03-01T09:00:00Z">
</head>
<body>
<nav class="nav">Home About Contact</nav>
<article>
<h1>Deep Sea Vents Found Off Azores</h1>
<p>Researchers mapped a new hydrothermal vent field using an autonomous submersible.</p>
<p>The find extends the known range of chemosynthetic ecosystems in the North Atlantic.</p>
<a href="/related/vents">Related coverage</a>
</article>
<footer class="footer">Copyright 2026</footer>
</body>
</html>`

func TestExtractIsDeterministic(t *testing.T) {
	ex, err := NewExtractor()
	if err != nil {
		t.Fatalf("new extractor: %v", err)
	}
	defer ex.Close()

	first, err := ex.Extract(context.Background(), []byte(sampleArticleHTML), "https://example.com/vents")
	if err != nil {
		t.Fatalf("first extract: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := ex.Extract(context.Background(), []byte(sampleArticleHTML), "https://example.com/vents")
		if err != nil {
			t.Fatalf("repeat extract %d: %v", i, err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("extraction %d diverged from the first: %+v vs %+v", i, first, again)
		}
	}
}

func TestExtractPullsTitleAuthorAndLinks(t *testing.T) {
	ex, err := NewExtractor()
	if err != nil {
		t.Fatalf("new extractor: %v", err)
	}
	defer ex.Close()

	doc, err := ex.Extract(context.Background(), []byte(sampleArticleHTML), "https://example.com/vents")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if doc.Title != "Deep Sea Vents Found Off Azores" {
		t.Errorf("title = %q", doc.Title)
	}
	if doc.Author != "Maria Costa" {
		t.Errorf("author = %q", doc.Author)
	}
	if len(doc.Links) != 1 || doc.Links[0] != "https://example.com/related/vents" {
		t.Errorf("links = %v", doc.Links)
	}
	if doc.Text == "" {
		t.Errorf("expected non-empty extracted text")
	}
}

func TestExtractRejectsEmptyDocument(t *testing.T) {
	ex, err := NewExtractor()
	if err != nil {
		t.Fatalf("new extractor: %v", err)
	}
	defer ex.Close()

	_, err = ex.Extract(context.Background(), nil, "https://example.com/")
	if err == nil {
		t.Fatalf("expected an error for an empty document")
	}
	sandboxErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected a *Error, got %T", err)
	}
	if sandboxErr.Kind != FailureInvalidHTML {
		t.Errorf("expected FailureInvalidHTML, got %v", sandboxErr.Kind)
	}
}
