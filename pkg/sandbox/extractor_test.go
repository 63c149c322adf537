package sandbox

import (
	"context"
	"strings"
	"testing"
)

func TestExtractorMetricsTrackSuccessAndFailure(t *testing.T) {
	ex, err := NewExtractor()
	if err != nil {
		t.Fatalf("new extractor: %v", err)
	}
	defer ex.Close()

	if _, err := ex.Extract(context.Background(), []byte(sampleArticleHTML), "https://example.com/vents"); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if _, err := ex.Extract(context.Background(), nil, "https://example.com/"); err == nil {
		t.Fatalf("expected failure on empty document")
	}

	m := ex.Metrics()
	if m.TotalExtractions != 2 {
		t.Errorf("TotalExtractions = %d, want 2", m.TotalExtractions)
	}
	if m.TotalFailures != 1 {
		t.Errorf("TotalFailures = %d, want 1", m.TotalFailures)
	}
}

func TestExtractorErrorMessageIncludesKind(t *testing.T) {
	err := &Error{Kind: FailureResourceExhausted, Msg: "pool exhausted"}
	if got := err.Error(); got != "sandbox: resource_exhausted: pool exhausted" {
		t.Errorf("Error() = %q", got)
	}
}

func TestExtractModeFullKeepsBoilerplate(t *testing.T) {
	ex, err := NewExtractor()
	if err != nil {
		t.Fatalf("new extractor: %v", err)
	}
	defer ex.Close()

	doc, err := ex.ExtractMode(context.Background(), []byte(sampleArticleHTML), "https://example.com/vents", ModeFull, "")
	if err != nil {
		t.Fatalf("extract mode full: %v", err)
	}
	if !strings.Contains(doc.Text, "Home About Contact") {
		t.Errorf("ModeFull should keep nav/footer boilerplate, got %q", doc.Text)
	}
}

func TestExtractModeMetadataSkipsBody(t *testing.T) {
	ex, err := NewExtractor()
	if err != nil {
		t.Fatalf("new extractor: %v", err)
	}
	defer ex.Close()

	doc, err := ex.ExtractMode(context.Background(), []byte(sampleArticleHTML), "https://example.com/vents", ModeMetadata, "")
	if err != nil {
		t.Fatalf("extract mode metadata: %v", err)
	}
	if doc.Title == "" {
		t.Errorf("ModeMetadata should still populate Title")
	}
	if doc.Text != "" {
		t.Errorf("ModeMetadata should leave Text empty, got %q", doc.Text)
	}
}

func TestExtractModeCustomWithoutRegisteredProfileFails(t *testing.T) {
	ex, err := NewExtractor()
	if err != nil {
		t.Fatalf("new extractor: %v", err)
	}
	defer ex.Close()

	_, err = ex.ExtractMode(context.Background(), []byte(sampleArticleHTML), "https://example.com/vents", ModeCustom, "unknown-profile")
	if err == nil {
		t.Fatalf("expected error extracting with an unregistered custom profile")
	}
	var sboxErr *Error
	if !asError(err, &sboxErr) {
		t.Fatalf("expected a *sandbox.Error, got %T", err)
	}
	if sboxErr.Kind != FailureUnsupportedMode {
		t.Errorf("Kind = %v, want FailureUnsupportedMode", sboxErr.Kind)
	}
}

func TestRegisterCustomProfileRejectsInvalidWASM(t *testing.T) {
	ex, err := NewExtractor()
	if err != nil {
		t.Fatalf("new extractor: %v", err)
	}
	defer ex.Close()

	if err := ex.RegisterCustomProfile(context.Background(), "broken", []byte("not a wasm module")); err == nil {
		t.Fatalf("expected an error registering a malformed WASM binary")
	}
}

func asError(err error, target **Error) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	*target = e
	return true
}
