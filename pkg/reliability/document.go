package reliability

import "time"

// LinkRef mirrors riptide.Link without importing the root package, so the
// pipeline's collaborators (SandboxExtractor, NativeParser) stay
// independent of it.
type LinkRef struct {
	URL     string
	Text    string
	Context string
	Kind    int
}

// MediaRef mirrors riptide.MediaRef.
type MediaRef struct {
	URL    string
	Alt    string
	Width  int
	Height int
}

// Provenance records which parser produced a Document and whether a
// fallback fired, for the caller's observability and for the quality gate.
type Provenance struct {
	Parser           string
	Confidence       float64
	FallbackOccurred bool
	ParseTime        time.Duration
	Path             string
	PrimaryError     string
}

// Document is the pipeline's internal result shape; the root package adapts
// it into a riptide.Result.
type Document struct {
	FinalURL string

	Title       string
	Byline      string
	Description string
	PublishedAt *time.Time
	Language    string
	SiteName    string

	Text     string
	Markdown string
	RawHTML  string

	Links []LinkRef
	Media []MediaRef

	WordCount    int
	QualityScore float64

	Provenance Provenance
}

// IsEmpty reports whether d carries no usable content.
func (d *Document) IsEmpty() bool {
	return d.Text == "" && d.Title == ""
}

// quality.Document adapter methods, so reliability.Document satisfies
// pkg/quality.Document without that package needing to know about us.
func (d *Document) GetTitle() string       { return d.Title }
func (d *Document) GetText() string        { return d.Text }
func (d *Document) GetMarkdown() string    { return d.Markdown }
func (d *Document) GetByline() string      { return d.Byline }
func (d *Document) GetDescription() string { return d.Description }
func (d *Document) HasPublishedAt() bool   { return d.PublishedAt != nil }
func (d *Document) LinkCount() int         { return len(d.Links) }
