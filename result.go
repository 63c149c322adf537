package riptide

import (
	"strings"
	"time"
)

// LinkType classifies an outbound link found in a document.
type LinkType int

const (
	LinkInternal LinkType = iota
	LinkExternal
	LinkDownload
	LinkEmail
	LinkPhone
	LinkAnchor
)

func (t LinkType) String() string {
	switch t {
	case LinkInternal:
		return "internal"
	case LinkExternal:
		return "external"
	case LinkDownload:
		return "download"
	case LinkEmail:
		return "email"
	case LinkPhone:
		return "phone"
	case LinkAnchor:
		return "anchor"
	default:
		return "unknown"
	}
}

// Link is one outbound link discovered in a document.
type Link struct {
	URL     string   `json:"url"`
	Text    string   `json:"text"`
	Context string   `json:"context,omitempty"`
	Type    LinkType `json:"type"`
}

// MarshalJSON is not overridden; Type marshals as its numeric value by
// default. Callers that need the string form use Type.String() explicitly.

// MediaRef is one media reference (image, video, audio) found in a document.
type MediaRef struct {
	URL    string `json:"url"`
	Alt    string `json:"alt,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// ParseProvenance records which parser produced a Result and how.
type ParseProvenance struct {
	Parser           string        `json:"parser"`
	Confidence       float64       `json:"confidence"`
	FallbackOccurred bool          `json:"fallback_occurred"`
	ParseTime        time.Duration `json:"parse_time_ns"`
	Path             string        `json:"path"`
	PrimaryError     string        `json:"primary_error,omitempty"`
}

// Result is the canonical extracted document (spec's ExtractedDocument).
type Result struct {
	SourceURL string `json:"source_url"`
	FinalURL  string `json:"final_url"`

	Title         string     `json:"title,omitempty"`
	Byline        string     `json:"byline,omitempty"`
	Description   string     `json:"description,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	Language      string     `json:"language,omitempty"`
	SiteName      string     `json:"site_name,omitempty"`

	Text     string `json:"text"`
	Markdown string `json:"markdown,omitempty"`
	RawHTML  string `json:"raw_html,omitempty"`

	Links []Link     `json:"links,omitempty"`
	Media []MediaRef `json:"media,omitempty"`

	WordCount    int      `json:"word_count,omitempty"`
	ReadingTime  int      `json:"reading_time_minutes,omitempty"`
	QualityScore float64  `json:"quality_score"`
	Categories   []string `json:"categories,omitempty"`

	Provenance ParseProvenance `json:"provenance"`
}

// IsEmpty reports whether the document carries no usable content.
func (r *Result) IsEmpty() bool {
	return strings.TrimSpace(r.Text) == "" && r.Title == ""
}

func (r *Result) HasByline() bool      { return r.Byline != "" }
func (r *Result) HasPublishedAt() bool { return r.PublishedAt != nil }
func (r *Result) HasDescription() bool { return r.Description != "" }
func (r *Result) HasLinks() bool       { return len(r.Links) > 0 }

// The accessors below exist solely to satisfy pkg/quality.Document without
// that package importing riptide (which would cycle through pkg/reliability).
func (r *Result) GetTitle() string    { return r.Title }
func (r *Result) GetText() string     { return r.Text }
func (r *Result) GetMarkdown() string { return r.Markdown }
func (r *Result) GetByline() string   { return r.Byline }
func (r *Result) GetDescription() string { return r.Description }
func (r *Result) LinkCount() int      { return len(r.Links) }
