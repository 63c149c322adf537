package sandbox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
)

// FailureKind classifies why an extraction attempt failed, matching the
// sandbox's failure taxonomy.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureInvalidHTML
	FailureResourceExhausted
	FailureUnsupportedMode
	FailureInternal
)

// Error is returned by Extract on failure, carrying the FailureKind callers
// switch on to decide whether a fallback parser should run.
type Error struct {
	Kind FailureKind
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("sandbox: %s: %s", e.kindString(), e.Msg) }

func (e *Error) kindString() string {
	switch e.Kind {
	case FailureInvalidHTML:
		return "invalid_html"
	case FailureResourceExhausted:
		return "resource_exhausted"
	case FailureUnsupportedMode:
		return "unsupported_mode"
	default:
		return "internal"
	}
}

// Document is the sandbox's extraction output, a reduced shape relative to
// the native parser's since regex-based extraction can't do readability
// scoring; the caller decides whether this suffices or a fallback is due.
// The JSON tags also double as the wire contract a custom WASM module's
// "extract" export must produce for ModeCustom.
type Document struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	DateRaw  string   `json:"date_raw"`
	Text     string   `json:"text"`
	Markdown string   `json:"markdown"`
	Links    []string `json:"links"`
}

// Extractor runs regex-based extraction over untrusted HTML using a pooled
// Instance borrowed from a cached, AOT-compiled Module. It is the hardened
// primary on the Fast path and the fallback on the Headless path.
type Extractor struct {
	cache *ModuleCache
	pools map[Mode]*Pool

	customMu       sync.RWMutex
	customRuntimes map[string]*CustomRuntime

	totalExtractions int64
	totalFailures     int64
}

// NewExtractor builds an Extractor with its own module cache and a pool per
// built-in mode, eagerly compiling ModeArticle since it's the overwhelmingly
// common case. Custom profiles are registered separately via
// RegisterCustomProfile once their WASM binary is available.
func NewExtractor() (*Extractor, error) {
	e := &Extractor{
		cache:          NewModuleCache(DefaultMaxBytes),
		pools:          make(map[Mode]*Pool),
		customRuntimes: make(map[string]*CustomRuntime),
	}
	if _, err := e.poolFor(ModeArticle); err != nil {
		return nil, err
	}
	return e, nil
}

// RegisterCustomProfile compiles wasmBinary under a bounded wazero runtime
// and makes it reachable as ModeCustom with the given profileID. Replacing
// an already-registered profileID closes the old runtime first.
func (e *Extractor) RegisterCustomProfile(ctx context.Context, profileID string, wasmBinary []byte) error {
	rt, err := NewCustomRuntime(ctx, wasmBinary, DefaultCustomRuntimeConfig())
	if err != nil {
		return err
	}

	e.customMu.Lock()
	if old, ok := e.customRuntimes[profileID]; ok {
		old.Close(ctx)
	}
	e.customRuntimes[profileID] = rt
	e.customMu.Unlock()
	return nil
}

func (e *Extractor) poolFor(mode Mode) (*Pool, error) {
	if pool, ok := e.pools[mode]; ok {
		return pool, nil
	}
	module, err := e.cache.GetOrCompile(mode)
	if err != nil {
		return nil, err
	}
	pool := NewPool(module, DefaultPoolConfig())
	e.pools[mode] = pool
	return pool, nil
}

// Extract runs the article extraction profile over html, returning a
// reduced Document or a classified Error.
func (e *Extractor) Extract(ctx context.Context, html []byte, sourceURL string) (*Document, error) {
	return e.ExtractMode(ctx, html, sourceURL, ModeArticle, "")
}

// ExtractMode runs mode's extraction profile over html. profileID is only
// consulted when mode is ModeCustom, selecting which RegisterCustomProfile
// runtime handles the request; it's ignored for the three built-in modes.
func (e *Extractor) ExtractMode(ctx context.Context, html []byte, sourceURL string, mode Mode, profileID string) (*Document, error) {
	atomic.AddInt64(&e.totalExtractions, 1)

	if len(html) == 0 {
		atomic.AddInt64(&e.totalFailures, 1)
		return nil, &Error{Kind: FailureInvalidHTML, Msg: "empty document"}
	}

	if mode == ModeCustom {
		doc, err := e.extractCustom(ctx, html, sourceURL, profileID)
		if err != nil {
			atomic.AddInt64(&e.totalFailures, 1)
			return nil, err
		}
		return doc, nil
	}

	pool, err := e.poolFor(mode)
	if err != nil {
		atomic.AddInt64(&e.totalFailures, 1)
		return nil, &Error{Kind: FailureUnsupportedMode, Msg: err.Error()}
	}

	inst, err := pool.Checkout(ctx)
	if err != nil {
		atomic.AddInt64(&e.totalFailures, 1)
		return nil, &Error{Kind: FailureResourceExhausted, Msg: err.Error()}
	}
	defer pool.Return(inst)

	doc, err := runExtraction(inst.module, html, sourceURL)
	if err != nil {
		atomic.AddInt64(&e.totalFailures, 1)
		return nil, err
	}
	return doc, nil
}

// extractCustom runs html through the registered CustomRuntime for
// profileID. The runtime's wire contract is a single packed pointer/length
// return holding a JSON-encoded Document, the simplest ABI that still lets
// an operator-supplied module populate every field runExtraction derives
// from regex matches for the built-in modes.
func (e *Extractor) extractCustom(ctx context.Context, html []byte, sourceURL, profileID string) (*Document, error) {
	e.customMu.RLock()
	rt, ok := e.customRuntimes[profileID]
	e.customMu.RUnlock()
	if !ok {
		return nil, &Error{Kind: FailureUnsupportedMode, Msg: fmt.Sprintf("no custom profile registered for %q", profileID)}
	}

	out, err := rt.Run(ctx, html)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(out, &doc); err != nil {
		return nil, &Error{Kind: FailureInternal, Msg: fmt.Sprintf("custom module returned invalid document: %v", err)}
	}
	if doc.Title == "" && doc.Text == "" {
		return nil, &Error{Kind: FailureInvalidHTML, Msg: "custom module returned no extractable signal"}
	}
	return &doc, nil
}

func runExtraction(module *Module, html []byte, sourceURL string) (*Document, error) {
	text := string(html)

	doc := &Document{}
	if m := module.Title.FindStringSubmatch(text); len(m) > 1 {
		doc.Title = strings.TrimSpace(stripTags(m[1]))
	}
	if m := module.Author.FindStringSubmatch(text); len(m) > 1 {
		doc.Author = strings.TrimSpace(m[1])
	}
	if m := module.Date.FindStringSubmatch(text); len(m) > 1 {
		doc.DateRaw = strings.TrimSpace(m[1])
	}

	body := text
	if loc := module.Content.FindStringIndex(text); loc != nil {
		body = text[loc[1]:]
	}
	body = module.Boiler.ReplaceAllString(body, "")
	plain := stripTags(body)
	doc.Text = normalizeWhitespace(plain)
	doc.Markdown = doc.Text

	base, err := url.Parse(sourceURL)
	if err == nil {
		doc.Links = extractLinks(body, base)
	}

	if doc.Title == "" && doc.Text == "" {
		return nil, &Error{Kind: FailureInvalidHTML, Msg: "no extractable signal found"}
	}
	return doc, nil
}

// Metrics reports this Extractor's lifetime extraction/failure counts.
type Metrics struct {
	TotalExtractions int64
	TotalFailures    int64
}

func (e *Extractor) Metrics() Metrics {
	return Metrics{
		TotalExtractions: atomic.LoadInt64(&e.totalExtractions),
		TotalFailures:    atomic.LoadInt64(&e.totalFailures),
	}
}

// Close releases every mode pool's background maintainer goroutine and
// every registered custom runtime's wazero instance.
func (e *Extractor) Close() {
	for _, pool := range e.pools {
		pool.Close()
	}
	e.customMu.Lock()
	for _, rt := range e.customRuntimes {
		rt.Close(context.Background())
	}
	e.customMu.Unlock()
}
