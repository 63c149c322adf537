package riptide

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/riptide-project/riptide/internal/fetch"
	"github.com/riptide-project/riptide/internal/nativeparser"
	"github.com/riptide-project/riptide/pkg/browserpool"
	"github.com/riptide-project/riptide/pkg/metrics"
	"github.com/riptide-project/riptide/pkg/quality"
	"github.com/riptide-project/riptide/pkg/reliability"
	"github.com/riptide-project/riptide/pkg/sandbox"
	"github.com/riptide-project/riptide/pkg/streaming"
)

// Orchestrator is a thread-safe, reusable extraction client. It wires the
// sandboxed extractor, the native goquery parser, the headless browser
// pool, and the reliability gating pipeline together, and is the type
// every exported package-level helper in this module ultimately delegates
// to. Build one with New and share it across goroutines.
type Orchestrator struct {
	concurrency          int
	userAgent            string
	allowPrivateNetworks bool
	reliabilityConfig    reliability.Config
	browserPoolConfig    browserpool.Config
	metrics              metrics.Recorder
	enhancer             LLMEnhancer
	requestTimeout       time.Duration
	customProfileID      string
	customProfileWASM    []byte

	fetchClient      *fetch.Client
	sandboxExtractor *sandbox.Extractor
	nativeEngine     *nativeparser.Engine
	browserPool      *browserpool.Pool
	pipeline         *reliability.Pipeline

	closeOnce sync.Once
}

// New builds an Orchestrator with the given options applied over sensible
// defaults: concurrency 10, a 30s per-URL timeout, private networks
// disallowed (an SSRF guard), and an in-memory metrics recorder.
func New(opts ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		concurrency:          10,
		userAgent:            "RipTide/1.0 (+https://riptide.example/bot)",
		allowPrivateNetworks: false,
		reliabilityConfig:    reliability.DefaultConfig(),
		browserPoolConfig:    browserpool.DefaultConfig(),
		metrics:              metrics.NewInMemoryRecorder(),
		requestTimeout:       30 * time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}

	o.fetchClient = fetch.New(fetch.Config{
		MaxIdleConns:         200,
		MaxIdleConnsPerHost:  20,
		MaxConnsPerHost:      50,
		IdleConnTimeout:      120 * time.Second,
		ConnectTimeout:       3 * time.Second,
		TLSHandshakeTimeout:  10 * time.Second,
		UserAgent:            o.userAgent,
		AllowPrivateNetworks: o.allowPrivateNetworks,
	})
	o.fetchClient.EnableResponseCache(64<<20, 5*time.Minute)

	extractor, err := sandbox.NewExtractor()
	if err != nil {
		return nil, fmt.Errorf("riptide: build sandbox extractor: %w", err)
	}
	o.sandboxExtractor = extractor
	if len(o.customProfileWASM) > 0 {
		if err := o.sandboxExtractor.RegisterCustomProfile(context.Background(), o.customProfileID, o.customProfileWASM); err != nil {
			return nil, fmt.Errorf("riptide: register custom extraction profile %q: %w", o.customProfileID, err)
		}
	}
	o.nativeEngine = nativeparser.New()

	pool, err := browserpool.New(context.Background(), o.browserPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("riptide: build browser pool: %w", err)
	}
	o.browserPool = pool

	o.pipeline = reliability.NewPipeline(
		o.reliabilityConfig,
		&fetchAdapter{client: o.fetchClient},
		&sandboxAdapter{extractor: o.sandboxExtractor},
		&nativeAdapter{engine: o.nativeEngine},
		browserpool.NewRenderer(o.browserPool),
		o.metrics,
	)

	return o, nil
}

// Close releases the headless browser pool and the sandboxed extractor's
// compiled modules. Safe to call more than once.
func (o *Orchestrator) Close() {
	o.closeOnce.Do(func() {
		o.browserPool.Close()
		o.sandboxExtractor.Close()
	})
}

// Parse fetches url and extracts its content, letting the reliability
// pipeline decide between the fast sandboxed path, a full headless render,
// or a probes-first attempt at both.
func (o *Orchestrator) Parse(ctx context.Context, url string) (*Result, error) {
	if url == "" {
		return nil, newError(ErrValidation, "Parse", url, false, fmt.Errorf("empty URL"))
	}

	ctx, cancel := context.WithTimeout(ctx, o.requestTimeout)
	defer cancel()

	start := time.Now()
	doc, err := o.pipeline.Run(ctx, url)
	duration := time.Since(start)
	o.metrics.RecordHTTPRequest("parse", statusCodeFor(err), duration.Seconds())
	if err != nil {
		return nil, newError(ErrExtraction, "Parse", url, isRetryableFetchErr(err), err)
	}

	result := resultFromDocument(url, doc)
	if o.enhancer != nil {
		if err := o.enhancer.Enhance(ctx, result); err != nil {
			return nil, newError(ErrDependency, "Parse", url, false, fmt.Errorf("llm enhancement: %w", err))
		}
	}
	return result, nil
}

// ParseHTML extracts content from pre-fetched HTML, skipping the fetch and
// gate stages entirely. It always runs the fast-path extractor chain
// (sandbox first, native on fallback) directly against the given markup.
func (o *Orchestrator) ParseHTML(ctx context.Context, html, url string) (*Result, error) {
	if url == "" {
		return nil, newError(ErrValidation, "ParseHTML", url, false, fmt.Errorf("empty URL"))
	}
	if html == "" {
		return nil, newError(ErrValidation, "ParseHTML", url, false, fmt.Errorf("empty HTML content"))
	}

	start := time.Now()
	sbx := &sandboxAdapter{extractor: o.sandboxExtractor}
	doc, err := sbx.Extract(ctx, []byte(html), url, o.reliabilityConfig.ExtractionMode, o.reliabilityConfig.CustomProfileID)
	fallback := false
	primaryErr := ""
	parser := "sandbox"
	if err != nil {
		primaryErr = err.Error()
		fallback = true
		parser = "native"
		nat := &nativeAdapter{engine: o.nativeEngine}
		doc, err = nat.ParseHTML(ctx, html, url)
		if err != nil {
			return nil, newError(ErrExtraction, "ParseHTML", url, false, fmt.Errorf("both parsers failed: %w", err))
		}
	}

	doc.Provenance = reliability.Provenance{
		Parser:           parser,
		Confidence:       0.8,
		FallbackOccurred: fallback,
		ParseTime:        time.Since(start),
		Path:             "fast",
		PrimaryError:     primaryErr,
	}
	doc.QualityScore = quality.Score(doc)

	result := resultFromDocument(url, doc)
	if o.enhancer != nil {
		if err := o.enhancer.Enhance(ctx, result); err != nil {
			return nil, newError(ErrDependency, "ParseHTML", url, false, fmt.Errorf("llm enhancement: %w", err))
		}
	}
	o.metrics.RecordHTTPRequest("parse_html", 200, time.Since(start).Seconds())
	return result, nil
}

// BatchItem is one URL's outcome within a Crawl, in completion order rather
// than input order.
type BatchItem struct {
	Index  int
	URL    string
	Result *Result
	Err    error
}

// Crawl fetches and extracts every URL concurrently, bounded by the
// Orchestrator's configured concurrency, and streams a Metadata frame, one
// Result frame per completion (emitted as each finishes, not in input
// order), a Progress frame every 10 completions once total exceeds 10, and
// a final Summary frame. Grounded on the batch semaphore pattern used for
// concurrent CLI parsing, generalized into a streaming pipeline.
func (o *Orchestrator) Crawl(ctx context.Context, urls []string, concurrency int, stream *streaming.Stream) error {
	requestID := uuid.NewString()
	if err := stream.Write(streaming.NewMetadataFrame(len(urls), requestID, "crawl")); err != nil {
		return err
	}

	successful, failed, fromCache, startedAt, err := o.runBatch(ctx, requestID, "crawl", urls, concurrency, stream)
	if err != nil {
		return err
	}

	summary := streaming.NewCrawlSummaryFrame(len(urls), successful, failed, fromCache, time.Since(startedAt))
	return stream.Write(summary)
}

// CrawlDeepsearch runs the same concurrent fan-out as Crawl over urls
// already resolved from a search query, but assumes the caller has already
// written the Metadata and Search frames, and closes with a deepsearch
// Summary frame carrying the query and result count instead of a plain
// crawl Summary.
func (o *Orchestrator) CrawlDeepsearch(ctx context.Context, query string, urls []string, concurrency int, stream *streaming.Stream) error {
	requestID := uuid.NewString()

	successful, failed, fromCache, startedAt, err := o.runBatch(ctx, requestID, "deepsearch", urls, concurrency, stream)
	if err != nil {
		return err
	}

	status := "completed"
	if failed > 0 && successful == 0 {
		status = "failed"
	} else if failed > 0 {
		status = "partial"
	}

	summary := streaming.NewDeepsearchSummaryFrame(len(urls), successful, failed, fromCache, time.Since(startedAt), query, len(urls), status)
	return stream.Write(summary)
}

// runBatch fans out Parse calls across urls bounded by concurrency (the
// request's own "concurrency" option), clamped to the Orchestrator's
// process-wide configured maximum so one request can't starve every other
// in-flight one. A non-positive concurrency falls back to that same
// process-wide maximum. It writes a Result frame per completion (and a
// Progress frame every 10 completions once total > 10), and returns the
// tallies the caller's Summary frame needs.
func (o *Orchestrator) runBatch(ctx context.Context, operationID, operationType string, urls []string, concurrency int, stream *streaming.Stream) (successful, failed, fromCache int, startedAt time.Time, err error) {
	startedAt = time.Now()
	if concurrency <= 0 || concurrency > o.concurrency {
		concurrency = o.concurrency
	}
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	items := make(chan BatchItem, len(urls))

	for i, u := range urls {
		wg.Add(1)
		sem <- struct{}{}
		go func(index int, url string) {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					items <- BatchItem{Index: index, URL: url, Err: &RipTideError{
						Code: ErrExtraction, SubKind: Internal, URL: url, Op: "parse",
						Err: fmt.Errorf("panic: %v", r),
					}}
				}
			}()

			result, perr := o.Parse(ctx, url)
			items <- BatchItem{Index: index, URL: url, Result: result, Err: perr}
		}(i, u)
	}

	go func() {
		wg.Wait()
		close(items)
	}()

	var completed int
	for item := range items {
		completed++
		payload := streaming.ResultPayload{URL: item.URL}
		if item.Err != nil {
			failed++
			payload.Status = statusCodeFor(item.Err)
			payload.Error = &streaming.ErrorDetail{
				ErrorType: errorTypeOf(item.Err),
				Message:   item.Err.Error(),
				Retryable: isRetryableFetchErr(item.Err),
			}
		} else {
			successful++
			payload.Status = 200
			payload.QualityScore = item.Result.QualityScore
			payload.ProcessingTimeMs = int64(item.Result.Provenance.ParseTime / time.Millisecond)
			payload.GateDecision = item.Result.Provenance.Path
			payload.Document = item.Result
		}

		frame := streaming.NewResultFrame(item.Index, payload, completed, len(urls), successful)
		if werr := stream.Write(frame); werr != nil {
			return successful, failed, fromCache, startedAt, werr
		}

		if len(urls) > 10 && completed%10 == 0 {
			progress := streaming.NewProgressFrame(operationID, operationType, "extracting", startedAt, completed, len(urls))
			if werr := stream.Write(progress); werr != nil {
				return successful, failed, fromCache, startedAt, werr
			}
		}
	}

	return successful, failed, fromCache, startedAt, nil
}

func statusCodeFor(err error) int {
	if err == nil {
		return 200
	}
	return 502
}

func errorTypeOf(err error) string {
	var rte *RipTideError
	if ok := asRipTideError(err, &rte); ok {
		return rte.Code.String()
	}
	return ErrExtraction.String()
}

func asRipTideError(err error, target **RipTideError) bool {
	for err != nil {
		if rte, ok := err.(*RipTideError); ok {
			*target = rte
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func isRetryableFetchErr(err error) bool {
	var rte *RipTideError
	if asRipTideError(err, &rte) {
		return rte.Retryable
	}
	return false
}

