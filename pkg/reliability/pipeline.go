package reliability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riptide-project/riptide/pkg/quality"
)

// ErrHeadlessUnavailable is returned when the Headless path is requested
// but no renderer/headless URL was configured.
var ErrHeadlessUnavailable = errors.New("reliability: headless service not configured")

// Pipeline composes a Fetcher, SandboxExtractor, NativeParser, and Renderer
// under retry/circuit-breaker/timeout protection to turn a URL into a
// Document.
type Pipeline struct {
	cfg Config

	fetcher   Fetcher
	sandbox   SandboxExtractor
	native    NativeParser
	renderer  Renderer
	metrics   MetricsRecorder

	httpBreaker     *CircuitBreaker
	headlessBreaker *CircuitBreaker
}

// NewPipeline wires a Pipeline's collaborators. metrics may be nil, in
// which case events are discarded.
func NewPipeline(cfg Config, fetcher Fetcher, sandbox SandboxExtractor, native NativeParser, renderer Renderer, metrics MetricsRecorder) *Pipeline {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &Pipeline{
		cfg:             cfg,
		fetcher:         fetcher,
		sandbox:         sandbox,
		native:          native,
		renderer:        renderer,
		metrics:         metrics,
		httpBreaker:     NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 5, OpenCooldown: 30 * time.Second, HalfOpenMaxInFlight: 2}),
		headlessBreaker: NewCircuitBreaker(cfg.HeadlessCircuitBreaker),
	}
}

// Run selects a path for url via Decide and executes it, returning the
// extracted Document.
func (p *Pipeline) Run(ctx context.Context, url string) (*Document, error) {
	meta, err := p.fetchWithReliability(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("reliability: fetch: %w", err)
	}

	path := Decide(FetchMeta{
		StatusCode:    meta.StatusCode,
		ContentType:   meta.ContentType,
		ContentLength: meta.ContentLength,
		Body:          meta.Body,
		Domain:        hostOf(url),
	})

	switch path {
	case Fast:
		return p.runFast(ctx, url, meta)
	case Headless:
		return p.runHeadless(ctx, url)
	default:
		return p.runProbesFirst(ctx, url, meta)
	}
}

// fetchWithReliability wraps the initial GET in Timeout -> CircuitBreaker ->
// Retry -> Operation, the pipeline's fixed composition order applied to the
// outermost HTTP call.
func (p *Pipeline) fetchWithReliability(ctx context.Context, url string) (*FetchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.HeadlessTimeout*4)
	defer cancel()

	var result *FetchResult
	err := p.httpBreaker.Execute(ctx, func(ctx context.Context) error {
		return Retry(ctx, p.cfg.HTTPRetry, func(ctx context.Context) error {
			r, err := p.fetcher.Fetch(ctx, url, nil)
			if err != nil {
				return err
			}
			if r.StatusCode >= 500 {
				return fmt.Errorf("reliability: upstream status %d", r.StatusCode)
			}
			result = r
			return nil
		})
	})
	return result, err
}

func (p *Pipeline) runFast(ctx context.Context, url string, meta *FetchResult) (*Document, error) {
	start := time.Now()
	doc, err := p.sandbox.Extract(ctx, meta.Body, url, p.cfg.ExtractionMode, p.cfg.CustomProfileID)
	fallback := false
	primaryErr := ""
	if err != nil {
		primaryErr = err.Error()
		fallback = true
		doc, err = p.native.ParseHTML(ctx, string(meta.Body), url)
		if err != nil {
			return nil, fmt.Errorf("reliability: fast path exhausted both parsers: %w", err)
		}
	}

	parser := "sandbox"
	if fallback {
		parser = "native"
	}
	doc.Provenance = Provenance{
		Parser:           parser,
		Confidence:       0.8,
		FallbackOccurred: fallback,
		ParseTime:        time.Since(start),
		Path:             Fast.String(),
		PrimaryError:     primaryErr,
	}
	doc.QualityScore = quality.Score(doc)
	return doc, nil
}

func (p *Pipeline) runHeadless(ctx context.Context, url string) (*Document, error) {
	if p.renderer == nil {
		return nil, ErrHeadlessUnavailable
	}

	renderCtx, cancel := context.WithTimeout(ctx, p.cfg.HeadlessTimeout)
	defer cancel()

	var rendered string
	err := p.headlessBreaker.Execute(renderCtx, func(ctx context.Context) error {
		r, err := p.renderer.Render(ctx, url)
		if err != nil {
			return err
		}
		rendered = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reliability: headless render: %w", err)
	}

	start := time.Now()
	doc, err := p.native.ParseHTML(ctx, rendered, url)
	fallback := false
	primaryErr := ""
	if err != nil {
		primaryErr = err.Error()
		fallback = true
		doc, err = p.sandbox.Extract(ctx, []byte(rendered), url, p.cfg.ExtractionMode, p.cfg.CustomProfileID)
		if err != nil {
			return nil, fmt.Errorf("reliability: headless path exhausted both parsers: %w", err)
		}
	}

	parser := "native"
	if fallback {
		parser = "sandbox"
	}
	doc.Provenance = Provenance{
		Parser:           parser,
		Confidence:       0.85,
		FallbackOccurred: fallback,
		ParseTime:        time.Since(start),
		Path:             Headless.String(),
		PrimaryError:     primaryErr,
	}
	doc.QualityScore = quality.Score(doc)
	return doc, nil
}

func (p *Pipeline) runProbesFirst(ctx context.Context, url string, meta *FetchResult) (*Document, error) {
	fastDoc, fastErr := p.runFast(ctx, url, meta)
	if fastErr == nil && fastDoc.QualityScore >= p.cfg.FastExtractionQualityThreshold {
		return fastDoc, nil
	}

	reason := "quality_threshold_not_met"
	if fastErr != nil {
		reason = "fast_extraction_failed"
	}
	p.metrics.RecordExtractionFallback("raw", "headless", reason)

	if !p.cfg.EnableGracefulDegradation {
		if fastErr != nil {
			return nil, fastErr
		}
		return nil, fmt.Errorf("reliability: fast extraction quality %.2f below threshold %.2f and graceful degradation disabled", fastDoc.QualityScore, p.cfg.FastExtractionQualityThreshold)
	}

	headlessDoc, headlessErr := p.runHeadless(ctx, url)
	if headlessErr == nil {
		return headlessDoc, nil
	}

	if fastErr == nil {
		fastDoc.Provenance.Path = "probes_first_low_quality_fallback"
		return fastDoc, nil
	}
	return nil, fmt.Errorf("reliability: both fast and headless failed: %w", headlessErr)
}

func hostOf(rawURL string) string {
	for i := 0; i < len(rawURL); i++ {
		if rawURL[i] == '/' && i+1 < len(rawURL) && rawURL[i+1] == '/' {
			rest := rawURL[i+2:]
			for j := 0; j < len(rest); j++ {
				if rest[j] == '/' {
					return rest[:j]
				}
			}
			return rest
		}
	}
	return rawURL
}
