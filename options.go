package riptide

import (
	"time"

	"github.com/riptide-project/riptide/internal/config"
	"github.com/riptide-project/riptide/pkg/browserpool"
	"github.com/riptide-project/riptide/pkg/metrics"
	"github.com/riptide-project/riptide/pkg/reliability"
)

// ReliabilityConfigFromProcessConfig maps the process-wide environment
// configuration (internal/config.Load) onto the reliability pipeline's
// Config, so cmd/riptided doesn't need to know the pipeline's field names.
func ReliabilityConfigFromProcessConfig(cfg *config.Config) reliability.Config {
	return reliability.ConfigFromEnv(cfg.MaxRetries, cfg.Timeout, cfg.GracefulDegradation, cfg.QualityThreshold)
}

// Option is a functional option for configuring an Orchestrator.
type Option func(*Orchestrator)

// WithConcurrency bounds how many URLs an Orchestrator processes at once
// per batch request. Defaults to 10.
func WithConcurrency(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithUserAgent sets the User-Agent header used for every fetch.
func WithUserAgent(userAgent string) Option {
	return func(o *Orchestrator) {
		o.userAgent = userAgent
	}
}

// WithAllowPrivateNetworks allows or disallows fetching private-network
// URLs. Disabled by default as an SSRF guard.
func WithAllowPrivateNetworks(allow bool) Option {
	return func(o *Orchestrator) {
		o.allowPrivateNetworks = allow
	}
}

// WithReliabilityConfig overrides the retry/circuit-breaker/quality-gate
// defaults the reliability pipeline uses.
func WithReliabilityConfig(cfg reliability.Config) Option {
	return func(o *Orchestrator) {
		o.reliabilityConfig = cfg
	}
}

// WithBrowserPoolConfig overrides the headless browser pool's sizing and
// lifetime defaults.
func WithBrowserPoolConfig(cfg browserpool.Config) Option {
	return func(o *Orchestrator) {
		o.browserPoolConfig = cfg
	}
}

// WithMetricsRecorder injects an observability sink. Defaults to an
// in-memory recorder so the module runs standalone.
func WithMetricsRecorder(recorder metrics.Recorder) Option {
	return func(o *Orchestrator) {
		if recorder != nil {
			o.metrics = recorder
		}
	}
}

// WithLLMEnhancer injects an optional post-extraction enhancement step. Per
// spec this is a black-box capability with zero coupling to gate decisions;
// left nil, no enhancement runs.
func WithLLMEnhancer(enhancer LLMEnhancer) Option {
	return func(o *Orchestrator) {
		o.enhancer = enhancer
	}
}

// WithCustomExtractionProfile registers an operator-supplied WASM
// extraction module under profileID and switches the reliability pipeline's
// sandbox stage to ModeCustom, dispatching every Fast/Headless-path sandbox
// call to that module instead of a built-in regex profile. wasmBinary is
// compiled eagerly in New, so a malformed module fails construction rather
// than the first request.
func WithCustomExtractionProfile(profileID string, wasmBinary []byte) Option {
	return func(o *Orchestrator) {
		o.customProfileID = profileID
		o.customProfileWASM = wasmBinary
		o.reliabilityConfig.ExtractionMode = reliability.ExtractCustom
		o.reliabilityConfig.CustomProfileID = profileID
	}
}

// WithRequestTimeout bounds the total time allotted to fetch + extract a
// single URL, independent of the reliability pipeline's own internal
// per-stage timeouts.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.requestTimeout = d
		}
	}
}
