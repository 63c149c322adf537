// Package reliability implements the gating and fallback pipeline that
// decides between the sandboxed extractor and the headless browser path,
// wraps either choice in a circuit breaker and bounded retry, and evaluates
// result quality to decide whether to escalate.
package reliability

import "time"

// RetryConfig bounds how many attempts an operation gets and how the delay
// between attempts grows.
type RetryConfig struct {
	MaxAttempts      int
	InitialDelay     time.Duration
	MaxDelay         time.Duration
	BackoffMultiplier float64
	Jitter           bool
}

// CircuitBreakerConfig tunes when a breaker trips open and how long it
// stays there before probing again.
type CircuitBreakerConfig struct {
	FailureThreshold    int
	OpenCooldown        time.Duration
	HalfOpenMaxInFlight int
}

// Config is the reliability pipeline's full configuration.
type Config struct {
	HTTPRetry                  RetryConfig
	HeadlessCircuitBreaker     CircuitBreakerConfig
	EnableGracefulDegradation  bool
	HeadlessTimeout            time.Duration
	FastExtractionQualityThreshold float64

	// ExtractionMode and CustomProfileID select which sandbox profile the
	// Fast and Headless paths' sandbox fallback run. ExtractionMode defaults
	// to ExtractArticle; CustomProfileID is only consulted when it's
	// ExtractCustom.
	ExtractionMode  ExtractionMode
	CustomProfileID string
}

// DefaultConfig mirrors the reference implementation's tuned defaults: one
// HTTP retry, a lenient 3-failure breaker for the headless service with a
// 60s cooldown, a 3s hard cap on rendering, and a 0.6 quality bar for
// accepting a fast-path result without escalating.
func DefaultConfig() Config {
	return Config{
		HTTPRetry: RetryConfig{
			MaxAttempts:       2,
			InitialDelay:      200 * time.Millisecond,
			MaxDelay:          2 * time.Second,
			BackoffMultiplier: 1.5,
			Jitter:            true,
		},
		HeadlessCircuitBreaker: CircuitBreakerConfig{
			FailureThreshold:    3,
			OpenCooldown:        60 * time.Second,
			HalfOpenMaxInFlight: 2,
		},
		EnableGracefulDegradation:      true,
		HeadlessTimeout:                3 * time.Second,
		FastExtractionQualityThreshold: 0.6,
		ExtractionMode:                 ExtractArticle,
	}
}

// ConfigFromEnv overlays environment variables onto DefaultConfig, matching
// the RELIABILITY_* variables internal/config.Load already reads.
func ConfigFromEnv(maxRetries uint32, timeout time.Duration, gracefulDegradation bool, qualityThreshold float64) Config {
	cfg := DefaultConfig()
	cfg.HTTPRetry.MaxAttempts = int(maxRetries)
	cfg.HeadlessTimeout = timeout
	cfg.EnableGracefulDegradation = gracefulDegradation
	cfg.FastExtractionQualityThreshold = qualityThreshold
	return cfg
}
