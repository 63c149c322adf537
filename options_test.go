package riptide

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/riptide-project/riptide/internal/config"
	"github.com/riptide-project/riptide/pkg/reliability"
)

func TestWithConcurrencyIgnoresNonPositive(t *testing.T) {
	o := &Orchestrator{concurrency: 10}
	WithConcurrency(0)(o)
	assert.Equal(t, 10, o.concurrency)
	WithConcurrency(-5)(o)
	assert.Equal(t, 10, o.concurrency)
	WithConcurrency(25)(o)
	assert.Equal(t, 25, o.concurrency)
}

func TestWithRequestTimeoutIgnoresNonPositive(t *testing.T) {
	o := &Orchestrator{requestTimeout: 30 * time.Second}
	WithRequestTimeout(0)(o)
	assert.Equal(t, 30*time.Second, o.requestTimeout)
	WithRequestTimeout(5 * time.Second)(o)
	assert.Equal(t, 5*time.Second, o.requestTimeout)
}

func TestWithMetricsRecorderIgnoresNil(t *testing.T) {
	recorder := &testRecorder{}
	o := &Orchestrator{}
	WithMetricsRecorder(nil)(o)
	assert.Nil(t, o.metrics)
	WithMetricsRecorder(recorder)(o)
	assert.Same(t, recorder, o.metrics)
}

func TestWithAllowPrivateNetworksToggles(t *testing.T) {
	o := &Orchestrator{allowPrivateNetworks: false}
	WithAllowPrivateNetworks(true)(o)
	assert.True(t, o.allowPrivateNetworks)
}

func TestReliabilityConfigFromProcessConfigMapsFields(t *testing.T) {
	cfg := &config.Config{
		MaxRetries:          5,
		Timeout:             20 * time.Second,
		GracefulDegradation: false,
		QualityThreshold:    0.75,
	}

	got := ReliabilityConfigFromProcessConfig(cfg)

	want := reliability.ConfigFromEnv(5, 20*time.Second, false, 0.75)
	assert.Equal(t, want, got)
}

type testRecorder struct{}

func (testRecorder) RecordExtractionFallback(fromMode, toMode, reason string) {}
func (testRecorder) RecordHTTPRequest(path string, statusCode int, durationSeconds float64) {}
func (testRecorder) RecordCircuitBreakerTrip(breaker string)                 {}
func (testRecorder) RecordPoolUtilization(inUse, capacity int)               {}
