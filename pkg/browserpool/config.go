// Package browserpool manages a bounded pool of headless Chrome instances,
// used as the rendering primary on the Headless path and as a fallback
// renderer for the Fast path's reliability pipeline.
package browserpool

import "time"

// Config bounds the pool's size and lifetime policy.
type Config struct {
	MinPoolSize         int
	MaxPoolSize         int
	InitialPoolSize     int
	IdleTimeout         time.Duration
	MaxLifetime         time.Duration
	HealthCheckInterval time.Duration
	MemoryThresholdMB   uint64
	EnableRecovery      bool
	MaxRetries          int
}

// DefaultConfig mirrors the browser pool defaults.
func DefaultConfig() Config {
	return Config{
		MinPoolSize:         1,
		MaxPoolSize:         5,
		InitialPoolSize:     3,
		IdleTimeout:         30 * time.Second,
		MaxLifetime:         300 * time.Second,
		HealthCheckInterval: 10 * time.Second,
		MemoryThresholdMB:   500,
		EnableRecovery:      true,
		MaxRetries:          3,
	}
}
