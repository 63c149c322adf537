// Command riptided is the HTTP front door for the extraction core: it
// exposes POST /crawl/stream and POST /deepsearch/stream, both NDJSON
// streaming endpoints, backed by a single shared riptide.Orchestrator.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	riptide "github.com/riptide-project/riptide"
	"github.com/riptide-project/riptide/internal/config"
	"github.com/riptide-project/riptide/internal/logging"
	"github.com/riptide-project/riptide/internal/search"
	"github.com/riptide-project/riptide/pkg/metrics"
)

func main() {
	logger := logging.New(slog.LevelInfo)
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}

	recorder := metrics.NewInMemoryRecorder()

	orchestrator, err := riptide.New(
		riptide.WithConcurrency(cfg.MaxConcurrency),
		riptide.WithMetricsRecorder(recorder),
		riptide.WithReliabilityConfig(riptide.ReliabilityConfigFromProcessConfig(cfg)),
	)
	if err != nil {
		logger.Error("orchestrator init failed", "err", err)
		os.Exit(1)
	}
	defer orchestrator.Close()

	var provider search.Provider
	if cfg.SerperAPIKey != "" {
		provider = search.NewSerperProvider(cfg.SerperAPIKey)
	}

	srv := &Server{
		orchestrator: orchestrator,
		search:       provider,
		cfg:          cfg,
		logger:       logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /crawl/stream", srv.handleCrawlStream)
	mux.HandleFunc("POST /deepsearch/stream", srv.handleDeepsearchStream)
	mux.HandleFunc("GET /healthz", srv.handleHealthz)

	addr := ":" + port()
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("riptided listening", "addr", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func port() string {
	if p := os.Getenv("RIPTIDE_PORT"); p != "" {
		return p
	}
	return "8080"
}
