package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	riptide "github.com/riptide-project/riptide"
	"github.com/riptide-project/riptide/internal/config"
	"github.com/riptide-project/riptide/internal/search"
)

// Server holds the shared Orchestrator and the collaborators each handler
// needs, analogous to the teacher's api-server example's Server type but
// generalized for streaming rather than single-shot JSON responses.
type Server struct {
	orchestrator *riptide.Orchestrator
	search       search.Provider
	cfg          *config.Config
	logger       *slog.Logger
}

// preStreamError is the standard JSON error body for failures that occur
// before any NDJSON frame is written (spec §6/§7).
type preStreamError struct {
	StatusCode int    `json:"status_code"`
	ErrorType  string `json:"error_type"`
	Message    string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(preStreamError{
		StatusCode: status,
		ErrorType:  errorType,
		Message:    message,
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
