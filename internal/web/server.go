// Package web exposes the lyrics widget over HTTP: JSON endpoints for search,
// disambiguation and cheat codes, plus a plain-text page for launch-query searches.
package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/lyricsbox/lyricsbox/internal/cheatcode"
	"github.com/lyricsbox/lyricsbox/internal/logging"
	"github.com/lyricsbox/lyricsbox/internal/search"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Config holds server configuration.
type Config struct {
	AllowedOrigins []string
	Pulse          time.Duration
	// State reports the data store state for /health. Optional.
	State func() string
}

// Server encapsulates the HTTP handlers and their dependencies.
type Server struct {
	search *search.Orchestrator
	config Config
	log    *slog.Logger
}

// NewServer creates a new server instance.
func NewServer(orch *search.Orchestrator, cfg Config, logger *slog.Logger) *Server {
	if cfg.Pulse <= 0 {
		cfg.Pulse = cheatcode.PulseDuration
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Server{search: orch, config: cfg, log: logger.With(logging.FieldComponent, "web")}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

// respondJSON writes a JSON response.
func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		s.log.Error("encode JSON response", "error", err)
	}
}

// respondError writes an error response.
func (s *Server) respondError(w http.ResponseWriter, statusCode int, message string) {
	s.respondJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}
