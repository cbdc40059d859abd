package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lyricsbox/lyricsbox/internal/formatter"
	"github.com/lyricsbox/lyricsbox/internal/query"
)

// handleRoot handles GET /. With a launch query (q, query or search) it runs the search
// and answers in plain text; otherwise it describes the service.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	if text, ok := query.FromRawQuery(r.URL.RawQuery); ok {
		results := s.search.Search(r.Context(), text)
		out, err := formatter.New().Format(results, formatter.FormatText)
		if err != nil {
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, out)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": "lyricsbox",
		"endpoints": map[string]string{
			"health": "GET /health",
			"search": "GET /api/search?q=... | POST /api/search",
			"choose": "POST /api/choose",
			"cheat":  "POST /api/cheat",
			"launch": "GET /?q=...",
		},
	})
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "healthy"}
	if s.config.State != nil {
		resp["data"] = s.config.State()
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// handleSearch handles GET /api/search?q= and POST /api/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var text string
	switch r.Method {
	case http.MethodGet:
		text, _ = query.FromRawQuery(r.URL.RawQuery)
	case http.MethodPost:
		var req SearchRequest
		if !s.decode(w, r, &req) {
			return
		}
		text = req.Text
	default:
		s.respondError(w, http.StatusMethodNotAllowed, "Only GET and POST methods are allowed")
		return
	}

	results := s.search.Search(r.Context(), text)
	s.respondJSON(w, http.StatusOK, SearchResponse{Text: text, Count: len(results), Results: results})
}

// handleChoose handles POST /api/choose.
func (s *Server) handleChoose(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}
	var req ChooseRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	text, results := s.search.Choose(r.Context(), req.Text, req.Original, req.Chosen)
	s.respondJSON(w, http.StatusOK, SearchResponse{Text: text, Count: len(results), Results: results})
}

// handleCheat handles POST /api/cheat.
func (s *Server) handleCheat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}
	var req CheatRequest
	if !s.decode(w, r, &req) {
		return
	}

	replacement, ok := s.search.CheatCode(r.Context(), req.Text)
	if !ok {
		s.respondJSON(w, http.StatusOK, CheatResponse{Matched: false, Text: req.Text})
		return
	}
	s.respondJSON(w, http.StatusOK, CheatResponse{
		Matched: true,
		Text:    replacement,
		PulseMS: s.config.Pulse.Milliseconds(),
	})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid JSON body: %v", err))
		return false
	}
	return true
}
