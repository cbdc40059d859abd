package web

import (
	"errors"

	"github.com/lyricsbox/lyricsbox/internal/data"
)

// SearchRequest is the body for POST /api/search.
type SearchRequest struct {
	Text string `json:"text"`
}

// SearchResponse is returned by /api/search and /api/choose.
type SearchResponse struct {
	Text    string        `json:"text"`
	Count   int           `json:"count"`
	Results []data.Result `json:"results"`
}

// ChooseRequest is the body for POST /api/choose.
type ChooseRequest struct {
	Text     string `json:"text"`
	Original string `json:"original"`
	Chosen   string `json:"chosen"`
}

// Validate checks that the disambiguation names both titles.
func (r *ChooseRequest) Validate() error {
	if r.Original == "" {
		return errors.New("original cannot be empty")
	}
	if r.Chosen == "" {
		return errors.New("chosen cannot be empty")
	}
	return nil
}

// CheatRequest is the body for POST /api/cheat.
type CheatRequest struct {
	Text string `json:"text"`
}

// CheatResponse reports a cheat-code expansion. PulseMS tells the client how long to
// highlight the field.
type CheatResponse struct {
	Matched bool   `json:"matched"`
	Text    string `json:"text"`
	PulseMS int64  `json:"pulse_ms,omitempty"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
