// Package embedded provides the built-in sample lyrics document, used when no data source
// is configured.
package embedded

import (
	"context"
	_ "embed"

	"github.com/lyricsbox/lyricsbox/internal/data"
	apperrors "github.com/lyricsbox/lyricsbox/internal/errors"
)

//go:embed lyrics.json
var lyricsJSON []byte

// Source decodes the embedded document.
type Source struct{}

// Fetch decodes the embedded JSON.
func (Source) Fetch(ctx context.Context) (*data.Document, error) {
	doc, err := data.DecodeDocument(lyricsJSON)
	if err != nil {
		return nil, apperrors.NewLoadError(apperrors.LoadParse, "embedded", err)
	}
	return doc, nil
}

// Name returns "embedded".
func (Source) Name() string { return "embedded" }

// Raw returns a copy of the embedded JSON, for seeding new databases.
func Raw() []byte {
	out := make([]byte, len(lyricsJSON))
	copy(out, lyricsJSON)
	return out
}
