// Package file loads the lyrics document from a local JSON file.
package file

import (
	"context"
	"os"

	"github.com/lyricsbox/lyricsbox/internal/data"
	apperrors "github.com/lyricsbox/lyricsbox/internal/errors"
)

// Source reads the document at Path on every Fetch.
type Source struct {
	Path string
}

// New returns a Source for path.
func New(path string) *Source {
	return &Source{Path: path}
}

// Fetch reads and decodes the file.
func (s *Source) Fetch(ctx context.Context) (*data.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewLoadError(apperrors.LoadFetch, s.Path, err)
	}
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, apperrors.NewLoadError(apperrors.LoadFetch, s.Path, err)
	}
	doc, err := data.DecodeDocument(b)
	if err != nil {
		return nil, apperrors.NewLoadError(apperrors.LoadParse, s.Path, err)
	}
	return doc, nil
}

// Name returns the file path.
func (s *Source) Name() string {
	return s.Path
}
