package mock

import (
	"context"

	"github.com/lyricsbox/lyricsbox/internal/data"
)

// Fetcher is a mock data.Fetcher that returns configurable results (for store and search
// tests without touching disk or network).
type Fetcher struct {
	FetchFunc func(ctx context.Context) (*data.Document, error)
	NameFunc  func() string
}

// Fetch calls FetchFunc if set, else returns an empty document.
func (m *Fetcher) Fetch(ctx context.Context) (*data.Document, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx)
	}
	return &data.Document{LyricsDatabase: data.NewDataset(), CheatCodes: data.CheatCodes{}}, nil
}

// Name calls NameFunc if set, else returns "mock".
func (m *Fetcher) Name() string {
	if m.NameFunc != nil {
		return m.NameFunc()
	}
	return "mock"
}

// Static returns a Fetcher that always yields doc.
func Static(doc *data.Document) *Fetcher {
	return &Fetcher{FetchFunc: func(ctx context.Context) (*data.Document, error) {
		return doc, nil
	}}
}
