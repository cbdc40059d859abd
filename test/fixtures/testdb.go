package fixtures

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/lyricsbox/lyricsbox/internal/data"
	"github.com/lyricsbox/lyricsbox/internal/data/sqlite"
)

// SampleDocument returns a small dataset with one ambiguous prefix (勇悍行 / 勇悍行2),
// one unique substring (天空) and one cheat code.
func SampleDocument() *data.Document {
	ds := data.NewDataset()
	ds.Add("勇悍行", "勇悍行 lyrics")
	ds.Add("勇悍行2", "勇悍行2 lyrics")
	ds.Add("海闊天空", "海闊天空 lyrics")
	ds.Add("Dark Star", "Dark Star lyrics")
	return &data.Document{
		LyricsDatabase: ds,
		CheatCodes:     data.CheatCodes{"演唱會": {"勇悍行", "海闊天空", "勇悍行2"}},
	}
}

// WriteJSON writes doc as a data file in a temp dir and returns its path.
func WriteJSON(t *testing.T, doc *data.Document) string {
	t.Helper()
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}
	path := filepath.Join(t.TempDir(), "lyrics.json")
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}
	return path
}

// CreateTestDB creates a temporary SQLite database holding SampleDocument.
// Returns the file path and a cleanup function. The database is closed before return.
func CreateTestDB(t *testing.T) (path string, cleanup func()) {
	t.Helper()
	dir := t.TempDir()
	path = filepath.Join(dir, "test.db")
	db, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	defer db.Close()

	if _, _, err := db.ImportDocument(context.Background(), SampleDocument()); err != nil {
		t.Fatalf("import sample: %v", err)
	}

	cleanup = func() { os.RemoveAll(dir) }
	return path, cleanup
}
