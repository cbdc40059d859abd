package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/lyricsbox/lyricsbox/internal/data"
	"github.com/lyricsbox/lyricsbox/internal/data/embedded"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Init creates a database at path with the schema and the built-in sample songs.
// Existing songs are replaced by the sample.
func Init(path string) error {
	doc, err := data.DecodeDocument(embedded.Raw())
	if err != nil {
		return fmt.Errorf("sample: %w", err)
	}
	db, err := Open(path)
	if err != nil {
		return err
	}
	defer db.Close()
	if _, _, err := db.ImportDocument(context.Background(), doc); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}

// InitSchema creates the database with schema only (no seed).
func InitSchema(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer db.Close()
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}
