package sqlite

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"

	"github.com/lyricsbox/lyricsbox/internal/data"
)

// lockRetry is how often ImportFile retries a held lock.
const lockRetry = 100 * time.Millisecond

// ImportFile loads the JSON data file at jsonPath into the database at dbPath, replacing
// its contents. A lock file next to the database serializes concurrent imports.
func ImportFile(ctx context.Context, dbPath, jsonPath string) (songs, codes int, err error) {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, 0, fmt.Errorf("reading %s: %w", jsonPath, err)
	}
	doc, err := data.DecodeDocument(raw)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing %s: %w", jsonPath, err)
	}

	lock := flock.New(dbPath + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetry)
	if err != nil {
		return 0, 0, fmt.Errorf("lock %s: %w", lock.Path(), err)
	}
	if !locked {
		return 0, 0, fmt.Errorf("lock %s: held by another import", lock.Path())
	}
	defer func() { _ = lock.Unlock() }()

	db, err := Open(dbPath)
	if err != nil {
		return 0, 0, err
	}
	defer db.Close()
	return db.ImportDocument(ctx, doc)
}
