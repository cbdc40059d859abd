package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lyricsbox/lyricsbox/internal/data"
	apperrors "github.com/lyricsbox/lyricsbox/internal/errors"

	_ "modernc.org/sqlite"
)

// DB stores a lyrics document in SQLite and implements data.Fetcher.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens a SQLite database at the given path and ensures the schema exists.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("schema %s: %w", path, err)
	}
	return &DB{conn: conn, path: path}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Name identifies the database for logs.
func (db *DB) Name() string {
	return "sqlite:" + db.path
}

// Fetch rebuilds the document from the database, songs in import order.
func (db *DB) Fetch(ctx context.Context) (*data.Document, error) {
	ds, err := db.loadSongs(ctx)
	if err != nil {
		return nil, apperrors.NewLoadError(apperrors.LoadFetch, db.Name(), err)
	}
	codes, err := db.loadCheatCodes(ctx)
	if err != nil {
		return nil, apperrors.NewLoadError(apperrors.LoadFetch, db.Name(), err)
	}
	return &data.Document{LyricsDatabase: ds, CheatCodes: codes}, nil
}

func (db *DB) loadSongs(ctx context.Context) (*data.Dataset, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT title, lyrics FROM songs ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ds := data.NewDataset()
	for rows.Next() {
		var title, lyrics string
		if err := rows.Scan(&title, &lyrics); err != nil {
			return nil, err
		}
		ds.Add(title, lyrics)
	}
	return ds, rows.Err()
}

func (db *DB) loadCheatCodes(ctx context.Context) (data.CheatCodes, error) {
	codes := data.CheatCodes{}
	rows, err := db.conn.QueryContext(ctx, "SELECT code FROM cheat_codes")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			rows.Close()
			return nil, err
		}
		codes[code] = []string{}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	rows, err = db.conn.QueryContext(ctx, "SELECT code, title FROM cheat_code_titles ORDER BY code, position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var code, title string
		if err := rows.Scan(&code, &title); err != nil {
			return nil, err
		}
		codes[code] = append(codes[code], title)
	}
	return codes, rows.Err()
}

// ImportDocument replaces the database contents with doc in one transaction.
// Returns the number of songs and cheat codes written.
func (db *DB) ImportDocument(ctx context.Context, doc *data.Document) (songs, codes int, err error) {
	snap, err := doc.Snapshot()
	if err != nil {
		return 0, 0, err
	}
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range []string{"DELETE FROM cheat_code_titles", "DELETE FROM cheat_codes", "DELETE FROM songs"} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return 0, 0, err
		}
	}
	for i, title := range snap.Dataset.Titles {
		if _, err = tx.ExecContext(ctx, "INSERT INTO songs (title, position, lyrics) VALUES (?, ?, ?)",
			title, i, snap.Dataset.Songs[title]); err != nil {
			return 0, 0, err
		}
	}
	for code, playlist := range snap.CheatCodes {
		if _, err = tx.ExecContext(ctx, "INSERT INTO cheat_codes (code) VALUES (?)", code); err != nil {
			return 0, 0, err
		}
		for i, title := range playlist {
			if _, err = tx.ExecContext(ctx, "INSERT INTO cheat_code_titles (code, position, title) VALUES (?, ?, ?)",
				code, i, title); err != nil {
				return 0, 0, err
			}
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, 0, err
	}
	return len(snap.Dataset.Titles), len(snap.CheatCodes), nil
}
