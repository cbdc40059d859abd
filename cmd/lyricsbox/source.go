package main

import (
	"strings"

	"github.com/lyricsbox/lyricsbox/internal/config"
	"github.com/lyricsbox/lyricsbox/internal/data"
	"github.com/lyricsbox/lyricsbox/internal/data/embedded"
	"github.com/lyricsbox/lyricsbox/internal/data/file"
	"github.com/lyricsbox/lyricsbox/internal/data/httpsrc"
	"github.com/lyricsbox/lyricsbox/internal/data/sqlite"
)

const sqlitePrefix = "sqlite:"

// openSource picks a fetcher from cfg.Data.Source: http(s) URLs are fetched remotely,
// "sqlite:" or *.db paths are read from SQLite, other paths as JSON files, and an empty
// source uses the built-in sample. On success the closer is never nil.
func openSource(cfg *config.Config) (data.Fetcher, func() error, error) {
	noop := func() error { return nil }
	src := strings.TrimSpace(cfg.Data.Source)
	lower := strings.ToLower(src)

	switch {
	case src == "":
		return embedded.Source{}, noop, nil
	case strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://"):
		return httpsrc.NewClient(src, cfg.FetchTimeout(), cfg.RetryInterval()), noop, nil
	case strings.HasPrefix(lower, sqlitePrefix):
		return openSQLite(src[len(sqlitePrefix):])
	case strings.HasSuffix(lower, ".db"):
		return openSQLite(src)
	default:
		return file.New(src), noop, nil
	}
}

func openSQLite(path string) (data.Fetcher, func() error, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return db, db.Close, nil
}
