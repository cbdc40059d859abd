package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
	"github.com/lyricsbox/lyricsbox/internal/data"
	"github.com/stretchr/testify/require"
)

func testDocument() *data.Document {
	ds := data.NewDataset()
	ds.Add("勇悍行2", "second")
	ds.Add("勇悍行", "first")
	ds.Add("Dark Star", "star")
	return &data.Document{
		LyricsDatabase: ds,
		CheatCodes: data.CheatCodes{
			"演唱會": {"Dark Star", "勇悍行", "勇悍行2"},
			"empty": {},
		},
	}
}

func TestOpen_Close(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "lyrics.db"))
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestImportDocument_FetchRoundTrip(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "lyrics.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	songs, codes, err := db.ImportDocument(ctx, testDocument())
	require.NoError(t, err)
	require.Equal(t, 3, songs)
	require.Equal(t, 2, codes)

	doc, err := db.Fetch(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"勇悍行2", "勇悍行", "Dark Star"}, doc.LyricsDatabase.Titles)
	require.Equal(t, "first", doc.LyricsDatabase.Songs["勇悍行"])
	require.Equal(t, []string{"Dark Star", "勇悍行", "勇悍行2"}, doc.CheatCodes["演唱會"])
	require.Contains(t, doc.CheatCodes, "empty")
	require.Empty(t, doc.CheatCodes["empty"])
}

func TestImportDocument_Replaces(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "lyrics.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	_, _, err = db.ImportDocument(ctx, testDocument())
	require.NoError(t, err)

	ds := data.NewDataset()
	ds.Add("Only", "one")
	_, _, err = db.ImportDocument(ctx, &data.Document{LyricsDatabase: ds})
	require.NoError(t, err)

	doc, err := db.Fetch(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Only"}, doc.LyricsDatabase.Titles)
	require.Empty(t, doc.CheatCodes)
}

func TestImportDocument_RejectsInvalid(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "lyrics.db"))
	require.NoError(t, err)
	defer db.Close()
	_, _, err = db.ImportDocument(context.Background(), &data.Document{})
	require.Error(t, err)
}

func TestInit_SeedsSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lyrics.db")
	require.NoError(t, Init(path))

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()
	doc, err := db.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, "勇悍行", doc.LyricsDatabase.Titles[0])
	require.NotEmpty(t, doc.CheatCodes["演唱會"])
	require.Equal(t, "sqlite:"+path, db.Name())
}

func TestInitSchema_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lyrics.db")
	require.NoError(t, InitSchema(path))
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()
	doc, err := db.Fetch(context.Background())
	require.NoError(t, err)
	require.Zero(t, doc.LyricsDatabase.Len())
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "lyrics.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"lyricsDatabase":{"songs":{"B":"b","A":"a"}},"cheatCodes":{"x":["A","B"]}}`), 0o644))
	dbPath := filepath.Join(dir, "lyrics.db")

	songs, codes, err := ImportFile(context.Background(), dbPath, jsonPath)
	require.NoError(t, err)
	require.Equal(t, 2, songs)
	require.Equal(t, 1, codes)

	db, err := Open(dbPath)
	require.NoError(t, err)
	defer db.Close()
	doc, err := db.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"B", "A"}, doc.LyricsDatabase.Titles)
}

func TestImportFile_LockHeld(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "lyrics.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"lyricsDatabase":{"songs":{"A":"a"}}}`), 0o644))
	dbPath := filepath.Join(dir, "lyrics.db")

	held := flock.New(dbPath + ".lock")
	ok, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	defer held.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = ImportFile(ctx, dbPath, jsonPath)
	require.Error(t, err)
}

func TestImportFile_BadJSON(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "lyrics.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`nope`), 0o644))
	_, _, err := ImportFile(context.Background(), filepath.Join(dir, "lyrics.db"), jsonPath)
	require.ErrorContains(t, err, "parsing")
}
