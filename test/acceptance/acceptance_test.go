package acceptance

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lyricsbox/lyricsbox/internal/data"
	"github.com/lyricsbox/lyricsbox/internal/data/file"
	"github.com/lyricsbox/lyricsbox/internal/data/mock"
	"github.com/lyricsbox/lyricsbox/internal/data/sqlite"
	apperrors "github.com/lyricsbox/lyricsbox/internal/errors"
	"github.com/lyricsbox/lyricsbox/internal/search"
	"github.com/lyricsbox/lyricsbox/internal/store"
	"github.com/lyricsbox/lyricsbox/test/fixtures"
)

func TestE2E_FileSourceResolveMix(t *testing.T) {
	path := fixtures.WriteJSON(t, fixtures.SampleDocument())
	orch := search.New(store.New(file.New(path), nil))

	results := orch.Search(context.Background(), "海闊天空\n天空\n勇悍\nUnknown\n")
	require.Len(t, results, 4)
	require.Equal(t, data.Found("海闊天空", "海闊天空 lyrics"), results[0])
	require.Equal(t, data.Found("海闊天空", "海闊天空 lyrics"), results[1])
	require.Equal(t, data.ResultAmbiguous, results[2].Kind)
	require.Equal(t, []string{"勇悍行", "勇悍行2"}, results[2].Candidates)
	require.Equal(t, data.ResultNotFound, results[3].Kind)
}

func TestE2E_SQLiteSourceDisambiguation(t *testing.T) {
	path, cleanup := fixtures.CreateTestDB(t)
	defer cleanup()

	db, err := sqlite.Open(path)
	require.NoError(t, err)
	defer db.Close()

	orch := search.New(store.New(db, nil))
	ctx := context.Background()

	results := orch.Search(ctx, "勇悍\nDark Star")
	require.Equal(t, data.ResultAmbiguous, results[0].Kind)

	text, results := orch.Choose(ctx, "勇悍\nDark Star", "勇悍", "勇悍行2")
	require.Equal(t, "勇悍行2\nDark Star", text)
	require.Equal(t, data.Found("勇悍行2", "勇悍行2 lyrics"), results[0])
	require.Equal(t, "Dark Star", results[1].Title)
	require.NoError(t, search.Unresolved(results))
}

func TestE2E_CheatCodeThenSearch(t *testing.T) {
	path, cleanup := fixtures.CreateTestDB(t)
	defer cleanup()

	db, err := sqlite.Open(path)
	require.NoError(t, err)
	defer db.Close()

	orch := search.New(store.New(db, nil))
	ctx := context.Background()

	text, ok := orch.CheatCode(ctx, "  演唱會\n")
	require.True(t, ok)
	require.Equal(t, "勇悍行\n海闊天空\n勇悍行2", text)

	results := orch.Search(ctx, text)
	require.Len(t, results, 3)
	for _, r := range results {
		require.Equal(t, data.ResultFound, r.Kind, r.Title)
	}
}

func TestE2E_MissingFileThenRecovers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lyrics.json")
	st := store.New(file.New(path), nil)
	orch := search.New(st)
	ctx := context.Background()

	results := orch.Search(ctx, "Dark Star")
	require.Len(t, results, 1)
	require.Equal(t, data.ResultError, results[0].Kind)
	require.Equal(t, store.StateUnloaded, st.State())

	src := fixtures.WriteJSON(t, fixtures.SampleDocument())
	raw, err := os.ReadFile(src)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	results = orch.Search(ctx, "Dark Star")
	require.Equal(t, data.Found("Dark Star", "Dark Star lyrics"), results[0])
	require.Equal(t, store.StateLoaded, st.State())
}

func TestE2E_ConcurrentSearchesShareOneLoad(t *testing.T) {
	var fetches atomic.Int32
	release := make(chan struct{})
	fetcher := &mock.Fetcher{FetchFunc: func(ctx context.Context) (*data.Document, error) {
		fetches.Add(1)
		<-release
		return fixtures.SampleDocument(), nil
	}}

	var busyMu sync.Mutex
	busyEvents := 0
	orch := search.New(store.New(fetcher, nil), search.WithBusyFunc(func(bool) {
		busyMu.Lock()
		busyEvents++
		busyMu.Unlock()
	}))

	var wg sync.WaitGroup
	out := make([][]data.Result, 8)
	for i := range out {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out[i] = orch.Search(context.Background(), "天空")
		}(i)
	}
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), fetches.Load())
	for _, r := range out {
		require.Equal(t, "海闊天空", r[0].Title)
	}
	require.Equal(t, 16, busyEvents)
}

func TestE2E_UnresolvedErrors(t *testing.T) {
	orch := search.New(store.New(mock.Static(fixtures.SampleDocument()), nil))
	results := orch.Search(context.Background(), "勇悍\nzzz")

	err := search.Unresolved(results)
	require.Error(t, err)
	var qe *apperrors.QueryError
	require.True(t, errors.As(err, &qe))
	require.Equal(t, apperrors.ErrAmbiguousSong, qe.Type)
	require.Contains(t, err.Error(), "ambiguous song: 勇悍")
	require.Contains(t, err.Error(), "song not found: zzz")
}
