package search

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/lyricsbox/lyricsbox/internal/data"
	"github.com/lyricsbox/lyricsbox/internal/data/mock"
	apperrors "github.com/lyricsbox/lyricsbox/internal/errors"
	"github.com/lyricsbox/lyricsbox/internal/logging"
	"github.com/lyricsbox/lyricsbox/internal/store"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *data.Document {
	ds := data.NewDataset()
	ds.Add("勇悍行", "勇悍行 lyrics")
	ds.Add("勇悍行2", "勇悍行2 lyrics")
	ds.Add("Other", "other lyrics")
	return &data.Document{
		LyricsDatabase: ds,
		CheatCodes:     data.CheatCodes{"演唱會": {"勇悍行2", "Other"}},
	}
}

type busyRecorder struct{ states []bool }

func (b *busyRecorder) record(v bool) { b.states = append(b.states, v) }

func TestSearch_ResolvesAndSignalsBusy(t *testing.T) {
	rec := &busyRecorder{}
	o := New(store.New(mock.Static(sampleDocument()), nil), WithBusyFunc(rec.record))

	got := o.Search(context.Background(), "Other\n\n勇悍")
	require.Len(t, got, 2)
	require.Equal(t, data.Found("Other", "other lyrics"), got[0])
	require.Equal(t, data.Ambiguous("勇悍", []string{"勇悍行", "勇悍行2"}), got[1])
	require.Equal(t, []bool{true, false}, rec.states)
}

func TestSearch_EmptyInput(t *testing.T) {
	o := New(store.New(mock.Static(sampleDocument()), nil))
	got := o.Search(context.Background(), "  ")
	require.Len(t, got, 1)
	require.True(t, got[0].Empty)
}

func TestSearch_LoadFailureBecomesErrorResult(t *testing.T) {
	rec := &busyRecorder{}
	f := &mock.Fetcher{FetchFunc: func(ctx context.Context) (*data.Document, error) {
		return nil, &apperrors.LoadError{Kind: apperrors.LoadStatus, Status: 404, Cause: errors.New("404 Not Found")}
	}}
	o := New(store.New(f, nil), WithBusyFunc(rec.record))

	got := o.Search(context.Background(), "勇悍行")
	require.Len(t, got, 1)
	require.Equal(t, data.ResultError, got[0].Kind)
	require.Equal(t, FailureTitle, got[0].Title)
	require.Contains(t, got[0].Message, "404 Not Found")
	require.Equal(t, []bool{true, false}, rec.states)
}

func TestSearch_RetriesAfterFailure(t *testing.T) {
	calls := 0
	f := &mock.Fetcher{FetchFunc: func(ctx context.Context) (*data.Document, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("network down")
		}
		return sampleDocument(), nil
	}}
	o := New(store.New(f, nil))

	require.Equal(t, data.ResultError, o.Search(context.Background(), "Other")[0].Kind)
	require.Equal(t, data.ResultFound, o.Search(context.Background(), "Other")[0].Kind)
	require.Equal(t, 2, calls)
}

func TestChoose_ReplacesMatchingLinesAndSearches(t *testing.T) {
	o := New(store.New(mock.Static(sampleDocument()), nil))
	text, got := o.Choose(context.Background(), "勇悍行\nOther", "勇悍行", "勇悍行2")
	require.Equal(t, "勇悍行2\nOther", text)
	require.Len(t, got, 2)
	require.Equal(t, "勇悍行2", got[0].Title)
	require.Equal(t, "Other", got[1].Title)
}

func TestReplaceTitle(t *testing.T) {
	require.Equal(t, "B\n  keep \nB", ReplaceTitle(" A \n  keep \nA", "A", "B"))
	require.Equal(t, "AA\nx", ReplaceTitle("AA\nx", "A", "B"))
	require.Equal(t, "", ReplaceTitle("", "A", "B"))
}

func TestCheatCode(t *testing.T) {
	o := New(store.New(mock.Static(sampleDocument()), nil))
	text, ok := o.CheatCode(context.Background(), " 演唱會 ")
	require.True(t, ok)
	require.Equal(t, "勇悍行2\nOther", text)

	_, ok = o.CheatCode(context.Background(), "演唱")
	require.False(t, ok)
}

func TestCheatCode_LoadFailure(t *testing.T) {
	f := &mock.Fetcher{FetchFunc: func(ctx context.Context) (*data.Document, error) {
		return nil, errors.New("boom")
	}}
	_, ok := New(store.New(f, nil)).CheatCode(context.Background(), "演唱會")
	require.False(t, ok)
}

func TestUnresolved(t *testing.T) {
	require.NoError(t, Unresolved([]data.Result{data.Found("a", "b")}))

	err := Unresolved([]data.Result{
		data.Found("a", "b"),
		data.Ambiguous("勇悍", []string{"勇悍行", "勇悍行2"}),
		data.NotFound("zzz", "missing"),
	})
	require.Error(t, err)
	var qe *apperrors.QueryError
	require.ErrorAs(t, err, &qe)
	require.Equal(t, apperrors.ErrAmbiguousSong, qe.Type)
	require.Contains(t, err.Error(), "song not found: zzz")
}

func TestRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	require.Equal(t, "req-1", RequestID(ctx))
	require.NotEmpty(t, RequestID(context.Background()))
}

func TestSearch_LogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Output: &buf})
	require.NoError(t, err)
	o := New(store.New(mock.Static(sampleDocument()), logger), WithLogger(logger))

	o.Search(WithRequestID(context.Background(), "req-42"), "Other")
	require.Contains(t, buf.String(), `"msg":"search complete"`)
	require.Contains(t, buf.String(), `"request_id":"req-42"`)
}

func TestNew_NilLoggerIsSafe(t *testing.T) {
	o := New(store.New(mock.Static(sampleDocument()), nil), WithLogger(nil))
	require.NotNil(t, o.logger)
	require.Equal(t, data.ResultFound, o.Search(context.Background(), "Other")[0].Kind)
}
