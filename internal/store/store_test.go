package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lyricsbox/lyricsbox/internal/data"
	"github.com/lyricsbox/lyricsbox/internal/data/mock"
	apperrors "github.com/lyricsbox/lyricsbox/internal/errors"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *data.Document {
	ds := data.NewDataset()
	ds.Add("勇悍行", "lyrics")
	return &data.Document{LyricsDatabase: ds, CheatCodes: data.CheatCodes{"777": {"勇悍行"}}}
}

func TestEnsureLoaded_CachesSnapshot(t *testing.T) {
	var calls atomic.Int32
	f := &mock.Fetcher{FetchFunc: func(ctx context.Context) (*data.Document, error) {
		calls.Add(1)
		return sampleDocument(), nil
	}}
	s := New(f, nil)
	require.Equal(t, StateUnloaded, s.State())

	first, err := s.EnsureLoaded(context.Background())
	require.NoError(t, err)
	second, err := s.EnsureLoaded(context.Background())
	require.NoError(t, err)

	require.Same(t, first, second)
	require.Equal(t, int32(1), calls.Load())
	require.Equal(t, StateLoaded, s.State())
	require.Equal(t, []string{"勇悍行"}, first.CheatCodes["777"])
}

func TestEnsureLoaded_ConcurrentCallersShareOneFetch(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	f := &mock.Fetcher{FetchFunc: func(ctx context.Context) (*data.Document, error) {
		calls.Add(1)
		<-release
		return sampleDocument(), nil
	}}
	s := New(f, nil)

	const n = 16
	snaps := make([]*data.Snapshot, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snaps[i], errs[i] = s.EnsureLoaded(context.Background())
		}(i)
	}
	require.Eventually(t, func() bool { return s.State() == StateLoading }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), calls.Load())
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		require.Same(t, snaps[0], snaps[i])
	}
}

func TestEnsureLoaded_FailureResetsAndRetries(t *testing.T) {
	var calls atomic.Int32
	f := &mock.Fetcher{FetchFunc: func(ctx context.Context) (*data.Document, error) {
		if calls.Add(1) == 1 {
			return nil, &apperrors.LoadError{Kind: apperrors.LoadStatus, Status: 503, Cause: errors.New("503 Service Unavailable")}
		}
		return sampleDocument(), nil
	}}
	s := New(f, nil)

	_, err := s.EnsureLoaded(context.Background())
	require.ErrorIs(t, err, apperrors.ErrDataLoad)
	require.Contains(t, err.Error(), "503 Service Unavailable")
	require.Equal(t, StateUnloaded, s.State())

	snap, err := s.EnsureLoaded(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	require.Equal(t, int32(2), calls.Load())
}

func TestEnsureLoaded_WaitersShareFailure(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	f := &mock.Fetcher{FetchFunc: func(ctx context.Context) (*data.Document, error) {
		calls.Add(1)
		<-release
		return nil, errors.New("connection refused")
	}}
	s := New(f, nil)

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := s.EnsureLoaded(context.Background())
			errs <- err
		}()
	}
	require.Eventually(t, func() bool { return s.State() == StateLoading }, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	close(release)

	e1, e2 := <-errs, <-errs
	require.ErrorIs(t, e1, apperrors.ErrDataLoad)
	require.ErrorIs(t, e2, apperrors.ErrDataLoad)
	var le *apperrors.LoadError
	require.ErrorAs(t, e1, &le)
	require.Equal(t, apperrors.LoadFetch, le.Kind)
	require.Equal(t, StateUnloaded, s.State())
}

func TestEnsureLoaded_InvalidDocumentIsParseFailure(t *testing.T) {
	f := mock.Static(&data.Document{})
	s := New(f, nil)
	_, err := s.EnsureLoaded(context.Background())
	var le *apperrors.LoadError
	require.ErrorAs(t, err, &le)
	require.Equal(t, apperrors.LoadParse, le.Kind)
}

func TestEnsureLoaded_ContextCancelAbandonsWaitOnly(t *testing.T) {
	release := make(chan struct{})
	loadCtxErr := make(chan error, 1)
	f := &mock.Fetcher{FetchFunc: func(ctx context.Context) (*data.Document, error) {
		<-release
		loadCtxErr <- ctx.Err()
		return sampleDocument(), nil
	}}
	s := New(f, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.EnsureLoaded(ctx)
	require.ErrorIs(t, err, context.Canceled)

	close(release)
	snap, err := s.EnsureLoaded(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	require.NoError(t, <-loadCtxErr, "load must not observe caller cancellation")
}

func TestReset(t *testing.T) {
	var calls atomic.Int32
	f := &mock.Fetcher{FetchFunc: func(ctx context.Context) (*data.Document, error) {
		calls.Add(1)
		return sampleDocument(), nil
	}}
	s := New(f, nil)
	_, err := s.EnsureLoaded(context.Background())
	require.NoError(t, err)

	s.Reset()
	require.Equal(t, StateUnloaded, s.State())
	_, err = s.EnsureLoaded(context.Background())
	require.NoError(t, err)
	require.Equal(t, int32(2), calls.Load())
}
