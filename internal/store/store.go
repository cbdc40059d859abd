// Package store holds the process-wide lyrics snapshot and loads it at most once at a time.
//
// The load state machine is Unloaded -> Loading -> Loaded. A failed attempt returns the
// store to Unloaded before any waiter sees the error, so the next call retries from scratch.
// Loaded is terminal until Reset.
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lyricsbox/lyricsbox/internal/data"
	apperrors "github.com/lyricsbox/lyricsbox/internal/errors"
	"github.com/lyricsbox/lyricsbox/internal/logging"
)

// State is the load state of a Store.
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	}
	return "unknown"
}

// call is one load attempt shared by every caller that arrives while it is in flight.
// snap and err are written before done is closed.
type call struct {
	done chan struct{}
	snap *data.Snapshot
	err  error
}

// Store caches the snapshot produced by a Fetcher.
type Store struct {
	fetcher data.Fetcher
	logger  *slog.Logger

	mu      sync.Mutex
	snap    *data.Snapshot
	pending *call
}

// New returns an unloaded Store. A nil logger discards log output.
func New(fetcher data.Fetcher, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Store{fetcher: fetcher, logger: logger}
}

// EnsureLoaded returns the cached snapshot, joining the in-flight load or starting one.
// Cancelling ctx abandons the wait but not the load itself.
func (s *Store) EnsureLoaded(ctx context.Context) (*data.Snapshot, error) {
	s.mu.Lock()
	if s.snap != nil {
		snap := s.snap
		s.mu.Unlock()
		return snap, nil
	}
	c := s.pending
	if c == nil {
		c = &call{done: make(chan struct{})}
		s.pending = c
		go s.load(context.WithoutCancel(ctx), c)
	}
	s.mu.Unlock()

	select {
	case <-c.done:
		return c.snap, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Store) load(ctx context.Context, c *call) {
	start := time.Now()
	name := s.fetcher.Name()
	s.logger.Debug("loading lyrics data", "source", name)

	snap, err := s.fetch(ctx, name)

	s.mu.Lock()
	if s.pending == c {
		s.pending = nil
		if err == nil {
			s.snap = snap
		}
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("lyrics data load failed", "source", name, "error", err, "duration", time.Since(start))
	} else {
		s.logger.Info("lyrics data loaded", "source", name,
			"songs", snap.Dataset.Len(), "cheat_codes", len(snap.CheatCodes), "duration", time.Since(start))
	}

	c.snap, c.err = snap, err
	close(c.done)
}

func (s *Store) fetch(ctx context.Context, name string) (*data.Snapshot, error) {
	doc, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, apperrors.NewLoadError(apperrors.LoadFetch, name, err)
	}
	snap, err := doc.Snapshot()
	if err != nil {
		return nil, apperrors.NewLoadError(apperrors.LoadParse, name, err)
	}
	return snap, nil
}

// State reports the current load state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.snap != nil:
		return StateLoaded
	case s.pending != nil:
		return StateLoading
	default:
		return StateUnloaded
	}
}

// Reset drops the cached snapshot. An attempt still in flight completes for its own
// waiters but is not installed.
func (s *Store) Reset() {
	s.mu.Lock()
	s.snap = nil
	s.pending = nil
	s.mu.Unlock()
}
