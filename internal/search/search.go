// Package search runs lyrics searches end-to-end: load the dataset, resolve the input and
// hand back display-ready results. Failures never escape; they become a single error result.
package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lyricsbox/lyricsbox/internal/cheatcode"
	"github.com/lyricsbox/lyricsbox/internal/data"
	apperrors "github.com/lyricsbox/lyricsbox/internal/errors"
	"github.com/lyricsbox/lyricsbox/internal/logging"
	"github.com/lyricsbox/lyricsbox/internal/resolver"
)

// FailureTitle heads the error result produced when loading fails.
const FailureTitle = "發生錯誤"

// Loader supplies the loaded snapshot. *store.Store implements it.
type Loader interface {
	EnsureLoaded(ctx context.Context) (*data.Snapshot, error)
}

// BusyFunc is told when a search starts (true) and finishes (false).
type BusyFunc func(busy bool)

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithBusyFunc sets the busy-state hook.
func WithBusyFunc(fn BusyFunc) Option {
	return func(o *Orchestrator) { o.busy = fn }
}

// Orchestrator coordinates loading, matching and result delivery.
type Orchestrator struct {
	loader Loader
	logger *slog.Logger
	busy   BusyFunc
}

// New builds an Orchestrator over loader.
func New(loader Loader, opts ...Option) *Orchestrator {
	o := &Orchestrator{loader: loader}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}
	return o
}

// Search resolves every non-blank line of raw. The busy hook is set before loading and
// cleared on every exit path.
func (o *Orchestrator) Search(ctx context.Context, raw string) []data.Result {
	o.setBusy(true)
	defer o.setBusy(false)

	start := time.Now()
	id := RequestID(ctx)
	snap, err := o.loader.EnsureLoaded(ctx)
	if err != nil {
		o.logger.Warn("search failed", logging.FieldRequestID, id, "error", err)
		return []data.Result{data.Failure(FailureTitle, err.Error())}
	}
	results := resolver.New(snap.Dataset).ResolveAll(raw)
	o.logger.Debug("search complete", logging.FieldRequestID, id, "results", len(results), "duration", time.Since(start))
	return results
}

// Choose applies a disambiguation choice to text and searches again. It returns the
// updated text together with the new results.
func (o *Orchestrator) Choose(ctx context.Context, text, original, chosen string) (string, []data.Result) {
	updated := ReplaceTitle(text, original, chosen)
	o.logger.Debug("disambiguation chosen", logging.FieldRequestID, RequestID(ctx), "original", original, "chosen", chosen)
	return updated, o.Search(ctx, updated)
}

// CheatCode loads the dataset and looks text up in the cheat-code table. On a hit it
// returns the replacement field content.
func (o *Orchestrator) CheatCode(ctx context.Context, text string) (string, bool) {
	snap, err := o.loader.EnsureLoaded(ctx)
	if err != nil {
		o.logger.Warn("cheat code lookup skipped", logging.FieldRequestID, RequestID(ctx), "error", err)
		return "", false
	}
	playlist, ok := cheatcode.Lookup(text, snap.CheatCodes)
	if !ok {
		return "", false
	}
	o.logger.Debug("cheat code matched", logging.FieldRequestID, RequestID(ctx), "songs", len(playlist))
	return cheatcode.Replacement(playlist), true
}

func (o *Orchestrator) setBusy(b bool) {
	if o.busy != nil {
		o.busy(b)
	}
}

// ReplaceTitle swaps every line whose trimmed text equals original for chosen. Other lines
// are kept byte for byte.
func ReplaceTitle(text, original, chosen string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if resolver.Trim(line) == original {
			lines[i] = chosen
		}
	}
	return strings.Join(lines, "\n")
}

// Unresolved turns every result that is not a Found into a QueryError, joined together.
// It returns nil when every line resolved.
func Unresolved(results []data.Result) error {
	var errs []error
	for _, r := range results {
		switch r.Kind {
		case data.ResultAmbiguous:
			errs = append(errs, &apperrors.QueryError{Type: apperrors.ErrAmbiguousSong, Message: r.Query, Suggestions: r.Candidates})
		case data.ResultNotFound:
			if r.Empty {
				errs = append(errs, &apperrors.QueryError{Type: apperrors.ErrEmptyInput, Message: r.Message})
				continue
			}
			errs = append(errs, &apperrors.QueryError{
				Type:    apperrors.ErrSongNotFound,
				Message: r.Query,
				Hint:    "Check the title spelling or point --source at a data file that includes it.",
			})
		case data.ResultError:
			errs = append(errs, &apperrors.QueryError{Type: apperrors.ErrNoDatabase, Message: r.Message})
		}
	}
	return errors.Join(errs...)
}

type requestIDKey struct{}

// WithRequestID attaches a request id used to correlate log lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id attached to ctx, or a fresh one.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
