package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrDataLoad matches any *LoadError via errors.Is.
var ErrDataLoad = stderrors.New("data load failure")

// LoadKind says which step of loading the data file failed.
type LoadKind int

const (
	LoadFetch LoadKind = iota
	LoadStatus
	LoadParse
)

func (k LoadKind) String() string {
	switch k {
	case LoadFetch:
		return "fetch"
	case LoadStatus:
		return "status"
	case LoadParse:
		return "parse"
	default:
		return "load"
	}
}

// LoadError is returned when the lyrics data file could not be fetched or parsed.
type LoadError struct {
	Kind   LoadKind
	Source string
	Status int // HTTP status for LoadStatus
	Cause  error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString("無法載入歌詞資料")
	if e.Source != "" {
		fmt.Fprintf(&b, " (%s)", e.Source)
	}
	fmt.Fprintf(&b, ": %s", e.Kind)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *LoadError) Unwrap() error { return e.Cause }

func (e *LoadError) Is(target error) bool { return target == ErrDataLoad }

// NewLoadError wraps cause as a LoadError unless it already is one.
func NewLoadError(kind LoadKind, source string, cause error) error {
	var le *LoadError
	if stderrors.As(cause, &le) {
		return cause
	}
	return &LoadError{Kind: kind, Source: source, Cause: cause}
}

// QueryError reports a requested title that did not resolve to a single song.
type QueryError struct {
	Type        ErrorType
	Message     string
	Cause       error
	Suggestions []string
	Hint        string // Shown when no suggestions
}

type ErrorType int

const (
	ErrSongNotFound ErrorType = iota
	ErrAmbiguousSong
	ErrEmptyInput
	ErrNoDatabase
)

func (e *QueryError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Type.String(), e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, " (%v)", e.Cause)
	}
	if len(e.Suggestions) > 0 {
		fmt.Fprint(&b, "\nDid you mean:\n")
		for _, s := range e.Suggestions {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
	}
	if e.Hint != "" {
		fmt.Fprintf(&b, "\nHint: %s", e.Hint)
	}
	return b.String()
}

func (e *QueryError) Unwrap() error { return e.Cause }

func (t ErrorType) String() string {
	switch t {
	case ErrSongNotFound:
		return "song not found"
	case ErrAmbiguousSong:
		return "ambiguous song"
	case ErrEmptyInput:
		return "empty input"
	case ErrNoDatabase:
		return "no database"
	default:
		return "query error"
	}
}
