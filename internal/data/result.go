package data

import "fmt"

// ResultKind identifies which variant a Result holds.
type ResultKind int

const (
	// ResultFound is an exact or uniquely-resolved fuzzy match.
	ResultFound ResultKind = iota
	// ResultAmbiguous lists two or more candidate titles for the user to pick from.
	ResultAmbiguous
	// ResultNotFound covers zero matches and the empty-input sentinel.
	ResultNotFound
	// ResultError is a load failure surfaced as data.
	ResultError
)

func (k ResultKind) String() string {
	switch k {
	case ResultFound:
		return "found"
	case ResultAmbiguous:
		return "ambiguous"
	case ResultNotFound:
		return "not_found"
	case ResultError:
		return "error"
	}
	return "unknown"
}

// MarshalText lets ResultKind appear as a string in JSON.
func (k ResultKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses the string form produced by MarshalText.
func (k *ResultKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "found":
		*k = ResultFound
	case "ambiguous":
		*k = ResultAmbiguous
	case "not_found":
		*k = ResultNotFound
	case "error":
		*k = ResultError
	default:
		return fmt.Errorf("unknown result kind %q", string(b))
	}
	return nil
}

// Result is the outcome for one requested line.
//
//   - Found: Title, Lyrics
//   - Ambiguous: Query, Candidates
//   - NotFound: Query, Message (Empty marks the blank-input sentinel)
//   - Error: Title, Message
type Result struct {
	Kind       ResultKind `json:"kind"`
	Title      string     `json:"title,omitempty"`
	Lyrics     string     `json:"lyrics,omitempty"`
	Query      string     `json:"query,omitempty"`
	Candidates []string   `json:"candidates,omitempty"`
	Message    string     `json:"message,omitempty"`
	Empty      bool       `json:"empty,omitempty"`
}

// Found builds a Found result.
func Found(title, lyrics string) Result {
	return Result{Kind: ResultFound, Title: title, Lyrics: lyrics}
}

// Ambiguous builds an Ambiguous result.
func Ambiguous(query string, candidates []string) Result {
	return Result{Kind: ResultAmbiguous, Query: query, Candidates: candidates}
}

// NotFound builds a NotFound result.
func NotFound(query, message string) Result {
	return Result{Kind: ResultNotFound, Query: query, Message: message}
}

// Failure builds an Error result.
func Failure(title, message string) Result {
	return Result{Kind: ResultError, Title: title, Message: message}
}
