// Package resolver matches requested song titles against a loaded dataset.
//
// Matching is purely lexical: an exact key wins, otherwise every title containing the
// query as a substring is a candidate. There is no case folding or other normalization.
package resolver

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lyricsbox/lyricsbox/internal/data"
)

const (
	// EmptyInputTitle and EmptyInputMessage form the blank-input sentinel.
	EmptyInputTitle   = "錯誤"
	EmptyInputMessage = "請輸入歌曲名稱。"
)

// NotFoundMessage is the message for a title with no matches.
func NotFoundMessage(title string) string {
	return fmt.Sprintf("抱歉，資料庫中暫未收錄 \"%s\" 的歌詞。", title)
}

// EmptyInput returns the sentinel result for blank input.
func EmptyInput() data.Result {
	r := data.NotFound(EmptyInputTitle, EmptyInputMessage)
	r.Empty = true
	return r
}

// Trim removes leading and trailing whitespace, including U+3000 and a stray BOM.
// U+0085 (NEL) is not whitespace here and is kept.
func Trim(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func isSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Lines splits raw input on newlines and returns the trimmed, non-blank lines in order.
func Lines(raw string) []string {
	parts := strings.Split(raw, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := Trim(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Resolver resolves titles against a single dataset.
type Resolver struct {
	ds *data.Dataset
}

// New returns a Resolver over ds. A nil dataset resolves everything as not found.
func New(ds *data.Dataset) *Resolver {
	if ds == nil {
		ds = data.NewDataset()
	}
	return &Resolver{ds: ds}
}

// ResolveAll resolves each non-blank line of raw. Output order follows input order and
// duplicate lines are resolved independently.
func (r *Resolver) ResolveAll(raw string) []data.Result {
	if Trim(raw) == "" {
		return []data.Result{EmptyInput()}
	}
	lines := Lines(raw)
	out := make([]data.Result, 0, len(lines))
	for _, line := range lines {
		out = append(out, r.Resolve(line))
	}
	return out
}

// Resolve resolves one title. The title is trimmed first; a blank title yields the
// empty-input sentinel.
func (r *Resolver) Resolve(title string) data.Result {
	title = Trim(title)
	if title == "" {
		return EmptyInput()
	}
	if lyrics, ok := r.ds.Lyrics(title); ok {
		return data.Found(title, lyrics)
	}
	matches := r.Candidates(title)
	switch len(matches) {
	case 0:
		return data.NotFound(title, NotFoundMessage(title))
	case 1:
		return data.Found(matches[0], r.ds.Songs[matches[0]])
	default:
		return data.Ambiguous(title, matches)
	}
}

// Candidates returns every title containing query, in dataset order.
func (r *Resolver) Candidates(query string) []string {
	var out []string
	for _, t := range r.ds.Titles {
		if strings.Contains(t, query) {
			out = append(out, t)
		}
	}
	return out
}
