package formatter

import (
	"fmt"
	"strings"

	"github.com/lyricsbox/lyricsbox/internal/data"
)

const (
	headingNotFound = "查無結果"
	headingFailure  = "發生錯誤"
)

// AmbiguousPrompt is the question shown above the candidate list.
func AmbiguousPrompt(query string) string {
	return fmt.Sprintf("您想找的是不是 \"%s\" 的其中一首？", query)
}

// Heading returns the block title for a result.
func Heading(r data.Result) string {
	switch r.Kind {
	case data.ResultFound:
		return r.Title
	case data.ResultAmbiguous:
		return AmbiguousPrompt(r.Query)
	case data.ResultError:
		return headingFailure
	default:
		return headingNotFound
	}
}

func formatText(results []data.Result) string {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		var b strings.Builder
		b.WriteString("== ")
		b.WriteString(Heading(r))
		b.WriteString("\n")
		switch r.Kind {
		case data.ResultFound:
			b.WriteString(r.Lyrics)
		case data.ResultAmbiguous:
			for i, c := range r.Candidates {
				if i > 0 {
					b.WriteString("\n")
				}
				fmt.Fprintf(&b, "  %d. %s", i+1, c)
			}
		default:
			b.WriteString(r.Message)
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}
