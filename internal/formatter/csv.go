package formatter

import (
	"encoding/csv"
	"strings"

	"github.com/lyricsbox/lyricsbox/internal/data"
)

func formatCSV(results []data.Result) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	w.Write([]string{"kind", "title", "query", "candidates", "lyrics", "message"})
	for _, r := range results {
		w.Write([]string{
			r.Kind.String(), r.Title, r.Query, strings.Join(r.Candidates, "|"), r.Lyrics, r.Message,
		})
	}
	w.Flush()
	return b.String(), w.Error()
}
