package formatter

import (
	"encoding/json"

	"github.com/lyricsbox/lyricsbox/internal/data"
)

func formatJSON(results []data.Result) (string, error) {
	if results == nil {
		results = []data.Result{}
	}
	out := map[string]interface{}{
		"count":   len(results),
		"results": results,
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
