package formatter

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/lyricsbox/lyricsbox/internal/data"
)

func formatTable(results []data.Result) string {
	if len(results) == 0 {
		return "No results."
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "RESULT", "TITLE", "LYRICS / DETAIL"})
	for i, r := range results {
		title := r.Title
		if r.Kind == data.ResultAmbiguous || r.Kind == data.ResultNotFound {
			title = r.Query
		}
		tw.AppendRow(table.Row{i + 1, r.Kind.String(), title, detail(r)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func detail(r data.Result) string {
	switch r.Kind {
	case data.ResultFound:
		return r.Lyrics
	case data.ResultAmbiguous:
		return strings.Join(r.Candidates, "\n")
	default:
		return r.Message
	}
}
