package formatter

import (
	"fmt"
	"strings"

	"github.com/lyricsbox/lyricsbox/internal/data"
)

// OutputFormat selects output style.
type OutputFormat int

const (
	FormatText OutputFormat = iota
	FormatTable
	FormatJSON
	FormatCSV
)

// Formatter renders search results as a string.
type Formatter interface {
	Format(results []data.Result, format OutputFormat) (string, error)
}

type formatter struct{}

// New returns a Formatter.
func New() Formatter {
	return &formatter{}
}

// Format dispatches to the appropriate formatter by format.
func (f *formatter) Format(results []data.Result, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(results)
	case FormatCSV:
		return formatCSV(results)
	case FormatTable:
		return formatTable(results), nil
	default:
		return formatText(results), nil
	}
}

// ParseFormat converts a flag value to an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	}
	return FormatText, fmt.Errorf("unknown output format %q (want text, table, json or csv)", s)
}
