// Package cheatcode maps trigger strings typed into the input field to preset playlists.
package cheatcode

import (
	"slices"
	"strings"
	"time"

	"github.com/lyricsbox/lyricsbox/internal/data"
	"github.com/lyricsbox/lyricsbox/internal/resolver"
)

// PulseDuration is how long the presentation layer highlights the field after a hit.
const PulseDuration = 300 * time.Millisecond

// Lookup trims text and returns the playlist registered for it, if any. A trigger
// mapped to null is a miss; an empty playlist is a hit.
// The returned slice is a copy; the table is never modified.
func Lookup(text string, table data.CheatCodes) ([]string, bool) {
	playlist, ok := table[resolver.Trim(text)]
	if !ok || playlist == nil {
		return nil, false
	}
	return slices.Clone(playlist), true
}

// Replacement is the field content that replaces a matched trigger: one title per line.
func Replacement(playlist []string) string {
	return strings.Join(playlist, "\n")
}
