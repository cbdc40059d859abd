package main

import (
	"errors"
	"fmt"

	"github.com/lyricsbox/lyricsbox/internal/data"
	"github.com/lyricsbox/lyricsbox/internal/search"
)

// errUnresolved marks a --strict search that left titles unresolved.
var errUnresolved = errors.New("some titles did not resolve to a song")

func unresolvedError(results []data.Result) error {
	if err := search.Unresolved(results); err != nil {
		return fmt.Errorf("%w:\n%v", errUnresolved, err)
	}
	return nil
}
