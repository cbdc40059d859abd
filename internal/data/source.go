package data

import (
	"context"
	"fmt"
)

// Fetcher retrieves the lyrics document from wherever it lives.
type Fetcher interface {
	Fetch(ctx context.Context) (*Document, error)
	Name() string
}

// Document is the on-disk / on-wire shape of the data file:
//
//	{ "lyricsDatabase": { "songs": { <title>: <lyrics> } }, "cheatCodes": { <trigger>: [<title>, ...] } }
type Document struct {
	LyricsDatabase *Dataset   `json:"lyricsDatabase"`
	CheatCodes     CheatCodes `json:"cheatCodes"`
}

// CheatCodes maps a trigger string to an ordered playlist of titles.
type CheatCodes map[string][]string

// Snapshot is a loaded, read-only view of the dataset and its cheat codes.
type Snapshot struct {
	Dataset    *Dataset
	CheatCodes CheatCodes
}

// Snapshot validates the document and returns it as a Snapshot.
// A missing cheatCodes object yields an empty table.
func (d *Document) Snapshot() (*Snapshot, error) {
	if d == nil {
		return nil, fmt.Errorf("empty document")
	}
	if d.LyricsDatabase == nil {
		return nil, fmt.Errorf("missing lyricsDatabase")
	}
	if d.LyricsDatabase.Songs == nil {
		return nil, fmt.Errorf("missing lyricsDatabase.songs")
	}
	cheats := d.CheatCodes
	if cheats == nil {
		cheats = CheatCodes{}
	}
	return &Snapshot{Dataset: d.LyricsDatabase, CheatCodes: cheats}, nil
}
