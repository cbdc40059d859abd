package data

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Dataset is the lyrics catalog. Titles keeps the key enumeration order of the source
// document; Songs maps each title to its lyrics.
type Dataset struct {
	Titles []string
	Songs  map[string]string
}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{Songs: make(map[string]string)}
}

// Add inserts or replaces a song. A replaced title keeps its original position.
func (d *Dataset) Add(title, lyrics string) {
	if d.Songs == nil {
		d.Songs = make(map[string]string)
	}
	if _, ok := d.Songs[title]; !ok {
		d.Titles = append(d.Titles, title)
	}
	d.Songs[title] = lyrics
}

// Lyrics returns the lyrics for an exact title.
func (d *Dataset) Lyrics(title string) (string, bool) {
	if d == nil {
		return "", false
	}
	l, ok := d.Songs[title]
	return l, ok
}

// Len returns the number of songs.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Titles)
}

// UnmarshalJSON decodes {"songs": {...}} keeping the order in which titles appear.
// Unknown keys are ignored.
func (d *Dataset) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	if err := expectDelim(dec, '{'); err != nil {
		return fmt.Errorf("lyricsDatabase: %w", err)
	}
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return fmt.Errorf("lyricsDatabase: %w", err)
		}
		if key != "songs" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return fmt.Errorf("lyricsDatabase.%s: %w", key, err)
			}
			continue
		}
		if err := d.decodeSongs(dec); err != nil {
			return fmt.Errorf("lyricsDatabase.songs: %w", err)
		}
	}
	return expectDelim(dec, '}')
}

func (d *Dataset) decodeSongs(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		d.Titles, d.Songs = nil, nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	d.Titles = nil
	d.Songs = make(map[string]string)
	for dec.More() {
		title, err := stringToken(dec)
		if err != nil {
			return err
		}
		var lyrics string
		if err := dec.Decode(&lyrics); err != nil {
			return fmt.Errorf("%q: %w", title, err)
		}
		d.Add(title, lyrics)
	}
	return expectDelim(dec, '}')
}

// MarshalJSON writes {"songs": {...}} in Titles order.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(`{"songs":{`)
	for i, title := range d.Titles {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(title)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(d.Songs[title])
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteString(`}}`)
	return b.Bytes(), nil
}

// DecodeDocument parses a data file.
func DecodeDocument(b []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected string key, got %v", tok)
	}
	return s, nil
}
