// Command lyricsbox looks up song lyrics by title from a JSON, SQLite or remote data
// source. It runs one-shot searches, serves the widget over HTTP and hosts a terminal UI.
package main
