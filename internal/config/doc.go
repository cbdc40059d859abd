// Package config loads lyricsbox settings from TOML.
//
// Lookup order when no explicit path is given: ~/.config/lyricsbox/config.toml, then
// ./lyricsbox.toml in the working directory. A missing file is not an error; defaults
// apply. LYRICSBOX_SOURCE overrides data.source after the file is decoded.
package config
