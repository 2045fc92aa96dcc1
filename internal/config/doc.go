// Package config loads, normalizes, and validates mkvslim configuration data.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and still accepts the older YAML settings files that carried only
// the audio, subtitles and processing sections. A missing file is not an
// error; the defaults apply and Load reports that nothing was found.
//
// Command-line flags are merged with ApplyOverrides. Subtitle entries are
// only checked for a language here; the pipeline parses them once into
// retention preferences.
package config
