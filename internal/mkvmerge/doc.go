// Package mkvmerge synthesizes and runs the mkvmerge invocation that applies a
// retention decision to a file.
//
// Build is pure: it emits per-kind track selectors only when a kind loses
// tracks, and an explicit default flag for every retained audio and subtitle
// track. Runner executes a command against a hidden temporary file and renames
// it over the destination once mkvmerge exits successfully.
package mkvmerge
