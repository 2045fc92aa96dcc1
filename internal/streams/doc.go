// Package streams holds the normalized per-track metadata model and the
// probe chain that produces it.
//
// Descriptors are built from ffprobe output when available, from
// `mkvmerge -J` otherwise, and degrade to a single Unknown stream when
// neither tool can read the file. Index values follow the order the probe
// reported and are never reordered.
package streams
