// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no mkvslim-specific dependencies.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: per-stream codec, tags and disposition flags
//
// Primary entry points:
//   - Inspect: executes ffprobe and returns parsed Result
//   - Parse: decodes an already captured JSON document
package ffprobe
