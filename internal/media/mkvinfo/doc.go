// Package mkvinfo decodes the JSON identification report produced by
// `mkvmerge -J`. It is the secondary metadata source used when ffprobe is
// unavailable.
package mkvinfo
