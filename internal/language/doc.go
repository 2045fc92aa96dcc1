// Package language provides language code normalization and matching.
//
// Track language tags and user preferences arrive in mixed forms (ISO 639-1,
// ISO 639-2 terminology and bibliographic variants, full English words). All
// comparisons between them go through Match so that "en", "eng" and "English"
// select the same tracks.
package language
