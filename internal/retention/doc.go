// Package retention decides which tracks of a file survive a remux and which
// audio and subtitle tracks become default.
//
// Select is a pure function over stream descriptors and language preferences.
// It returns an immutable Decision; IsNecessary compares that decision with
// the file's current state to tell whether a remux is needed at all.
//
// Rules:
//   - video, attachment and unknown tracks are always kept
//   - audio is kept when its language matches a preference; language-less
//     audio survives only when no audio track matches any preference
//   - subtitles are kept when a preference matches the language and, if set,
//     the title prefix (case-insensitive)
//   - the default audio track is the first match in preference order, else the
//     first retained audio track; subtitles get a default only on a match
package retention
