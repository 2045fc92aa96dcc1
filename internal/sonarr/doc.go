// Package sonarr reads the environment Sonarr passes to custom scripts and
// reports move status back to it on stdout.
//
// Key types:
//   - Context: the SONARR_* variables collected at startup
//   - Reporter: prints the [MoveStatus] lines Sonarr parses after a script runs
//
// Only the transfer mode influences processing. The remaining fields are kept
// for logging so a run started from Sonarr can be traced to its series and
// episode.
package sonarr
