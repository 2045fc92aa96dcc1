// Command mkvslim removes unwanted audio and subtitle tracks from Matroska
// files and places the result in a target directory.
//
// The root command takes an input (file or directory) and a target. Files
// whose tracks already match the configured languages are transferred
// unchanged by hardlink, copy or move; everything else is remuxed with
// mkvmerge. Subcommands:
//
//   - probe: show a file's tracks and what a run would keep
//   - deps: report whether mkvmerge and ffprobe are available
//   - config init|show: write the sample configuration or print the
//     effective one
//
// When launched by Sonarr as a custom import script the sonarr_* environment
// selects the transfer mode and status lines are printed for Sonarr to read.
package main
