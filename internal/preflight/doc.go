// Package preflight provides readiness checks for the filesystem paths a run
// reads from and writes to.
//
// The processor checks the target directory and free space before each merge
// so an obviously doomed remux fails with a clear message instead of a
// truncated output file. The CLI deps command reuses CheckDirectoryAccess to
// show whether the configured log directory is usable.
package preflight
