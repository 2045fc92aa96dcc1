// Package scan discovers batch inputs and keeps source and target trees apart.
//
// Discovery uses an explicit worklist with a visited set of canonical
// directories, so symlink loops and deep trees are safe. Results are sorted so
// batches run in a reproducible order.
package scan
