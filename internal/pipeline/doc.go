// Package pipeline sequences the per-file work: validate the container,
// probe its streams, decide which tracks stay, then either remux with
// mkvmerge or place the file unchanged with the cheapest transfer.
//
// Key types:
//   - Task: one probed file and where its output goes
//   - Processor: runs a single Task to completion
//   - Batch: discovers files under a directory and processes them in order
//   - BatchResult: counters and per-file errors for the summary
//
// Files are processed strictly one at a time. A failure is recorded against
// its path and the batch moves on; only cancellation stops a batch early.
package pipeline
