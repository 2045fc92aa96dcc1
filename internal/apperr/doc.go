// Package apperr defines the error taxonomy shared by mkvslim components.
//
// Errors are tagged with one of the exported sentinel markers so the batch
// orchestrator and CLI can decide, with errors.Is, whether a failure affects a
// single file (validation, merge execution, transfer) or the whole run
// (dependency, configuration).
package apperr
