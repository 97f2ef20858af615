// Package errors provides structured error types for the owned library.
//
// Errors are categorized by Phase (which lifecycle stage failed) and Kind
// (error category). The Error type carries the affected resource label and
// a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRelease, errors.KindReleaserFailed).
//		Label("upload-socket").
//		Detail("close failed after %d bytes", n).
//		Cause(cerr).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Closed(errors.PhasePool, "pool")
//	err := errors.InvalidID(errors.PhaseTrack, id)
//
// Leaked resources are reported through LeakError, which lists every
// entry still live when a registry closed.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
