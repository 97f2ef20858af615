// Package owned provides single-owner resource handles for Go.
//
// A Handle holds exclusive responsibility for releasing one resource: a
// file, a connection, a block of foreign memory, anything that must be
// released exactly once. Ownership moves between handles explicitly;
// duplication of ownership is rejected by go vet.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	owned/           Root package with Handle, Releaser, and ownership transfer
//	├── group/       LIFO release sets for scope-style cleanup
//	├── track/       Live-handle registry with leak detection and observers
//	├── pool/        Recycling pools that hand out owned handles
//	└── errors/      Structured error types for debugging
//
// # Quick Start
//
// Acquire a resource and release it on scope exit:
//
//	f, err := os.Open(path)
//	if err != nil {
//	    return err
//	}
//	h := owned.New(f, nil) // nil selects the default releaser (Close)
//	defer h.Close()
//
//	use(h.Get())
//
// # Ownership Transfer
//
// Moving a handle empties the source; the destination inherits the
// resource and its releaser:
//
//	h2 := h.Move()
//	h.Valid()  // false, releasing h is now a no-op
//	h2.Valid() // true, h2 releases the resource
//
// Move-assignment releases whatever the destination held before:
//
//	if err := h.MoveTo(&dst); err != nil {
//	    // dst's previous resource failed to release
//	}
//
// # Relinquishing
//
// Detach surrenders the resource back to the caller without releasing it:
//
//	raw := h.Detach() // caller now owns raw; h is empty
//
// # What This Is Not
//
// Handles are not reference counted and carry no internal locking. Exactly
// one owner exists at any instant; sharing a resource between goroutines
// requires external coordination or a different abstraction entirely.
package owned
