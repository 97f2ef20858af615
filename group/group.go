package group

import (
	"sync"

	"go.uber.org/multierr"

	"github.com/thomasding/owned"
)

// Group is a set of release obligations discharged in LIFO order.
//
// A Group is safe for concurrent registration. Close and Cancel are
// terminal: after either, further registrations run their releaser
// immediately (Adopt) or are dropped (Defer returns false).
type Group struct {
	mu     sync.Mutex
	stack  []func() error
	closed bool
}

// New creates an empty group.
func New() *Group {
	return &Group{}
}

// Defer registers a release callback. Callbacks run in reverse
// registration order on Close. Returns false if the group is already
// closed, in which case the callback was not registered and will never
// run.
func (g *Group) Defer(fn func() error) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return false
	}
	g.stack = append(g.stack, fn)
	return true
}

// Len returns the number of pending release obligations.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.stack)
}

// Cancel drops all pending obligations without running them. Used after a
// successful handover, when responsibility for the resources has moved to
// someone else. The group is closed afterwards.
func (g *Group) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stack = nil
	g.closed = true
}

// Close discharges all pending obligations in reverse registration order
// and closes the group. Releaser errors are aggregated; every obligation
// runs regardless of earlier failures. Closing an already-closed group is
// a no-op.
func (g *Group) Close() error {
	g.mu.Lock()
	stack := g.stack
	g.stack = nil
	g.closed = true
	g.mu.Unlock()

	var err error
	for i := len(stack) - 1; i >= 0; i-- {
		err = multierr.Append(err, stack[i]())
	}
	return err
}

// Adopt moves ownership of h into the group. The handle is emptied; the
// group releases the resource on Close. If the group is already closed,
// the resource is released immediately and the error returned.
func Adopt[T any](g *Group, h *owned.Handle[T]) error {
	if !h.Valid() {
		return nil
	}
	m := h.Move()
	if g.Defer(m.Close) {
		return nil
	}
	return m.Close()
}
