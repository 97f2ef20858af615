package owned

// noCopy triggers the go vet copylocks check when a containing value is
// copied. Handles must change hands through Move, MoveTo, or Swap.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Handle is a single-owner reference to a resource of type T.
//
// A handle is either empty or owning. An owning handle releases its
// resource exactly once: on Close, on being the destination of MoveTo, or
// on Reset. Moving out of a handle empties it, so releasing a moved-from
// handle is a no-op.
//
// The zero value is an empty handle. Handles are not safe for concurrent
// use; exactly one goroutine owns a handle at any instant, which is the
// point.
type Handle[T any] struct {
	noCopy   noCopy
	value    T
	releaser Releaser[T]
	owned    bool
}

// New returns a handle owning value. The resource must already exist; New
// performs no acquisition of its own. A nil rel selects DefaultReleaser.
func New[T any](value T, rel Releaser[T]) Handle[T] {
	if rel == nil {
		rel = DefaultReleaser[T]()
	}
	return Handle[T]{value: value, releaser: rel, owned: true}
}

// Empty returns an empty handle. Equivalent to the zero value.
func Empty[T any]() Handle[T] {
	return Handle[T]{}
}

// Valid reports whether the handle currently owns a resource.
func (h *Handle[T]) Valid() bool {
	return h.owned
}

// Get returns the owned resource without transferring ownership. On an
// empty handle it returns the zero value of T; checking Valid first is the
// caller's responsibility.
func (h *Handle[T]) Get() T {
	return h.value
}

// Value returns the owned resource and whether the handle owns one.
func (h *Handle[T]) Value() (T, bool) {
	return h.value, h.owned
}

// Swap exchanges the resources and releasers of two handles. Nothing is
// released.
func (h *Handle[T]) Swap(other *Handle[T]) {
	h.value, other.value = other.value, h.value
	h.releaser, other.releaser = other.releaser, h.releaser
	h.owned, other.owned = other.owned, h.owned
}

// Move transfers ownership into a new handle and empties the source.
func (h *Handle[T]) Move() Handle[T] {
	value, rel, ok := h.value, h.releaser, h.owned
	h.clear()
	return Handle[T]{value: value, releaser: rel, owned: ok}
}

// MoveTo transfers ownership into dst, emptying the source. Whatever dst
// owned before is released, and that releaser's error is returned.
//
// MoveTo is swap with a temporary: the temporary takes the source's state,
// trades it for the destination's, and releases the destination's old
// resource on its way out. A self-move leaves the handle unchanged.
func (h *Handle[T]) MoveTo(dst *Handle[T]) error {
	tmp := h.Move()
	tmp.Swap(dst)
	return tmp.Close()
}

// Detach relinquishes the resource without releasing it. The handle
// becomes empty and the caller assumes responsibility for release. On an
// empty handle Detach returns the zero value of T.
func (h *Handle[T]) Detach() T {
	value := h.value
	h.clear()
	return value
}

// Reset releases the currently owned resource, if any, then takes
// ownership of value. A nil rel selects DefaultReleaser. The error is the
// old resource's releaser error.
func (h *Handle[T]) Reset(value T, rel Releaser[T]) error {
	err := h.Close()
	if rel == nil {
		rel = DefaultReleaser[T]()
	}
	h.value = value
	h.releaser = rel
	h.owned = true
	return err
}

// Close releases the owned resource by invoking its releaser. Closing an
// empty handle is a no-op, so Close is safe to defer immediately and safe
// to call after a move or Detach.
func (h *Handle[T]) Close() error {
	if !h.owned {
		return nil
	}
	value, rel := h.value, h.releaser
	h.clear()
	if rel == nil {
		return nil
	}
	return rel(value)
}

func (h *Handle[T]) clear() {
	var zero T
	h.value = zero
	h.releaser = nil
	h.owned = false
}
