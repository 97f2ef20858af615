package pool

import (
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/multierr"

	"github.com/thomasding/owned"
	"github.com/thomasding/owned/errors"
)

// Pool recycles resources of type T through owned handles.
//
// Handed-out resources are owned by their handles, not by the pool:
// closing the pool destroys only idle resources. A resource released
// after the pool closed, or while the idle set is full, is destroyed
// instead of retained.
type Pool[T any] struct {
	newFn   func() (T, error)
	destroy owned.Releaser[T]
	idle    *xsync.MPMCQueueOf[T]
	closed  atomic.Bool
}

// New creates a pool holding at most capacity idle resources. newFn
// constructs a resource when the idle set is empty; destroy releases a
// resource for good, and nil selects owned.DefaultReleaser.
func New[T any](capacity int, newFn func() (T, error), destroy owned.Releaser[T]) *Pool[T] {
	if destroy == nil {
		destroy = owned.DefaultReleaser[T]()
	}
	return &Pool[T]{
		newFn:   newFn,
		destroy: destroy,
		idle:    xsync.NewMPMCQueueOf[T](capacity),
	}
}

// Acquire returns an owning handle for a pooled or freshly constructed
// resource. Closing the handle returns the resource to the pool.
func (p *Pool[T]) Acquire() (owned.Handle[T], error) {
	if p.closed.Load() {
		return owned.Handle[T]{}, errors.Closed(errors.PhasePool, "pool")
	}

	if v, ok := p.idle.TryDequeue(); ok {
		return owned.New(v, p.recycle), nil
	}

	v, err := p.newFn()
	if err != nil {
		return owned.Handle[T]{}, err
	}
	return owned.New(v, p.recycle), nil
}

// recycle is the releaser attached to handed-out handles.
func (p *Pool[T]) recycle(v T) error {
	if p.closed.Load() || !p.idle.TryEnqueue(v) {
		return p.destroy(v)
	}
	// Close may have drained the idle set between the closed check and
	// the enqueue, stranding v there. Re-check and sweep: either this
	// drain or Close's sees the late entry.
	if p.closed.Load() {
		return p.drain()
	}
	return nil
}

// Close stops the pool and destroys all idle resources. Destroy errors
// are aggregated; the drain runs to completion regardless. Resources
// still checked out remain valid and are destroyed when their handles
// close.
func (p *Pool[T]) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.drain()
}

func (p *Pool[T]) drain() error {
	var err error
	for {
		v, ok := p.idle.TryDequeue()
		if !ok {
			return err
		}
		if derr := p.destroy(v); derr != nil {
			err = multierr.Append(err, errors.ReleaserFailed(errors.PhasePool, "idle", derr))
		}
	}
}
