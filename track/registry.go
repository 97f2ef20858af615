package track

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/thomasding/owned/errors"
)

// Registry tracks live owned resources for debugging and leak detection.
type Registry struct {
	store     *slotStore
	observers []Observer
	obsMu     sync.RWMutex
	closed    bool
	closeMu   sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		store: newSlotStore(),
	}
}

// Acquire records a new live resource and returns its tracking ID. The
// acquisition call stack is captured for the leak report. Returns 0 if
// the registry is closed.
func (r *Registry) Acquire(kind, label string) ID {
	r.closeMu.RLock()
	if r.closed {
		r.closeMu.RUnlock()
		return 0
	}
	r.closeMu.RUnlock()

	id, err := r.store.acquire(kind, label, captureOrigin(1))
	if err != nil {
		return 0
	}

	Logger().Debug("resource acquired",
		zap.Uint32("id", uint32(id)),
		zap.String("kind", kind),
		zap.String("label", label))

	r.notify(Event{
		Type:  EventAcquired,
		ID:    id,
		Kind:  kind,
		Label: label,
	})

	return id
}

// Release removes a live entry. Returns a KindInvalidID error for an
// unknown ID and a KindDoubleRelease error for one already released.
func (r *Registry) Release(id ID) error {
	e, err := r.store.release(id)
	if err != nil {
		return err
	}

	Logger().Debug("resource released",
		zap.Uint32("id", uint32(id)),
		zap.String("kind", e.kind),
		zap.Duration("held", time.Since(e.acquiredAt)))

	r.notify(Event{
		Type:  EventReleased,
		ID:    id,
		Kind:  e.kind,
		Label: e.label,
	})

	return nil
}

// Move records an ownership transfer of a live entry. An empty label
// keeps the previous one. Returns a KindInvalidID error if the ID is
// not live.
func (r *Registry) Move(id ID, label string) error {
	e, ok := r.store.move(id, label)
	if !ok {
		return errors.InvalidID(errors.PhaseTransfer, uint32(id))
	}

	r.notify(Event{
		Type:  EventMoved,
		ID:    id,
		Kind:  e.kind,
		Label: e.label,
	})

	return nil
}

// Get returns a snapshot of a live entry.
func (r *Registry) Get(id ID) (Entry, bool) {
	e, ok := r.store.get(id)
	if !ok {
		return Entry{}, false
	}
	return entrySnapshot(id, e), true
}

// Len returns the number of live entries.
func (r *Registry) Len() int {
	return r.store.len()
}

// Live returns snapshots of all live entries.
func (r *Registry) Live() []Entry {
	var out []Entry
	r.store.each(func(id ID, e slot) bool {
		out = append(out, entrySnapshot(id, e))
		return true
	})
	return out
}

// Each iterates over live entries until fn returns false.
func (r *Registry) Each(fn func(Entry) bool) {
	r.store.each(func(id ID, e slot) bool {
		return fn(entrySnapshot(id, e))
	})
}

// Subscribe adds an observer for lifecycle events.
func (r *Registry) Subscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	r.observers = append(r.observers, o)
}

// Unsubscribe removes an observer.
func (r *Registry) Unsubscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	for i, obs := range r.observers {
		if obs == o {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

// Close stops accepting operations. If entries are still live, each is
// reported through EventLeaked and the returned error is a LeakError
// naming them all, with their acquisition stacks. Closing an empty
// registry returns nil.
func (r *Registry) Close() error {
	r.closeMu.Lock()
	if r.closed {
		r.closeMu.Unlock()
		return nil
	}
	r.closed = true
	r.closeMu.Unlock()

	live := r.store.close()
	if len(live) == 0 {
		return nil
	}

	leak := &errors.LeakError{Entries: make([]errors.LeakedEntry, 0, len(live))}
	for _, e := range live {
		Logger().Warn("resource leaked",
			zap.Uint32("id", uint32(e.ID)),
			zap.String("kind", e.Kind),
			zap.String("label", e.Label),
			zap.Duration("held", time.Since(e.AcquiredAt)))

		r.notify(Event{
			Type:  EventLeaked,
			ID:    e.ID,
			Kind:  e.Kind,
			Label: e.Label,
		})

		leak.Entries = append(leak.Entries, errors.LeakedEntry{
			ID:     uint32(e.ID),
			Kind:   e.Kind,
			Label:  e.Label,
			Age:    time.Since(e.AcquiredAt).Round(time.Millisecond).String(),
			Origin: formatOrigin(e.Origin),
		})
	}

	return leak
}

func (r *Registry) notify(e Event) {
	r.obsMu.RLock()
	defer r.obsMu.RUnlock()
	for _, o := range r.observers {
		o.OnHandleEvent(e)
	}
}
