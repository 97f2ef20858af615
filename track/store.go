package track

import (
	"sync"
	"time"

	"github.com/thomasding/owned/errors"
)

// slotStore is the in-memory slot table behind a Registry. Slot IDs are
// recycled through a free list, so a released ID may be reissued for a
// later acquisition.
type slotStore struct {
	entries  []slot
	freeList []ID
	mu       sync.RWMutex
	closed   bool
}

type slot struct {
	acquiredAt time.Time
	kind       string
	label      string
	origin     []uintptr
	moves      uint32
	valid      bool
}

func newSlotStore() *slotStore {
	return &slotStore{
		entries:  make([]slot, 0, 64),
		freeList: make([]ID, 0, 16),
	}
}

// acquire stores a new entry and returns its ID.
func (s *slotStore) acquire(kind, label string, origin []uintptr) (ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, errors.Closed(errors.PhaseAcquire, "registry")
	}

	e := slot{
		acquiredAt: time.Now(),
		kind:       kind,
		label:      label,
		origin:     origin,
		valid:      true,
	}

	if len(s.freeList) > 0 {
		id := s.freeList[len(s.freeList)-1]
		s.freeList = s.freeList[:len(s.freeList)-1]
		s.entries[id-1] = e
		return id, nil
	}

	s.entries = append(s.entries, e)
	return ID(len(s.entries)), nil
}

// get returns a copy of the slot for id.
func (s *slotStore) get(id ID) (slot, bool) {
	if id == 0 {
		return slot{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := id - 1
	if int(idx) >= len(s.entries) {
		return slot{}, false
	}

	e := s.entries[idx]
	if !e.valid {
		return slot{}, false
	}
	return e, true
}

// release invalidates the slot and returns its final state. Unknown IDs
// are distinguished from slots that were already released.
func (s *slotStore) release(id ID) (slot, error) {
	if id == 0 {
		return slot{}, errors.InvalidID(errors.PhaseRelease, uint32(id))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := id - 1
	if int(idx) >= len(s.entries) {
		return slot{}, errors.InvalidID(errors.PhaseRelease, uint32(id))
	}

	e := &s.entries[idx]
	if !e.valid {
		return slot{}, errors.DoubleRelease(uint32(id))
	}

	out := *e
	*e = slot{}
	s.freeList = append(s.freeList, id)

	return out, nil
}

// move records an ownership transfer, updating the label and bumping the
// transfer count.
func (s *slotStore) move(id ID, label string) (slot, bool) {
	if id == 0 {
		return slot{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := id - 1
	if int(idx) >= len(s.entries) {
		return slot{}, false
	}

	e := &s.entries[idx]
	if !e.valid {
		return slot{}, false
	}

	if label != "" {
		e.label = label
	}
	e.moves++
	return *e, true
}

// len returns the number of live entries.
func (s *slotStore) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, e := range s.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// each iterates over live entries.
func (s *slotStore) each(fn func(ID, slot) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i, e := range s.entries {
		if e.valid {
			if !fn(ID(i+1), e) {
				break
			}
		}
	}
}

// close marks the store closed and returns every entry that was still
// live, in acquisition slot order.
func (s *slotStore) close() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var live []Entry
	for i := range s.entries {
		if s.entries[i].valid {
			live = append(live, entrySnapshot(ID(i+1), s.entries[i]))
			s.entries[i] = slot{}
		}
	}

	s.entries = nil
	s.freeList = nil
	return live
}

func entrySnapshot(id ID, e slot) Entry {
	return Entry{
		ID:         id,
		Kind:       e.kind,
		Label:      e.label,
		AcquiredAt: e.acquiredAt,
		Moves:      e.moves,
		Origin:     e.origin,
	}
}
