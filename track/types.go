package track

import "time"

// ID is an opaque reference to a tracked resource.
// ID 0 is reserved and always invalid.
type ID uint32

// Event types for resource lifecycle notifications.
type EventType uint8

const (
	EventAcquired EventType = iota
	EventReleased
	EventMoved
	EventLeaked
)

// Event represents a resource lifecycle event.
type Event struct {
	ID    ID
	Kind  string
	Label string
	Type  EventType
}

// Observer receives notifications about resource lifecycle events.
type Observer interface {
	OnHandleEvent(Event)
}

// Entry is a point-in-time snapshot of one live tracked resource.
type Entry struct {
	AcquiredAt time.Time
	Kind       string
	Label      string
	Origin     []uintptr
	ID         ID
	Moves      uint32
}
