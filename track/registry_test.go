package track

import (
	"errors"
	"strings"
	"testing"

	ownederrors "github.com/thomasding/owned/errors"
)

type testObserver struct {
	events []Event
}

func (o *testObserver) OnHandleEvent(e Event) {
	o.events = append(o.events, e)
}

func TestRegistry_Basic(t *testing.T) {
	reg := NewRegistry()

	// Acquire
	id := reg.Acquire("file", "access.log")
	if id == 0 {
		t.Fatal("Expected non-zero id")
	}

	// Get
	e, ok := reg.Get(id)
	if !ok {
		t.Fatal("Get failed")
	}
	if e.Kind != "file" || e.Label != "access.log" {
		t.Fatalf("Wrong entry: %+v", e)
	}
	if e.AcquiredAt.IsZero() {
		t.Fatal("Acquisition time not recorded")
	}
	if len(e.Origin) == 0 {
		t.Fatal("Acquisition stack not captured")
	}

	// Release
	if err := reg.Release(id); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if reg.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Release")
	}

	// Double release
	var oe *ownederrors.Error
	if err := reg.Release(id); !errors.As(err, &oe) || oe.Kind != ownederrors.KindDoubleRelease {
		t.Fatalf("Expected double release error, got %v", err)
	}

	if err := reg.Close(); err != nil {
		t.Fatalf("Close of empty registry failed: %v", err)
	}
}

func TestRegistry_Observer(t *testing.T) {
	reg := NewRegistry()
	obs := &testObserver{}
	reg.Subscribe(obs)

	// Acquire should trigger EventAcquired
	id := reg.Acquire("socket", "peer-1")
	if len(obs.events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(obs.events))
	}
	if obs.events[0].Type != EventAcquired {
		t.Fatal("Expected EventAcquired")
	}
	if obs.events[0].ID != id {
		t.Fatal("Wrong id in event")
	}

	// Move should trigger EventMoved with the new label
	reg.Move(id, "peer-1-worker")
	if len(obs.events) != 2 || obs.events[1].Type != EventMoved {
		t.Fatal("Expected EventMoved")
	}
	if obs.events[1].Label != "peer-1-worker" {
		t.Fatalf("Label = %q, want relabeled", obs.events[1].Label)
	}

	// Release should trigger EventReleased
	reg.Release(id)
	if len(obs.events) != 3 || obs.events[2].Type != EventReleased {
		t.Fatal("Expected EventReleased")
	}

	// Unsubscribe
	reg.Unsubscribe(obs)
	reg.Acquire("socket", "peer-2")
	if len(obs.events) != 3 {
		t.Fatal("Should not receive events after Unsubscribe")
	}
}

func TestRegistry_Move(t *testing.T) {
	reg := NewRegistry()

	id := reg.Acquire("buffer", "stage-1")
	reg.Move(id, "stage-2")
	reg.Move(id, "") // empty label keeps the previous one

	e, ok := reg.Get(id)
	if !ok {
		t.Fatal("Get failed")
	}
	if e.Moves != 2 {
		t.Fatalf("Moves = %d, want 2", e.Moves)
	}
	if e.Label != "stage-2" {
		t.Fatalf("Label = %q, want stage-2", e.Label)
	}

	var oe *ownederrors.Error
	if err := reg.Move(999, "nowhere"); !errors.As(err, &oe) || oe.Kind != ownederrors.KindInvalidID {
		t.Fatalf("Expected invalid id error, got %v", err)
	}
}

func TestRegistry_LeakReport(t *testing.T) {
	reg := NewRegistry()
	obs := &testObserver{}
	reg.Subscribe(obs)

	reg.Acquire("file", "leaked.log")
	id := reg.Acquire("socket", "released")
	reg.Release(id)

	err := reg.Close()
	if err == nil {
		t.Fatal("Expected leak error from Close")
	}

	var leak *ownederrors.LeakError
	if !errors.As(err, &leak) {
		t.Fatalf("Expected LeakError, got %T", err)
	}
	if len(leak.Entries) != 1 {
		t.Fatalf("Expected 1 leaked entry, got %d", len(leak.Entries))
	}
	entry := leak.Entries[0]
	if entry.Kind != "file" || entry.Label != "leaked.log" {
		t.Fatalf("Wrong leaked entry: %+v", entry)
	}
	if len(entry.Origin) == 0 {
		t.Fatal("Leak report should include the acquisition stack")
	}
	if !strings.Contains(entry.Origin[0], "TestRegistry_LeakReport") {
		t.Fatalf("Origin should point at the acquiring function, got %q", entry.Origin[0])
	}

	last := obs.events[len(obs.events)-1]
	if last.Type != EventLeaked {
		t.Fatal("Expected EventLeaked for the live entry")
	}

	// Acquire should fail after Close
	if id := reg.Acquire("file", "late"); id != 0 {
		t.Fatal("Expected Acquire to fail after Close")
	}

	// Second Close is a no-op
	if err := reg.Close(); err != nil {
		t.Fatalf("Second Close failed: %v", err)
	}
}

func TestRegistry_IDReuse(t *testing.T) {
	reg := NewRegistry()

	id1 := reg.Acquire("buffer", "a")
	reg.Release(id1)
	id2 := reg.Acquire("buffer", "b")
	if id2 != id1 {
		t.Fatalf("Expected slot reuse, got %d then %d", id1, id2)
	}

	e, _ := reg.Get(id2)
	if e.Label != "b" {
		t.Fatalf("Reused slot kept stale label %q", e.Label)
	}
	reg.Release(id2)
	reg.Close()
}

func TestRegistry_Live(t *testing.T) {
	reg := NewRegistry()

	reg.Acquire("file", "a")
	reg.Acquire("file", "b")
	id := reg.Acquire("file", "c")
	reg.Release(id)

	live := reg.Live()
	if len(live) != 2 {
		t.Fatalf("Expected 2 live entries, got %d", len(live))
	}

	count := 0
	reg.Each(func(Entry) bool {
		count++
		return count < 1 // stop after the first
	})
	if count != 1 {
		t.Fatalf("Each should stop when fn returns false, visited %d", count)
	}
}
