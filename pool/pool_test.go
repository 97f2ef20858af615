package pool

import (
	"errors"
	"sync"
	"testing"

	ownederrors "github.com/thomasding/owned/errors"
)

type fakeConn struct {
	id        int
	destroyed bool
}

type connFactory struct {
	mu        sync.Mutex
	built     int
	destroyed int
}

func (f *connFactory) build() (*fakeConn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.built++
	return &fakeConn{id: f.built}, nil
}

func (f *connFactory) destroy(c *fakeConn) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.destroyed {
		return errors.New("destroyed twice")
	}
	c.destroyed = true
	f.destroyed++
	return nil
}

func TestPool_Recycles(t *testing.T) {
	f := &connFactory{}
	p := New(4, f.build, f.destroy)

	h, err := p.Acquire()
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	first := h.Get()
	if err := h.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// The same resource comes back out.
	h2, err := p.Acquire()
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if h2.Get() != first {
		t.Fatal("Expected the recycled resource")
	}
	h2.Close()

	if f.built != 1 {
		t.Fatalf("Expected 1 construction, got %d", f.built)
	}
	if f.destroyed != 0 {
		t.Fatalf("Nothing should be destroyed yet, got %d", f.destroyed)
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if f.destroyed != 1 {
		t.Fatalf("Close should destroy the idle resource, got %d", f.destroyed)
	}
}

func TestPool_HandleReleaseExactlyOnce(t *testing.T) {
	f := &connFactory{}
	p := New(4, f.build, f.destroy)

	h, _ := p.Acquire()
	h.Close()
	// Closing again must not return the resource a second time.
	h.Close()

	h2, _ := p.Acquire()
	if _, ok := p.idle.TryDequeue(); ok {
		t.Fatal("Idle set should be empty; double Close enqueued twice")
	}
	h2.Close()
	p.Close()
}

func TestPool_OverflowDestroys(t *testing.T) {
	f := &connFactory{}
	p := New(1, f.build, f.destroy)

	h1, _ := p.Acquire()
	h2, _ := p.Acquire()

	h1.Close() // fills the idle set
	h2.Close() // overflow, destroyed immediately

	if f.destroyed != 1 {
		t.Fatalf("Expected overflow destroy, got %d", f.destroyed)
	}
	p.Close()
	if f.destroyed != 2 {
		t.Fatalf("Expected 2 total destroys, got %d", f.destroyed)
	}
}

func TestPool_AcquireAfterClose(t *testing.T) {
	f := &connFactory{}
	p := New(1, f.build, f.destroy)
	p.Close()

	_, err := p.Acquire()
	if err == nil {
		t.Fatal("Expected error from closed pool")
	}
	var e *ownederrors.Error
	if !errors.As(err, &e) || e.Kind != ownederrors.KindClosed {
		t.Fatalf("Expected closed error, got %v", err)
	}
}

func TestPool_ReleaseAfterCloseDestroys(t *testing.T) {
	f := &connFactory{}
	p := New(4, f.build, f.destroy)

	h, _ := p.Acquire()
	p.Close()

	// The checked-out resource outlives the pool, then gets destroyed.
	if err := h.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if f.destroyed != 1 {
		t.Fatalf("Expected destroy after pool close, got %d", f.destroyed)
	}
}

func TestPool_CloseRacingRelease(t *testing.T) {
	// A release overlapping Close must never strand the resource in the
	// idle set: whichever side loses the race destroys it.
	for i := 0; i < 200; i++ {
		f := &connFactory{}
		p := New(1, f.build, f.destroy)

		h, err := p.Acquire()
		if err != nil {
			t.Fatalf("Acquire failed: %v", err)
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			h.Close()
		}()
		p.Close()
		<-done

		if _, ok := p.idle.TryDequeue(); ok {
			t.Fatalf("iteration %d: resource stranded in idle set after Close", i)
		}
		f.mu.Lock()
		destroyed := f.destroyed
		f.mu.Unlock()
		if destroyed != 1 {
			t.Fatalf("iteration %d: destroyed = %d, want 1", i, destroyed)
		}
	}
}

func TestPool_NewFnError(t *testing.T) {
	want := errors.New("dial failed")
	p := New(1, func() (*fakeConn, error) { return nil, want }, nil)

	h, err := p.Acquire()
	if !errors.Is(err, want) {
		t.Fatalf("Expected constructor error, got %v", err)
	}
	if h.Valid() {
		t.Fatal("Failed Acquire should return an empty handle")
	}
	p.Close()
}

func TestPool_Concurrent(t *testing.T) {
	f := &connFactory{}
	p := New(8, f.build, f.destroy)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				h, err := p.Acquire()
				if err != nil {
					t.Errorf("Acquire failed: %v", err)
					return
				}
				if h.Get() == nil {
					t.Error("Acquired nil resource")
				}
				h.Close()
			}
		}()
	}
	wg.Wait()

	if err := p.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.destroyed > f.built {
		t.Fatalf("Destroyed %d of %d built", f.destroyed, f.built)
	}
}
