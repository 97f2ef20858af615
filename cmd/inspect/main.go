package main

import (
	"flag"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/thomasding/owned"
	"github.com/thomasding/owned/pool"
	"github.com/thomasding/owned/track"
)

func main() {
	var (
		workers     = flag.Int("workers", 4, "Concurrent workers in the demo workload")
		ops         = flag.Int("ops", 32, "Operations per worker")
		leaks       = flag.Int("leak", 2, "Resources to abandon deliberately")
		verbose     = flag.Bool("v", false, "Log acquire/release events")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		track.SetLogger(l)
	}

	if *interactive {
		if err := runInteractive(*workers, *ops, *leaks); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*workers, *ops, *leaks); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(workers, ops, leaks int) error {
	reg := track.NewRegistry()
	reg.Subscribe(track.NewMetricsObserver("owned_inspect", reg))

	runWorkload(reg, workers, ops, leaks, 0)

	// Snapshot before the leak check tears everything down.
	live := reg.Live()
	fmt.Printf("Live resources: %d\n", len(live))
	for _, e := range live {
		fmt.Printf("  #%-4d %-8s %-28s moves=%d age=%s\n",
			e.ID, e.Kind, e.Label, e.Moves,
			time.Since(e.AcquiredAt).Round(time.Millisecond))
	}

	return reg.Close()
}

// demoConn stands in for a descriptor-backed resource.
type demoConn struct {
	name string
}

func (c *demoConn) Close() error { return nil }

// demoBuffer is the pooled scratch resource the workload borrows per
// operation.
type demoBuffer struct {
	data []byte
}

// runWorkload drives the registry through a realistic mix of acquire,
// transfer, release, and abandonment. A non-zero delay paces the workload
// so the TUI has something to watch.
func runWorkload(reg *track.Registry, workers, ops, leaks int, delay time.Duration) {
	bufs := pool.New(workers, func() (*demoBuffer, error) {
		return &demoBuffer{data: make([]byte, 0, 512)}, nil
	}, owned.NoopReleaser[*demoBuffer]())
	defer bufs.Close()

	leaksLeft := int64(leaks)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < ops; i++ {
				label := fmt.Sprintf("conn-%d-%d", w, i)
				h, id := track.Own(reg, &demoConn{name: label}, nil, "conn", label)

				if b, err := bufs.Acquire(); err == nil {
					b.Get().data = append(b.Get().data[:0], label...)
					b.Close()
				}

				if delay > 0 {
					time.Sleep(delay)
				}

				switch {
				case i%7 == 3 && atomic.AddInt64(&leaksLeft, -1) >= 0:
					// Abandon the resource without releasing it.
					_ = h.Detach()
				case i%3 == 0:
					// Hand the resource to a second owner before closing.
					h2 := h.Move()
					reg.Move(id, label+"@drain")
					h2.Close()
				default:
					h.Close()
				}
			}
		}(w)
	}
	wg.Wait()
}
