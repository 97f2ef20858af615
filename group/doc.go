// Package group provides LIFO release sets for scope-style cleanup.
//
// A Group collects release obligations and discharges them in reverse
// order of registration, the way a stack of defers would. It exists for
// the cases where lifetimes do not line up with a single function scope:
// building a compound object from several resources, handing the whole
// set to a caller, or tearing everything down on a partially failed
// construction.
//
//	g := group.New()
//	defer g.Close()
//
//	a := owned.New(openA(), nil)
//	connA := a.Get()
//	group.Adopt(g, &a)
//
//	b := owned.New(openB(), nil)
//	connB := b.Get()
//	group.Adopt(g, &b)
//
//	if err := wire(connA, connB); err != nil {
//	    return err // Close releases b, then a
//	}
//
//	g.Cancel() // handover succeeded; the caller owns everything now
//
// Close aggregates releaser failures with go.uber.org/multierr and keeps
// going: one failing releaser never prevents the rest from running.
package group
