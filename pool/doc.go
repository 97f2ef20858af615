// Package pool provides recycling pools of single-owner resources.
//
// A Pool hands out resources as owned handles whose releaser returns the
// value to the pool instead of destroying it. The handle's exactly-once
// release contract is what makes the scheme safe: a resource cannot be
// returned to the pool twice, and a moved-out handle returns nothing.
//
//	p := pool.New(8,
//	    func() (*Conn, error) { return dial(addr) },
//	    func(c *Conn) error { return c.Close() },
//	)
//	defer p.Close()
//
//	h, err := p.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer h.Close() // returns the conn to the pool
//
//	h.Get().Do(req)
//
// The idle set is a bounded lock-free queue; when it is full, returned
// resources are destroyed rather than retained. Close drains the idle
// set and destroys everything in it, aggregating destroy errors.
package pool
