// Package track provides a registry of live owned resources.
//
// The registry exists for debugging and leak detection: every resource
// acquired through it gets an ID, a kind tag, a label, and the call stack
// of its acquisition. Closing a registry that still has live entries
// returns a LeakError naming each of them and where they came from.
//
// # Tracking Handles
//
// Own wraps owned.New so that releasing the handle automatically
// untracks it:
//
//	reg := track.NewRegistry()
//	defer reg.Close()
//
//	h, id := track.Own(reg, conn, nil, "conn", remoteAddr)
//	defer h.Close() // releases conn, then untracks id
//
// # Observers
//
// Register observers to follow resource lifecycle events:
//
//	reg.Subscribe(obs) // obs.OnHandleEvent(Event) per acquire/release/move/leak
//
// A ready-made observer exporting VictoriaMetrics counters is provided:
//
//	reg.Subscribe(track.NewMetricsObserver("owned", reg))
//
// # Logging
//
// The package logs through a zap logger that defaults to a no-op.
// Installations that want acquire/release telemetry call SetLogger before
// creating registries.
package track
