package kmc

import "github.com/bpuchala/CASMcode-monte/monte"

// EventID identifies a proposed event; opaque to the driver.
type EventID int

// EventSelector proposes the next event and the simulated-time increment
// until it occurs. Implementations own whatever RNG subsystem they use
// internally, so that changing the selection algorithm never perturbs
// draws consumed elsewhere.
type EventSelector interface {
	// TotalRate returns the sum of rates of every currently possible event.
	TotalRate() float64
	// SelectEvent draws the next event to apply and how much simulated
	// time elapses before it occurs. Dt must be strictly positive.
	SelectEvent() (EventID, float64)
}

// EventLookup resolves an EventID to the OccEvent it represents.
type EventLookup interface {
	Event(id EventID) *monte.OccEvent
}
