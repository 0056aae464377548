package metrics

import "time"

// SolveEvent describes one solver invocation for observability purposes.
type SolveEvent struct {
	Component   string // "seating" or "joint"
	RunID       string
	Status      string
	Duration    time.Duration
	Vars        int
	Constraints int
	Nodes       int
}

// RepairEvent describes one auto-repair attempt.
type RepairEvent struct {
	Mode     string // "mappings" or "rebind"
	Moves    int
	Resolved bool
}

// Sink records scheduling events. Implementations must be safe for use from
// a single session at a time; the engine never calls them concurrently.
type Sink interface {
	RecordSolve(ev SolveEvent) error
	RecordRepair(ev RepairEvent) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordSolve(SolveEvent) error   { return nil }
func (NopSink) RecordRepair(RepairEvent) error { return nil }
