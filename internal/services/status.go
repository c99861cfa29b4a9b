// Package services classifies every tracked daemon into a three-state
// status using independent detection strategies with a deterministic
// fallback order: binary resolution, init-system unit queries, then a
// process-table scan. Classification is stateless; each cycle recomputes
// from scratch.
package services

// State is the lifecycle classification of a tracked service.
type State int

const (
	NotInstalled State = iota
	Offline
	Running
)

// String returns the panel label for a state.
func (s State) String() string {
	switch s {
	case Running:
		return "RUNNING"
	case Offline:
		return "OFFLINE"
	default:
		return "NOT INSTALLED"
	}
}

// Status is one service's classification for the current cycle.
//
// Invariant: a NotInstalled status carries no version and no annotation.
type Status struct {
	Key     string
	Display string
	State   State

	// Version is shown for Running and Offline services when a probe
	// produced one.
	Version string

	// Annotation carries a short domain detail, e.g. a firewall rule
	// count or a jail count.
	Annotation string
}
