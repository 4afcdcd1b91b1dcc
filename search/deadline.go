package search

import "time"

// DefaultSafetyBuffer is subtracted from the raw budget so selectAction
// returns in time for the caller to act on the result (spec §4.3, testable
// property 4: returns within budget + epsilon, epsilon <= 2*safety_buffer).
const DefaultSafetyBuffer = 100 * time.Millisecond

// Deadline tracks a search's wall-clock budget. shouldStop is consulted
// before each phase and inside any inner traversal loop (spec §4.3/§5).
type Deadline struct {
	start  time.Time
	budget time.Duration // raw budget minus the safety buffer
}

// NewDeadline starts a deadline clock now with the given raw budget,
// reserving safetyBuffer of it so the engine has time to return cleanly.
func NewDeadline(budget, safetyBuffer time.Duration) *Deadline {
	reserved := budget - safetyBuffer
	if reserved < 0 {
		reserved = 0
	}
	return &Deadline{start: time.Now(), budget: reserved}
}

// ShouldStop reports whether the deadline has passed. A nil Deadline never
// stops, so callers that have no real budget (tests, the pre-search
// shortcut's tree-only checks) can pass nil instead of a synthetic one.
func (d *Deadline) ShouldStop() bool {
	if d == nil {
		return false
	}
	return time.Since(d.start) >= d.budget
}

// ShouldStopProportion reports true once (now-start)*proportion >= budget,
// enabling early-exit of simulation set-up when little time remains (the
// shouldStop(proportion) variant). A nil Deadline never stops.
func (d *Deadline) ShouldStopProportion(proportion float64) bool {
	if d == nil {
		return false
	}
	elapsed := time.Since(d.start)
	return float64(elapsed)*proportion >= float64(d.budget)
}

// Elapsed returns the wall-clock time since the deadline started.
func (d *Deadline) Elapsed() time.Duration { return time.Since(d.start) }
