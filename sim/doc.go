// Package sim provides the deterministic tick-based simulation engine for the
// two-sided elevator dispatch game.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - passenger.go: Passenger record and lifecycle states
//   - elevator.go: Elevator record and the door/motion state machine
//   - simulator.go: the Step pipeline (commands, assignment, elevators, passengers, spawns)
//
// # Architecture
//
// The Simulator exclusively owns every Passenger and Elevator. Entities are plain
// values without pointers, so Clone is a bounded copy of a few slices; the rollout
// decision engine relies on this to replay hypothetical futures cheaply.
//
// Each side's policy keeps a private mirror Simulator. Per tick the mirror pulls the
// authoritative state (SynchronizeWith), the policy writes commands into the mirror,
// and the authority takes back only the commanding side's fields (CopyCommandsFrom).
// Only the authority's Step advances the shared clock.
//
// Sub-packages:
//   - sim/policy/: the configurable dispatch policy and the rollout decision engine
//   - sim/match/: two-sided match runner and seed comparisons
//   - sim/trace/: decision trace recording
//
// Inconsistent bookkeeping never aborts a tick. It is logged and counted as a
// Diagnostic (see diagnostics.go) so tests can assert it never happens.
package sim
