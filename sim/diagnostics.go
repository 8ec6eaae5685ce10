package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// DiagnosticKind classifies an inconsistency the engine tolerated.
type DiagnosticKind int

const (
	// DiagMissingPassenger: a manifest references a passenger id that is not active.
	DiagMissingPassenger DiagnosticKind = iota
	// DiagVisitedRange: a passenger's visited-floor count is outside the valid range.
	DiagVisitedRange
	// DiagAlreadyRegistered: a passenger re-entered while already active.
	DiagAlreadyRegistered
	// DiagStateMismatch: the authority reports an elevator state the mirror did not predict.
	DiagStateMismatch
	// DiagUnknownPassenger: a command addressed a passenger the authority does not know.
	DiagUnknownPassenger
	// DiagInvalidCommand: a command named a floor or elevator outside the building.
	DiagInvalidCommand

	diagnosticKinds
)

var diagnosticNames = [diagnosticKinds]string{
	"missing-passenger",
	"visited-range",
	"already-registered",
	"state-mismatch",
	"unknown-passenger",
	"invalid-command",
}

func (k DiagnosticKind) String() string {
	if k < 0 || k >= diagnosticKinds {
		return fmt.Sprintf("DiagnosticKind(%d)", int(k))
	}
	return diagnosticNames[k]
}

// Diagnostics counts tolerated inconsistencies per kind. It is a plain array so
// cloning a Simulator copies it for free.
type Diagnostics [diagnosticKinds]int

// Count returns the number of events of kind k.
func (d *Diagnostics) Count(k DiagnosticKind) int {
	return d[k]
}

// Total returns the number of events of all kinds.
func (d *Diagnostics) Total() int {
	n := 0
	for _, c := range d {
		n += c
	}
	return n
}

// ByName returns the non-zero counters keyed by kind name.
func (d *Diagnostics) ByName() map[string]int {
	out := make(map[string]int)
	for k, c := range d {
		if c > 0 {
			out[DiagnosticKind(k).String()] = c
		}
	}
	return out
}

// diagnose records and logs an inconsistency; the tick continues.
func (sim *Simulator) diagnose(kind DiagnosticKind, format string, args ...any) {
	sim.diagnostics[kind]++
	logrus.Warnf("[tick %07d] %s: %s", sim.Tick, kind, fmt.Sprintf(format, args...))
}

// Diagnostics returns a copy of the diagnostic counters.
func (sim *Simulator) Diagnostics() Diagnostics {
	return sim.diagnostics
}
