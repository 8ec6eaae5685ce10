package match

import (
	"fmt"
	"io"
	"time"

	"github.com/elevator-sim/elevator-sim/sim"
	"github.com/elevator-sim/elevator-sim/sim/trace"
)

// Result bundles the outputs of one match.
type Result struct {
	Key            sim.SimulationKey
	Ticks          int
	Scores         [2]int
	Delivered      [2]int
	ElevatorScores [sim.ElevatorCount]int
	// RemainingCargo is the distinct-floors valuation still aboard at the end.
	RemainingCargo    [2]float64
	Diagnostics       sim.Diagnostics    // authoritative world
	MirrorDiagnostics [2]sim.Diagnostics // each side's mirror
	Trace             *trace.SimulationTrace
	Summary           *trace.TraceSummary // nil if tracing is off

	WallTime time.Duration
}

// Winner returns the side with the higher score; ok is false on a draw.
func (r *Result) Winner() (side sim.Side, ok bool) {
	switch {
	case r.Scores[sim.Left] > r.Scores[sim.Right]:
		return sim.Left, true
	case r.Scores[sim.Right] > r.Scores[sim.Left]:
		return sim.Right, true
	default:
		return sim.Left, false
	}
}

// Print writes the result block.
func (r *Result) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Match Result ===")
	fmt.Fprintf(w, "Seed                 : %d\n", r.Key)
	fmt.Fprintf(w, "Ticks                : %d\n", r.Ticks)
	fmt.Fprintf(w, "Score (left/right)   : %d / %d\n", r.Scores[sim.Left], r.Scores[sim.Right])
	fmt.Fprintf(w, "Delivered            : %d / %d\n", r.Delivered[sim.Left], r.Delivered[sim.Right])
	fmt.Fprintf(w, "Remaining cargo      : %.0f / %.0f\n", r.RemainingCargo[sim.Left], r.RemainingCargo[sim.Right])
	for id, score := range r.ElevatorScores {
		fmt.Fprintf(w, "  elevator %d         : %d\n", id, score)
	}
	if n := r.Diagnostics.Total(); n > 0 {
		fmt.Fprintf(w, "Diagnostics          : %d %v\n", n, r.Diagnostics.ByName())
	}
	for side, d := range r.MirrorDiagnostics {
		if n := d.Total(); n > 0 {
			fmt.Fprintf(w, "Mirror diagnostics %-5s: %d %v\n", sim.Side(side), n, d.ByName())
		}
	}
	if r.Summary != nil {
		fmt.Fprintln(w, "=== Decision Trace ===")
		fmt.Fprintf(w, "Decisions            : %d (%d changed)\n", r.Summary.TotalDecisions, r.Summary.ChangedDecisions)
		fmt.Fprintf(w, "Regret (mean/max)    : %.2f / %.2f\n", r.Summary.MeanRegret, r.Summary.MaxRegret)
		fmt.Fprintf(w, "Unique targets       : %d\n", r.Summary.UniqueTargets)
	}
	fmt.Fprintf(w, "Wall time            : %s\n", r.WallTime.Round(time.Millisecond))
}
