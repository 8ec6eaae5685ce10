package match

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/elevator-sim/elevator-sim/sim"
	"github.com/elevator-sim/elevator-sim/sim/policy"
	"github.com/elevator-sim/elevator-sim/sim/trace"
)

// SeedStride separates the seeds of consecutive runs of a comparison.
const SeedStride = 12345

// Comparison aggregates a series of matches between the same two configs.
type Comparison struct {
	Runs      []*Result
	LeftWins  int
	RightWins int
	Draws     int

	MeanScore      [2]float64
	StdDevScore    [2]float64
	MeanCargo      [2]float64
	ElevatorTotals [sim.ElevatorCount]int
	Diagnostics    int // authoritative diagnostics over all runs
}

// Compare plays iterations matches with seeds base, base+SeedStride, ...
func Compare(base int64, iterations, ticks int, left, right policy.Config, tc trace.TraceConfig) (*Comparison, error) {
	if iterations <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", iterations)
	}
	runs := make([]*Result, 0, iterations)
	for i := 0; i < iterations; i++ {
		key := sim.NewSimulationKey(base + int64(i)*SeedStride)
		m, err := New(key, left, right, tc)
		if err != nil {
			return nil, err
		}
		res := m.Run(ticks)
		logrus.Infof("run %d (seed %d): left=%d right=%d", i, key, res.Scores[sim.Left], res.Scores[sim.Right])
		runs = append(runs, res)
	}
	return Summarize(runs), nil
}

// Summarize aggregates finished runs.
func Summarize(runs []*Result) *Comparison {
	c := &Comparison{Runs: runs}
	if len(runs) == 0 {
		return c
	}
	var scores, cargo [2][]float64
	for _, r := range runs {
		if side, ok := r.Winner(); !ok {
			c.Draws++
		} else if side == sim.Left {
			c.LeftWins++
		} else {
			c.RightWins++
		}
		for side := range scores {
			scores[side] = append(scores[side], float64(r.Scores[side]))
			cargo[side] = append(cargo[side], r.RemainingCargo[side])
		}
		for id, s := range r.ElevatorScores {
			c.ElevatorTotals[id] += s
		}
		c.Diagnostics += r.Diagnostics.Total()
	}
	for side := range scores {
		if len(runs) > 1 {
			c.MeanScore[side], c.StdDevScore[side] = stat.MeanStdDev(scores[side], nil)
		} else {
			c.MeanScore[side] = scores[side][0]
		}
		c.MeanCargo[side] = stat.Mean(cargo[side], nil)
	}
	return c
}

// Ratio compares the sides' mean scores: above 1 means right is ahead.
func (c *Comparison) Ratio() float64 {
	return (c.MeanScore[sim.Right] + 1) / (c.MeanScore[sim.Left] + 1)
}

// Print writes one line per run and the summary block.
func (c *Comparison) Print(w io.Writer) {
	for i, r := range c.Runs {
		fmt.Fprintf(w, "%3d seed %-8d %6d %6d  rem %5.0f %5.0f\n", i, r.Key,
			r.Scores[sim.Left], r.Scores[sim.Right], r.RemainingCargo[sim.Left], r.RemainingCargo[sim.Right])
	}
	fmt.Fprintln(w, "=== Comparison ===")
	fmt.Fprintf(w, "Runs                 : %d\n", len(c.Runs))
	fmt.Fprintf(w, "Ratio (right/left)   : %.5f\n", c.Ratio())
	fmt.Fprintf(w, "Mean score           : %.1f (sd %.1f) / %.1f (sd %.1f)\n",
		c.MeanScore[sim.Left], c.StdDevScore[sim.Left], c.MeanScore[sim.Right], c.StdDevScore[sim.Right])
	fmt.Fprintf(w, "Mean remaining cargo : %.1f / %.1f\n", c.MeanCargo[sim.Left], c.MeanCargo[sim.Right])
	fmt.Fprintf(w, "Wins (left/right/draw): %d / %d / %d\n", c.LeftWins, c.RightWins, c.Draws)
	if n := len(c.Runs); n > 0 {
		for id, total := range c.ElevatorTotals {
			fmt.Fprintf(w, "  elevator %d mean    : %.1f\n", id, float64(total)/float64(n))
		}
	}
	if c.Diagnostics > 0 {
		fmt.Fprintf(w, "Diagnostics          : %d\n", c.Diagnostics)
	}
}
