// Package match runs two-sided games: one authoritative world and one
// controller per side, reconciled every tick.
package match

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/elevator-sim/elevator-sim/sim"
	"github.com/elevator-sim/elevator-sim/sim/policy"
	"github.com/elevator-sim/elevator-sim/sim/trace"
)

// Controller decides one side's commands. Play receives the authoritative
// world, may only push commands into it and must not step it.
type Controller interface {
	Play(world *sim.Simulator)
}

// Match owns the authoritative world and the two controllers.
type Match struct {
	Key   sim.SimulationKey
	World *sim.Simulator
	Left  Controller
	Right Controller
	Trace *trace.SimulationTrace // nil if tracing is off
}

// New builds a match for key. The world and each side's mirror draw from
// separate subsystems of the same key, so a match is reproducible from key and
// the two configs alone.
func New(key sim.SimulationKey, left, right policy.Config, tc trace.TraceConfig) (*Match, error) {
	rng := sim.NewPartitionedRNG(key)

	var tr *trace.SimulationTrace
	if tc.Level == trace.TraceLevelDecisions {
		tr = trace.NewSimulationTrace(tc)
	}

	l, err := policy.NewStrategy(sim.Left, left, rng.ForSubsystem(sim.SubsystemLeft), tr)
	if err != nil {
		return nil, err
	}
	r, err := policy.NewStrategy(sim.Right, right, rng.ForSubsystem(sim.SubsystemRight), tr)
	if err != nil {
		return nil, err
	}
	return &Match{
		Key:   key,
		World: sim.NewSimulatorWithRandom(rng.ForSubsystem(sim.SubsystemWorld)),
		Left:  l,
		Right: r,
		Trace: tr,
	}, nil
}

// NewWithControllers builds a match around arbitrary controllers.
func NewWithControllers(key sim.SimulationKey, left, right Controller) *Match {
	return &Match{
		Key:   key,
		World: sim.NewSimulator(key),
		Left:  left,
		Right: right,
	}
}

// Tick plays one tick: left decides, right decides, then the world advances.
// Neither side sees the other's commands before the step.
func (m *Match) Tick() {
	m.Left.Play(m.World)
	m.Right.Play(m.World)
	m.World.Step()
}

// Run plays until the world clock reaches ticks-1, i.e. ticks steps from a
// fresh world, and reports the outcome.
func (m *Match) Run(ticks int) *Result {
	start := time.Now()
	for m.World.Tick < ticks-1 {
		m.Tick()
		if m.World.Tick%1000 == 999 {
			logrus.Infof("[tick %07d] score left=%d right=%d", m.World.Tick, m.World.Scores[sim.Left], m.World.Scores[sim.Right])
		}
	}
	return m.result(time.Since(start))
}

func (m *Match) result(wall time.Duration) *Result {
	w := m.World
	res := &Result{
		Key:            m.Key,
		Ticks:          w.Tick + 1,
		Scores:         w.Scores,
		Delivered:      w.Delivered,
		ElevatorScores: w.ElevatorScores,
		Diagnostics:    w.Diagnostics(),
		Trace:          m.Trace,
		WallTime:       wall,
	}
	for _, side := range [...]sim.Side{sim.Left, sim.Right} {
		res.RemainingCargo[side] = w.TotalCargoValue(side, sim.DistinctFloors{}).Points
		if s, ok := controllerStrategy(side, m); ok {
			res.MirrorDiagnostics[side] = s.Sim.Diagnostics()
		}
	}
	if m.Trace != nil {
		res.Summary = trace.Summarize(m.Trace)
	}
	return res
}

func controllerStrategy(side sim.Side, m *Match) (*policy.Strategy, bool) {
	c := m.Left
	if side == sim.Right {
		c = m.Right
	}
	s, ok := c.(*policy.Strategy)
	return s, ok
}

// Idle is a controller that never issues a command.
type Idle struct{}

func (Idle) Play(*sim.Simulator) {}

// String describes a match for logs.
func (m *Match) String() string {
	return fmt.Sprintf("Match: (Key: %d, Tick: %d, Left: %d, Right: %d)",
		m.Key, m.World.Tick, m.World.Scores[sim.Left], m.World.Scores[sim.Right])
}
