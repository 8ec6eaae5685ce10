package policy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elevator-sim/elevator-sim/sim"
	"github.com/elevator-sim/elevator-sim/sim/trace"
)

// newQuietStrategy returns a strategy whose mirror is an empty world at tick,
// with every elevator parked on floor 8 except those the test moves.
func newQuietStrategy(t *testing.T, side sim.Side, cfg Config, tick int) *Strategy {
	t.Helper()
	s, err := NewStrategy(side, cfg, sim.NewRandom(), nil)
	require.NoError(t, err)
	s.Sim = sim.NewEmptySimulator(sim.NewRandom())
	s.Sim.Tick = tick
	for i := range s.Sim.Elevators {
		s.Sim.Elevators[i].Y = sim.FloorCount - 1
	}
	return s
}

// place parks elevator id with open doors on floor.
func place(s *Strategy, id, floor, dwell int) *sim.Elevator {
	e := &s.Sim.Elevators[id]
	e.Y = float64(floor)
	e.State = sim.ElevatorFilling
	e.DoorsOpenTicks = dwell
	e.NextFloor = -1
	return e
}

// waiting inserts a waiting passenger into the mirror.
func waiting(t *testing.T, s *Strategy, side sim.Side, floor, dest int) int {
	t.Helper()
	id, err := s.Sim.InsertPassenger(sim.NewPassenger(side, floor, dest))
	require.NoError(t, err)
	return id
}

// aboard inserts a passenger riding elevator e.
func aboard(t *testing.T, s *Strategy, e *sim.Elevator, side sim.Side, from, dest int) int {
	t.Helper()
	p := sim.NewPassenger(side, e.Floor(), dest)
	p.FromFloor = from
	p.State = sim.UsingElevator
	p.Elevator = e.ID
	id, err := s.Sim.InsertPassenger(p)
	require.NoError(t, err)
	require.True(t, e.Passengers.Add(id))
	return id
}

// fillWithStrangers occupies n manifest slots with ids that are not active.
func fillWithStrangers(e *sim.Elevator, n int) {
	for i := 0; i < n; i++ {
		e.Passengers.Add(10000 + i)
	}
}

func noRollouts() Config {
	cfg := DefaultConfig()
	cfg.Rollout.Enabled = false
	return cfg
}

func decisionsTrace(topK int) *trace.SimulationTrace {
	return trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions, TopK: topK})
}
