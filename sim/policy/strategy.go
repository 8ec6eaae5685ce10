package policy

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"

	"github.com/elevator-sim/elevator-sim/sim"
	"github.com/elevator-sim/elevator-sim/sim/trace"
)

// Strategy is the controller of one side. It plays on a private mirror of the
// authoritative world and only ever pushes commands back.
type Strategy struct {
	Side  sim.Side
	Sim   *sim.Simulator // private mirror
	Lanes [sim.ElevatorsPerSide]Lane
	// Opponent lanes drive the other side inside replays when
	// Rollout.ModelOpponent is set. They never touch the authoritative world.
	Opponent [sim.ElevatorsPerSide]Lane
	Config   Config
	// Trace receives rollout decisions; nil disables recording.
	Trace *trace.SimulationTrace

	valuation sim.Valuation
	replay    bool
}

// NewStrategy creates the controller of side. The mirror starts from rng, the
// side's private generator, which invents itineraries the authority keeps hidden.
func NewStrategy(side sim.Side, cfg Config, rng sim.Random, tr *trace.SimulationTrace) (*Strategy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s policy config: %w", side, err)
	}
	s := &Strategy{
		Side:      side,
		Sim:       sim.NewSimulatorWithRandom(rng),
		Config:    cfg,
		Trace:     tr,
		valuation: sim.NewValuation(cfg.Rollout.Valuation),
	}
	for i := range s.Lanes {
		s.Lanes[i] = Lane{
			Index:            i,
			FirstMoveMinDest: cfg.FirstMoveMinDest[i],
			Rollouts:         cfg.Rollout.Enabled,
		}
		s.Opponent[i] = Lane{Index: i, FirstMoveMinDest: cfg.FirstMoveMinDest[i]}
	}
	return s, nil
}

// elevatorID maps a lane of side to the elevator it drives.
func elevatorID(side sim.Side, lane int) int {
	if side == sim.Left {
		return lane
	}
	return sim.ElevatorsPerSide + lane
}

// MakeMove runs every own lane once, in elevator order. Inside a replay the
// opponent lanes run too when configured.
func (s *Strategy) MakeMove() {
	for i := range s.Lanes {
		s.Lanes[i].MakeMove(s, &s.Sim.Elevators[elevatorID(s.Side, i)])
	}
	if s.replay && s.Config.Rollout.ModelOpponent {
		enemy := s.Side.Opposite()
		for i := range s.Opponent {
			s.Opponent[i].MakeMove(s, &s.Sim.Elevators[elevatorID(enemy, i)])
		}
	}
}

// Play performs one tick of the reconciliation protocol against the
// authoritative world: pull its state, decide on the mirror, push own-side
// commands, then advance the mirror. It never steps auth.
func (s *Strategy) Play(auth *sim.Simulator) {
	s.Sim.SynchronizeWith(auth, s.Side)
	s.MakeMove()
	auth.CopyCommandsFrom(s.Sim, s.Side)
	s.Sim.Step()
}

// Clone duplicates the strategy by value: lanes and config through a deep copy,
// the mirror through Simulator.Clone. The clone does not record decisions.
func (s *Strategy) Clone() *Strategy {
	c := &Strategy{
		Side:      s.Side,
		Sim:       s.Sim.Clone(),
		valuation: s.valuation,
		replay:    s.replay,
	}
	if err := deepcopy.Copy(&c.Lanes, &s.Lanes); err != nil {
		panic(err)
	}
	if err := deepcopy.Copy(&c.Opponent, &s.Opponent); err != nil {
		panic(err)
	}
	if err := deepcopy.Copy(&c.Config, &s.Config); err != nil {
		panic(err)
	}
	return c
}

