package policy

import (
	"math"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/elevator-sim/elevator-sim/sim"
	"github.com/elevator-sim/elevator-sim/sim/trace"
)

// decide runs the look-ahead for elevator e, whose doors are about to close:
// every other floor is tried on a copy of the strategy replayed forward, and
// the best-scoring floor becomes e's command.
func (s *Strategy) decide(e *sim.Elevator) {
	cfg := &s.Config.Rollout
	w := s.Sim

	remaining := s.Config.GameTicks - w.Tick - 2
	coef := 1.0
	if remaining < cfg.CargoDecayHorizon {
		coef = float64(remaining-cfg.CargoDecayOffset) / float64(cfg.CargoDecaySpan)
	}
	depth := min(cfg.BaseDepth+cfg.DepthPerLane*e.Lane, remaining)

	floor := e.Floor()
	candidates := make([]trace.CandidateScore, 0, sim.FloorCount-1)
	for f := 0; f < sim.FloorCount; f++ {
		if f != floor {
			candidates = append(candidates, trace.CandidateScore{Floor: f})
		}
	}

	if cfg.Workers > 1 {
		var wg sync.WaitGroup
		sem := make(chan struct{}, cfg.Workers)
		for i := range candidates {
			wg.Add(1)
			sem <- struct{}{}
			go func(c *trace.CandidateScore) {
				defer wg.Done()
				defer func() { <-sem }()
				s.evaluate(e, c, depth, coef)
			}(&candidates[i])
		}
		wg.Wait()
	} else {
		for i := range candidates {
			s.evaluate(e, &candidates[i], depth, coef)
		}
	}

	chosen := -1
	best := math.Inf(-1)
	for _, c := range candidates {
		if c.Score > best {
			best = c.Score
			chosen = c.Floor
		}
	}
	if chosen == -1 {
		return
	}

	previous := e.NextFloor
	e.GoToFloor = chosen
	logrus.Debugf("[tick %07d] %s elevator %d rollout: %d -> %d (score %.0f, depth %d)",
		w.Tick, e.Side, e.ID, previous, chosen, best, depth)

	if s.Trace.Enabled() {
		ranked, regret := trace.RankCandidates(chosen, candidates, s.Trace.Config.TopK)
		s.Trace.RecordDecision(trace.DecisionRecord{
			Tick:       w.Tick,
			ElevatorID: e.ID,
			Side:       e.Side.String(),
			Lane:       e.Lane,
			Depth:      depth,
			Previous:   previous,
			Chosen:     chosen,
			Candidates: ranked,
			Regret:     regret,
		})
	}
}

// evaluate replays a copy of the strategy for depth ticks with e forced to
// c.Floor and stores the resulting score in c. It only reads s.
func (s *Strategy) evaluate(e *sim.Elevator, c *trace.CandidateScore, depth int, coef float64) {
	cfg := &s.Config.Rollout

	replay := s.Clone()
	replay.replay = true
	for i := range replay.Lanes {
		replay.Lanes[i].Rollouts = false
	}
	re := &replay.Sim.Elevators[e.ID]
	re.GoToFloor = c.Floor

	for t := 0; t < depth; t++ {
		replay.MakeMove()
		replay.Sim.Step()
	}

	points := replay.sideValue(s.Side, coef) - replay.sideValue(s.Side.Opposite(), coef)

	unloaded := 0
	for i := 0; i < e.Passengers.Len(); i++ {
		if !re.Passengers.Contains(e.Passengers.At(i)) {
			unloaded++
		}
	}
	c.Unloaded = unloaded

	if c.Floor == 0 && unloaded < cfg.HomeFloorMinExits {
		points -= cfg.HomeFloorPenalty
	}
	if c.Floor == e.NextFloor {
		points += cfg.KeepFloorBonus
	}
	for i := range s.Sim.Elevators {
		o := &s.Sim.Elevators[i]
		if o.ID != e.ID && o.Side == e.Side && o.Lane < e.Lane && o.State == sim.ElevatorMoving && o.NextFloor == c.Floor {
			points -= cfg.SameFloorPenalty
		}
	}
	c.Score = float64(points)
}

// sideValue is the projected standing of side: score, delivered passengers and
// the discounted cargo still aboard. Truncated to whole points.
func (s *Strategy) sideValue(side sim.Side, coef float64) int {
	cfg := &s.Config.Rollout
	w := s.Sim
	cargo := w.TotalCargoValue(side, s.valuation)
	return int(float64(w.Scores[side]) +
		float64(w.Delivered[side])*cfg.DeliveredWeight +
		cargo.Points*cfg.CargoWeight*coef)
}
