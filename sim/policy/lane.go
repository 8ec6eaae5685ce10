package policy

import (
	"sort"

	"github.com/elevator-sim/elevator-sim/sim"
)

// Direction is the sweep direction of a lane.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// Lane is the controller of one elevator. It is a plain value so that a
// Strategy can be duplicated for a replay.
type Lane struct {
	Index            int // lane index 0..3 within the side
	Dir              Direction
	DirChanges       int
	FirstMoveMinDest int
	// Rollouts enables the look-ahead decision when the doors are about to close.
	Rollouts bool
}

// MakeMove writes this tick's commands for elevator e into the strategy's mirror.
func (l *Lane) MakeMove(s *Strategy, e *sim.Elevator) {
	old := l.Dir
	l.makeMove(s, e)
	if old != l.Dir {
		l.DirChanges++
	}
}

func (l *Lane) makeMove(s *Strategy, e *sim.Elevator) {
	w := s.Sim
	cfg := &s.Config
	floor := e.Floor()

	if l.Dir == Up && floor == sim.FloorCount-1 {
		l.Dir = Down
	} else if l.Dir == Down && floor == 0 {
		l.Dir = Up
	}

	if l.Rollouts && e.State == sim.ElevatorClosing && e.DoorTicks == cfg.Rollout.TriggerDoorTicks {
		s.decide(e)
		return
	}

	if e.State != sim.ElevatorFilling {
		return
	}

	value := w.CargoValue(e)

	if e.Passengers.Full() && e.DoorsOpenTicks >= sim.MinFillingTicks {
		l.goTo(e, BestDestination(w, e, floor, cfg.DestinationDistanceWeight))
	}

	count := l.invite(s, e)
	if w.Tick < cfg.OpeningPhaseTicks && floor == 0 {
		count++
	}

	if count == 0 {
		count = l.expectedArrivals(s, e, value)
	}

	dest := BestDestination(w, e, floor, cfg.DestinationDistanceWeight)

	switch {
	case count == 0 && e.DoorsOpenTicks >= sim.MinFillingTicks:
		if dest != floor {
			l.goTo(e, dest)
		} else if l.Dir == Up {
			l.goTo(e, floor+1)
		} else {
			l.goTo(e, floor-1)
		}
	case dest != floor && w.Tick > cfg.EndgameTick:
		perFloor := cfg.EndgameDescentTicks
		if dest > floor {
			perFloor = cfg.EndgameAscentTicks
		}
		if w.Tick+abs(dest-floor)*perFloor+cfg.EndgameDoorTicks >= cfg.GameTicks {
			l.goTo(e, dest)
		}
	}
}

// expectedArrivals counts passengers due to reappear on e's floor while it is
// still worth waiting. Returns 0 when the first of them comes too late.
func (l *Lane) expectedArrivals(s *Strategy, e *sim.Elevator, value sim.Value) int {
	w := s.Sim
	cfg := &s.Config
	floor := e.Floor()

	maxWait := cfg.MaxWaitTicks
	if e.DoorsOpenTicks >= sim.MinFillingTicks {
		maxWait -= max(0, e.Passengers.Len()-cfg.MaxWaitLoadThreshold) * cfg.MaxWaitLoadPenalty
	}
	wait := min(max(0, cfg.GameTicks-w.Tick-min(cfg.WaitBudgetCap, value.Ticks)), maxWait)

	count := 0
	first := -1
	for _, entry := range w.Out.Due(w.Tick + wait) {
		if entry.Passenger.Floor() != floor {
			continue
		}
		count++
		if first == -1 {
			first = entry.Tick
		}
	}
	if first > w.Tick+cfg.ReentryBaseTicks+count*cfg.ReentryPerPassengerTicks {
		return 0
	}
	return count
}

func (l *Lane) goTo(e *sim.Elevator, floor int) {
	if floor > e.Floor() {
		l.Dir = Up
	} else {
		l.Dir = Down
	}
	e.GoToFloor = floor
}

type inviteCandidate struct {
	index int
	value int
}

// invite proposes e to the most valuable passengers standing on its floor and
// returns how many passengers are expected to board, including those already
// walking to it.
func (l *Lane) invite(s *Strategy, e *sim.Elevator) int {
	w := s.Sim
	cfg := &s.Config
	floor := e.Floor()

	enemyCloser, anyCloser := false, false
	for i := range w.Elevators {
		o := &w.Elevators[i]
		if o.ID == e.ID || o.Lane > e.Lane || o.State != sim.ElevatorFilling || o.Floor() != floor {
			continue
		}
		anyCloser = true
		if o.Side != e.Side {
			enemyCloser = true
		}
	}

	count := 0
	candidates := make([]inviteCandidate, 0, 16)
	for i := range w.Passengers {
		p := &w.Passengers[i]
		if abs(p.DestFloor-p.FromFloor) <= cfg.MinTripFloors {
			continue
		}
		if floor == 0 && l.DirChanges == 0 && p.DestFloor <= l.FirstMoveMinDest && w.Tick < cfg.OpeningPhaseTicks {
			continue
		}
		if p.Floor() != floor {
			continue
		}
		switch p.State {
		case sim.WaitingForElevator, sim.Returning:
			candidates = append(candidates, inviteCandidate{index: i, value: p.Value(e.Side)})
		case sim.MovingToElevator:
			if p.Elevator == e.ID {
				count++
			}
		}
	}

	// Most valuable first; among equals the newest passenger first.
	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].value != candidates[b].value {
			return candidates[a].value > candidates[b].value
		}
		return candidates[a].index > candidates[b].index
	})

	limit := sim.MaxPassengers - e.Passengers.Len() - count
	if enemyCloser || (e.Lane == sim.ElevatorsPerSide-1 && anyCloser) {
		limit += cfg.InviteCapacityBoost
	}
	for _, c := range candidates {
		if limit <= 0 {
			break
		}
		if (limit <= 2 && c.value < cfg.InviteMinValue2) || (limit <= 4 && c.value < cfg.InviteMinValue4) {
			continue
		}
		p := &w.Passengers[c.index]
		p.Invitations = p.Invitations.With(e.ID)
		count++
		limit--
	}
	return count
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
