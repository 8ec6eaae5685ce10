// sim/simulator.go
package sim

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// Simulator is the core object that holds the clock, every entity and the RNG.
// It is the single owner of Passenger and Elevator records; other code refers to
// them by id. All fields are values or slices of values, so Clone is cheap.
type Simulator struct {
	// Tick starts at -1 and is incremented once per Step.
	Tick int
	// Passengers active in the building, sorted by ID. Iteration in ascending id
	// order is the engine's deterministic processing order.
	Passengers []Passenger
	Elevators  [ElevatorCount]Elevator
	// Out holds passengers between a drop-off (or give-up) and their next appearance.
	Out OutQueue

	Scores         [2]int // cumulative score per side
	Delivered      [2]int // passengers delivered per side
	ElevatorScores [ElevatorCount]int

	Random Random

	passengerSeq int
	diagnostics  Diagnostics
}

// NewSimulator builds the world of a game: the eight elevators and the first
// passenger pair, drawn from the world subsystem of key.
func NewSimulator(key SimulationKey) *Simulator {
	return NewSimulatorWithRandom(NewPartitionedRNG(key).ForSubsystem(SubsystemWorld))
}

// NewSimulatorWithRandom is NewSimulator with an explicit generator state.
func NewSimulatorWithRandom(rng Random) *Simulator {
	s := &Simulator{
		Tick:       -1,
		Passengers: make([]Passenger, 0, 256),
		Random:     rng,
	}
	for i := range s.Elevators {
		s.Elevators[i] = newElevator(i)
	}
	s.spawnPassengers()
	return s
}

// NewEmptySimulator builds the elevators without spawning anyone. Useful for
// hand-built scenarios.
func NewEmptySimulator(rng Random) *Simulator {
	s := &Simulator{
		Tick:       -1,
		Passengers: make([]Passenger, 0, 32),
		Random:     rng,
	}
	for i := range s.Elevators {
		s.Elevators[i] = newElevator(i)
	}
	return s
}

// Clone returns a fully independent copy of the world.
func (sim *Simulator) Clone() *Simulator {
	c := *sim
	c.Passengers = make([]Passenger, len(sim.Passengers), cap(sim.Passengers))
	copy(c.Passengers, sim.Passengers)
	c.Out = sim.Out.Clone()
	return &c
}

// PassengerIndex returns the index of passenger id in Passengers, or -1.
func (sim *Simulator) PassengerIndex(id int) int {
	i := sort.Search(len(sim.Passengers), func(i int) bool { return sim.Passengers[i].ID >= id })
	if i < len(sim.Passengers) && sim.Passengers[i].ID == id {
		return i
	}
	return -1
}

// Passenger returns the active passenger with the given id, or nil.
// The pointer is invalidated by the next Step or insertion.
func (sim *Simulator) Passenger(id int) *Passenger {
	if i := sim.PassengerIndex(id); i >= 0 {
		return &sim.Passengers[i]
	}
	return nil
}

// NewPassenger returns a passenger of side waiting on floor with destination
// dest, with default mass and patience. The id is assigned on insertion.
func NewPassenger(side Side, floor, dest int) Passenger {
	x := -SpawnX
	if side == Right {
		x = SpawnX
	}
	return Passenger{
		Side:          side,
		SpawnX:        x,
		X:             x,
		Y:             float64(floor),
		FromFloor:     floor,
		DestFloor:     dest,
		DestConfirmed: true,
		Visited:       FloorSet(0).With(0).With(floor),
		TimeToAway:    PassengerPatience,
		Mass:          1.01,
		State:         WaitingForElevator,
		Elevator:      -1,
	}
}

// InsertPassenger adds p to the active set. A zero ID takes the next id from the
// sequence. Returns the id used.
func (sim *Simulator) InsertPassenger(p Passenger) (int, error) {
	if !ValidFloor(p.Floor()) || !ValidFloor(p.FromFloor) || !ValidFloor(p.DestFloor) {
		return 0, fmt.Errorf("passenger floors out of range: floor=%d from=%d dest=%d", p.Floor(), p.FromFloor, p.DestFloor)
	}
	if p.Elevator < -1 || p.Elevator >= ElevatorCount {
		return 0, fmt.Errorf("passenger elevator %d out of range", p.Elevator)
	}
	for i := 0; i < p.ItineraryLen; i++ {
		if !ValidFloor(p.Itinerary[i]) {
			return 0, fmt.Errorf("itinerary floor %d out of range", p.Itinerary[i])
		}
	}
	if p.ID == 0 {
		sim.passengerSeq++
		p.ID = sim.passengerSeq
	} else if p.ID < 0 {
		return 0, fmt.Errorf("passenger id must be positive, got %d", p.ID)
	} else if sim.PassengerIndex(p.ID) >= 0 {
		return 0, fmt.Errorf("passenger %d already registered", p.ID)
	}
	sim.passengerSeq = max(sim.passengerSeq, p.ID)
	sim.insertSorted(p)
	return p.ID, nil
}

// Invite proposes elevator elevatorID to passenger passengerID for this tick.
func (sim *Simulator) Invite(passengerID, elevatorID int) error {
	if elevatorID < 0 || elevatorID >= ElevatorCount {
		return fmt.Errorf("elevator %d out of range", elevatorID)
	}
	p := sim.Passenger(passengerID)
	if p == nil {
		return fmt.Errorf("passenger %d not found", passengerID)
	}
	p.Invitations = p.Invitations.With(elevatorID)
	return nil
}

// Command sets the one-tick go-to-floor command of an elevator.
func (sim *Simulator) Command(elevatorID, floor int) error {
	if elevatorID < 0 || elevatorID >= ElevatorCount {
		return fmt.Errorf("elevator %d out of range", elevatorID)
	}
	if floor != -1 && !ValidFloor(floor) {
		return fmt.Errorf("floor %d out of range [0, %d]", floor, FloorCount-1)
	}
	sim.Elevators[elevatorID].GoToFloor = floor
	return nil
}

// Step advances the world by one tick. The phase order is fixed:
// commands, invitations, elevators, passengers (with re-entry), spawns.
func (sim *Simulator) Step() {
	sim.Tick++

	sim.applyCommands()
	sim.resolveInvitations()
	for i := range sim.Elevators {
		sim.stepElevator(&sim.Elevators[i])
	}
	sim.stepPassengers()

	if sim.Tick%SpawnInterval == SpawnInterval-1 && sim.Tick <= SpawnCutoffTick {
		sim.spawnPassengers()
	}
}

// applyCommands latches go-to-floor commands of non-moving elevators and resets
// every command field.
func (sim *Simulator) applyCommands() {
	for i := range sim.Elevators {
		e := &sim.Elevators[i]
		if e.State != ElevatorMoving && e.GoToFloor != -1 {
			if ValidFloor(e.GoToFloor) {
				e.NextFloor = e.GoToFloor
			} else {
				sim.diagnose(DiagInvalidCommand, "elevator %d commanded to floor %d", e.ID, e.GoToFloor)
			}
		}
		e.GoToFloor = -1
	}
}

// resolveInvitations picks at most one elevator per passenger among the invited
// ones: FILLING, on the passenger's floor, not full and, for the opposite side,
// open long enough. The nearest by x wins; ties keep the lower elevator id.
// Invitations are cleared for everyone.
func (sim *Simulator) resolveInvitations() {
	for i := range sim.Passengers {
		p := &sim.Passengers[i]
		if p.Elevator == -1 && !p.Invitations.Empty() && p.onFloor() {
			dist := 1e10
			for id := 0; id < ElevatorCount; id++ {
				if !p.Invitations.Has(id) {
					continue
				}
				e := &sim.Elevators[id]
				if e.State != ElevatorFilling || e.Floor() != p.Floor() || e.Passengers.Full() {
					continue
				}
				if e.Side != p.Side && e.DoorsOpenTicks <= CrossSideDwellTicks {
					continue
				}
				if d := absf(e.X - p.X); d < dist {
					dist = d
					p.Elevator = id
				}
			}
		}
		p.Invitations = 0
	}
}

// stepPassengers advances every passenger, then compacts away the ones that
// left and lets due passengers re-enter.
func (sim *Simulator) stepPassengers() {
	removed := 0
	for i := range sim.Passengers {
		if !sim.stepPassenger(&sim.Passengers[i]) {
			sim.Passengers[i].State = Out
			removed++
		}
	}
	if removed > 0 {
		kept := sim.Passengers[:0]
		for _, p := range sim.Passengers {
			if p.State != Out {
				kept = append(kept, p)
			}
		}
		sim.Passengers = kept
	}

	for {
		entry, ok := sim.Out.PopDue(sim.Tick)
		if !ok {
			break
		}
		p := entry.Passenger
		if sim.PassengerIndex(p.ID) >= 0 {
			sim.diagnose(DiagAlreadyRegistered, "passenger %d re-entered while active", p.ID)
			continue
		}
		p.State = WaitingForElevator
		p.X = p.SpawnX
		p.DestFloor = p.NextDestination()
		p.DestConfirmed = false
		p.FromFloor = p.Floor()
		p.TimeToAway = PassengerPatience
		p.Elevator = -1
		p.Invitations = 0
		sim.insertSorted(p)
	}
}

// stepPassenger advances one passenger by one tick. It reports false when the
// passenger leaves the active set.
func (sim *Simulator) stepPassenger(p *Passenger) bool {
	var e *Elevator
	if p.Elevator != -1 {
		e = &sim.Elevators[p.Elevator]
	}

	if p.State != UsingElevator && p.State != MovingToFloor {
		p.TimeToAway--
	}

	if p.TimeToAway < 0 {
		sim.giveUp(p)
		return false
	}

	if e == nil && (p.State == MovingToElevator || p.State == UsingElevator) {
		sim.diagnose(DiagMissingPassenger, "passenger %d is %s without an elevator", p.ID, p.State)
		p.State = Returning
	}

	switch p.State {
	case WaitingForElevator:
		if e != nil {
			p.State = MovingToElevator
		}
	case MovingToElevator:
		switch {
		case e.Floor() != p.Floor() || e.State != ElevatorFilling:
			p.State = Returning
			p.Elevator = -1
		case p.X == e.X:
			if e.Passengers.Add(p.ID) {
				p.State = UsingElevator
			} else {
				p.State = Returning
				p.Elevator = -1
			}
		default:
			p.X = clamp(e.X, p.X-PassengerStep, p.X+PassengerStep)
		}
	case Returning:
		if p.X == p.SpawnX {
			p.State = WaitingForElevator
		} else {
			p.X = clamp(p.SpawnX, p.X-PassengerStep, p.X+PassengerStep)
		}
	case UsingElevator:
		p.Y = e.Y
		if e.State == ElevatorFilling && e.DoorsOpenTicks == 1 && float64(p.DestFloor) == p.Y {
			sim.deliver(p, e)
			return false
		}
	}
	return true
}

// giveUp sends a passenger that ran out of patience to its destination on foot.
// Without a destination it leaves for good.
func (sim *Simulator) giveUp(p *Passenger) {
	if p.DestFloor <= 0 {
		logrus.Debugf("[tick %07d] passenger %d left the building", sim.Tick, p.ID)
		return
	}
	p.Ticks = sim.Tick
	p.State = MovingToFloor
	if p.Side == Left {
		p.X = -400 - float64(p.DestFloor)*10
	} else {
		p.X = 400 + float64(p.DestFloor)*10
	}
	p.TimeToAway = PassengerPatience
	p.Elevator = -1

	walk := abs(p.DestFloor-p.FromFloor) * 100
	if p.DestFloor > p.FromFloor {
		walk *= 2
	}
	p.Y = float64(p.DestFloor)
	p.Visited = p.Visited.With(p.DestFloor)
	sim.Out.Push(sim.Tick+walk+GiveUpReentryDelay, *p)
}

// deliver scores a passenger leaving elevator e at its destination.
func (sim *Simulator) deliver(p *Passenger, e *Elevator) {
	p.Elevator = -1
	p.State = Exiting
	p.Ticks = sim.Tick
	e.Passengers.Remove(p.ID)

	score := p.Value(e.Side)
	sim.Scores[e.Side] += score
	sim.ElevatorScores[e.ID] += score
	sim.Delivered[e.Side]++
	logrus.Debugf("[tick %07d] passenger %d delivered to floor %d by elevator %d (+%d)", sim.Tick, p.ID, p.DestFloor, e.ID, score)

	if p.DestFloor > 0 {
		p.Visited = p.Visited.With(p.DestFloor)
		if c := p.Visited.Count(); c > MaxItinerary+2 {
			sim.diagnose(DiagVisitedRange, "passenger %d visited %d floors", p.ID, c)
		}
		sim.Out.Push(sim.Tick+ExitReentryDelay, *p)
	}
}

// spawnPassengers creates a pair of passengers on floor 0, one per side, sharing
// an itinerary and a mass.
func (sim *Simulator) spawnPassengers() {
	places := sim.Random.Intn(MaxItinerary+1) + 1
	visited := FloorSet(0).With(0)
	floors := sim.Random.PickFloors(places, visited)
	mass := 1.01 + float64(sim.Random.Intn(20000))/1000000.0

	for _, side := range [...]Side{Left, Right} {
		p := NewPassenger(side, 0, floors[len(floors)-1])
		sim.passengerSeq++
		p.ID = sim.passengerSeq
		p.Visited = visited
		p.Mass = mass
		// Stored so that the floor picked just before the destination is visited next.
		p.ItineraryLen = len(floors) - 1
		copy(p.Itinerary[:], floors[:len(floors)-1])
		sim.insertSorted(p)
	}
	logrus.Debugf("[tick %07d] spawned passengers %d-%d to floor %d", sim.Tick, sim.passengerSeq-1, sim.passengerSeq, floors[len(floors)-1])
}

// insertSorted inserts p keeping Passengers ordered by id.
func (sim *Simulator) insertSorted(p Passenger) {
	i := sort.Search(len(sim.Passengers), func(i int) bool { return sim.Passengers[i].ID >= p.ID })
	sim.Passengers = append(sim.Passengers, Passenger{})
	copy(sim.Passengers[i+1:], sim.Passengers[i:])
	sim.Passengers[i] = p
}

// PassengerSeq returns the last passenger id handed out.
func (sim *Simulator) PassengerSeq() int {
	return sim.passengerSeq
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
