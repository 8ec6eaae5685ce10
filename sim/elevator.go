// Defines the Elevator record and its door/motion state machine.

package sim

import (
	"fmt"
	"sort"
)

// ElevatorState represents the state of an elevator's door/motion cycle.
type ElevatorState int

const (
	ElevatorWaiting ElevatorState = iota
	ElevatorMoving
	ElevatorOpening
	ElevatorFilling
	ElevatorClosing
)

var elevatorStateNames = [...]string{
	"WAITING",
	"MOVING",
	"OPENING",
	"FILLING",
	"CLOSING",
}

func (s ElevatorState) String() string {
	if s < 0 || int(s) >= len(elevatorStateNames) {
		return fmt.Sprintf("ElevatorState(%d)", int(s))
	}
	return elevatorStateNames[s]
}

// Manifest is the set of passenger ids aboard an elevator, kept in ascending order.
type Manifest struct {
	ids   [MaxPassengers]int
	count int
}

// Len returns the number of passengers aboard.
func (m *Manifest) Len() int {
	return m.count
}

// Full reports whether the elevator is at capacity.
func (m *Manifest) Full() bool {
	return m.count >= MaxPassengers
}

// Contains reports whether passenger id is aboard.
func (m *Manifest) Contains(id int) bool {
	i := m.search(id)
	return i < m.count && m.ids[i] == id
}

// Add inserts id, keeping the manifest sorted. It reports false if the
// manifest is full or already holds id.
func (m *Manifest) Add(id int) bool {
	i := m.search(id)
	if i < m.count && m.ids[i] == id {
		return false
	}
	if m.count >= MaxPassengers {
		return false
	}
	copy(m.ids[i+1:m.count+1], m.ids[i:m.count])
	m.ids[i] = id
	m.count++
	return true
}

// Remove deletes id if present.
func (m *Manifest) Remove(id int) bool {
	i := m.search(id)
	if i >= m.count || m.ids[i] != id {
		return false
	}
	copy(m.ids[i:m.count-1], m.ids[i+1:m.count])
	m.count--
	m.ids[m.count] = 0
	return true
}

// Clear empties the manifest.
func (m *Manifest) Clear() {
	*m = Manifest{}
}

// At returns the i-th aboard passenger id in ascending order.
func (m *Manifest) At(i int) int {
	return m.ids[i]
}

// IDs returns the aboard passenger ids in ascending order.
func (m *Manifest) IDs() []int {
	out := make([]int, m.count)
	copy(out, m.ids[:m.count])
	return out
}

func (m *Manifest) search(id int) int {
	return sort.SearchInts(m.ids[:m.count], id)
}

// Elevator is a value type: it holds no pointers.
type Elevator struct {
	ID   int
	Lane int // position 0..3 among its side's elevators
	Side Side

	X     float64 // fixed per elevator
	Y     float64 // continuous while moving
	Speed float64
	// TimeToFloor counts down the ticks left in the current trip.
	TimeToFloor float64

	DoorsOpenTicks int // time_on_the_floor_with_opened_doors
	DoorTicks      int // closing_or_opening_ticks

	Passengers Manifest

	NextFloor int // committed destination, -1 if none
	GoToFloor int // one-tick command input, -1 if none

	State ElevatorState
}

func newElevator(id int) Elevator {
	e := Elevator{
		ID:        id,
		NextFloor: -1,
		GoToFloor: -1,
		State:     ElevatorFilling,
	}
	if id < ElevatorsPerSide {
		e.Side = Left
		e.Lane = id
		e.X = -60 - float64(id)*80
	} else {
		e.Side = Right
		e.Lane = id - ElevatorsPerSide
		e.X = 60 + float64(e.Lane)*80
	}
	return e
}

// Floor returns the floor the elevator is on (rounded down while moving).
func (e *Elevator) Floor() int {
	return int(e.Y)
}

// setState performs a transition with its side effects. The transitions of the
// FSM are FILLING→CLOSING→MOVING→OPENING→FILLING; any other change (only
// produced by synchronization) just replaces the state.
func (e *Elevator) setState(state ElevatorState, sim *Simulator) {
	switch {
	case state == ElevatorClosing && e.State == ElevatorFilling:
		e.DoorTicks = 0
	case state == ElevatorOpening && e.State == ElevatorMoving:
		e.DoorTicks = 0
	case state == ElevatorFilling && e.State == ElevatorOpening:
		e.DoorsOpenTicks = 0
		e.NextFloor = -1
	case state == ElevatorMoving && e.State == ElevatorClosing:
		e.Speed = sim.tripSpeed(e)
		e.TimeToFloor = travelTicks(e.Floor(), e.NextFloor, e.Speed)
	}
	e.State = state
}

// TravelTicks estimates the ticks needed to reach floor if the doors closed now.
func (e *Elevator) TravelTicks(floor int, sim *Simulator) float64 {
	return travelTicks(e.Floor(), floor, sim.tripSpeed(e))
}

// travelTicks: going up is speed-limited, going down costs a fixed 50 ticks per floor.
func travelTicks(from, to int, speed float64) float64 {
	if to > from {
		return float64(to-from) / speed
	}
	return float64(from-to) * descentTicksPerFloor
}

// tripSpeed computes the ascent speed for the current manifest.
func (sim *Simulator) tripSpeed(e *Elevator) float64 {
	speed := baseSpeed
	if e.Passengers.Len() > heavyLoadPassengers {
		speed *= heavyLoadSpeedFactor
	}
	totalMass := 1.0
	for _, id := range e.Passengers.ids[:e.Passengers.count] {
		i := sim.PassengerIndex(id)
		if i < 0 {
			sim.diagnose(DiagMissingPassenger, "elevator %d manifest references passenger %d", e.ID, id)
			continue
		}
		totalMass *= sim.Passengers[i].Mass
	}
	return speed / totalMass
}

// stepElevator advances one elevator by one tick.
func (sim *Simulator) stepElevator(e *Elevator) {
	switch e.State {
	case ElevatorFilling:
		e.DoorsOpenTicks++
		if e.DoorsOpenTicks >= MinFillingTicks && e.NextFloor != -1 {
			e.setState(ElevatorClosing, sim)
		}
	case ElevatorClosing:
		e.DoorTicks++
		if e.DoorTicks > ClosingTicks {
			e.setState(ElevatorMoving, sim)
		}
	case ElevatorMoving:
		e.Y = clamp(float64(e.NextFloor), e.Y-1.0/descentTicksPerFloor, e.Y+e.Speed)
		e.TimeToFloor -= 1.0
		if e.TimeToFloor <= 1e-5 {
			e.Y = float64(e.NextFloor)
			e.setState(ElevatorOpening, sim)
		}
	case ElevatorOpening:
		e.DoorTicks++
		if e.DoorTicks >= OpeningTicks {
			e.setState(ElevatorFilling, sim)
		}
	}
}

// String returns a human-readable representation of an Elevator.
func (e Elevator) String() string {
	return fmt.Sprintf("Elevator: (ID: %d, Side: %s, State: %s, Y: %.3f, Next: %d, Aboard: %d)",
		e.ID, e.Side, e.State, e.Y, e.NextFloor, e.Passengers.Len())
}
