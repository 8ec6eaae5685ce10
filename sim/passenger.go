// Defines the Passenger record that models one traveller in the building.
// Tracks position, itinerary, patience countdown and the elevator it targets.

package sim

import "fmt"

// PassengerState represents the lifecycle state of a passenger.
type PassengerState int

const (
	WaitingForElevator PassengerState = iota
	MovingToElevator
	Returning
	MovingToFloor
	UsingElevator
	Exiting
	Out
)

var passengerStateNames = [...]string{
	"WAITING_FOR_ELEVATOR",
	"MOVING_TO_ELEVATOR",
	"RETURNING",
	"MOVING_TO_FLOOR",
	"USING_ELEVATOR",
	"EXITING",
	"OUT",
}

func (s PassengerState) String() string {
	if s < 0 || int(s) >= len(passengerStateNames) {
		return fmt.Sprintf("PassengerState(%d)", int(s))
	}
	return passengerStateNames[s]
}

// Passenger is a value type: it holds no pointers, so copying it copies all of it.
type Passenger struct {
	ID     int  // unique, monotonically increasing, never reused
	Side   Side // side the passenger belongs to
	SpawnX float64

	X float64
	Y float64 // integer-valued while the passenger is on a floor

	FromFloor int
	DestFloor int
	// DestConfirmed is false while DestFloor is a placeholder the mirror invented
	// and the real destination has not been revealed yet.
	DestConfirmed bool

	// Itinerary holds the floors to visit after DestFloor. Floors are consumed
	// from the end: Itinerary[ItineraryLen-1] is next.
	Itinerary    [MaxItinerary]int
	ItineraryLen int
	Visited      FloorSet

	TimeToAway int // ticks left before giving up on waiting
	Ticks      int // tick of the last animated transition
	Mass       float64

	State       PassengerState
	Elevator    int         // elevator ridden or targeted, -1 if none
	Invitations ElevatorSet // elevators proposed by a policy this tick
}

// Floor returns the floor the passenger is on.
func (p *Passenger) Floor() int {
	return int(p.Y)
}

// Value returns the score the passenger is worth to an elevator of side mySide
// once delivered to its current destination.
func (p *Passenger) Value(mySide Side) int {
	v := abs(p.DestFloor-p.FromFloor) * 10
	if p.Side != mySide {
		v *= 2
	}
	return v
}

// NextDestination pops the next itinerary floor, or returns 0 (leave the
// building) once the itinerary is exhausted.
func (p *Passenger) NextDestination() int {
	if p.ItineraryLen > 0 {
		p.ItineraryLen--
		return p.Itinerary[p.ItineraryLen]
	}
	return 0
}

// SetItinerary replaces the remaining itinerary with floors given in visiting
// order, keeping at most MaxItinerary of them.
func (p *Passenger) SetItinerary(floors []int) {
	n := min(len(floors), MaxItinerary)
	p.ItineraryLen = n
	for i := 0; i < n; i++ {
		p.Itinerary[n-1-i] = floors[i]
	}
}

// RemainingItinerary returns a copy of the floors still to visit after DestFloor,
// in visiting order.
func (p *Passenger) RemainingItinerary() []int {
	out := make([]int, 0, p.ItineraryLen)
	for i := p.ItineraryLen - 1; i >= 0; i-- {
		out = append(out, p.Itinerary[i])
	}
	return out
}

// onFloor reports whether the passenger is standing on a floor rather than riding.
func (p *Passenger) onFloor() bool {
	return p.State == WaitingForElevator || p.State == Returning
}

// String returns a human-readable representation of a Passenger.
func (p Passenger) String() string {
	return fmt.Sprintf("Passenger: (ID: %d, Side: %s, State: %s, Floor: %d, Dest: %d, X: %.1f, TTA: %d)",
		p.ID, p.Side, p.State, p.Floor(), p.DestFloor, p.X, p.TimeToAway)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
