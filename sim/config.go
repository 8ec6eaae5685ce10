package sim

// World geometry and timing. These are fixed by the game rules.
const (
	FloorCount       = 9 // floors 0..8
	ElevatorsPerSide = 4
	ElevatorCount    = 2 * ElevatorsPerSide
	MaxPassengers    = 20 // elevator capacity
	MaxItinerary     = 4  // pre-planned floors after the current destination

	MinFillingTicks = 40  // minimum open-door dwell before doors may close
	OpeningTicks    = 100 // doors opening duration
	ClosingTicks    = 100 // doors closing duration

	PassengerPatience = 500 // initial time_to_away
	PassengerStep     = 2.0 // horizontal walking speed per tick
	SpawnX            = 20.0

	SpawnInterval   = 20
	SpawnCutoffTick = 1979
	GameTicks       = 7200

	// ExitReentryDelay is the delay between a delivery and the passenger's next
	// appearance: the despawn countdown plus the opposite side's door dwell.
	ExitReentryDelay   = PassengerPatience + MinFillingTicks - 1
	GiveUpReentryDelay = PassengerPatience

	// CrossSideDwellTicks is how long an opposite-side elevator must have been open
	// before it may take a passenger.
	CrossSideDwellTicks = 40

	baseSpeed            = 1.0 / 50.0
	heavyLoadPassengers  = 10
	heavyLoadSpeedFactor = 0.5
	descentTicksPerFloor = 50.0
)

// Side identifies one of the two competing controllers.
type Side int

const (
	Left Side = iota
	Right
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Left {
		return Right
	}
	return Left
}

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// ValidFloor reports whether f is a floor index of the building.
func ValidFloor(f int) bool {
	return f >= 0 && f < FloorCount
}

// FloorSet is a bit-set over floor indices.
type FloorSet uint16

// Has reports whether floor f is in the set.
func (s FloorSet) Has(f int) bool {
	return s&(1<<uint(f)) != 0
}

// With returns the set with floor f added.
func (s FloorSet) With(f int) FloorSet {
	return s | 1<<uint(f)
}

// Count returns the number of floors in the set.
func (s FloorSet) Count() int {
	n := 0
	for f := 0; f < FloorCount; f++ {
		if s.Has(f) {
			n++
		}
	}
	return n
}

// ElevatorSet is a bit-set over elevator ids, used for invitations.
type ElevatorSet uint8

// Has reports whether elevator id is in the set.
func (s ElevatorSet) Has(id int) bool {
	return s&(1<<uint(id)) != 0
}

// With returns the set with elevator id added.
func (s ElevatorSet) With(id int) ElevatorSet {
	return s | 1<<uint(id)
}

// Empty reports whether no elevator is in the set.
func (s ElevatorSet) Empty() bool {
	return s == 0
}
