package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewElevator_Layout(t *testing.T) {
	tests := []struct {
		id   int
		side Side
		lane int
		x    float64
	}{
		{0, Left, 0, -60},
		{3, Left, 3, -300},
		{4, Right, 0, 60},
		{7, Right, 3, 300},
	}
	for _, tt := range tests {
		e := newElevator(tt.id)
		assert.Equal(t, tt.side, e.Side, "elevator %d", tt.id)
		assert.Equal(t, tt.lane, e.Lane, "elevator %d", tt.id)
		assert.Equal(t, tt.x, e.X, "elevator %d", tt.id)
		assert.Equal(t, ElevatorFilling, e.State)
		assert.Equal(t, -1, e.NextFloor)
		assert.Equal(t, -1, e.GoToFloor)
	}
}

func TestManifest_SortedAndBounded(t *testing.T) {
	var m Manifest
	for _, id := range []int{9, 3, 7} {
		require.True(t, m.Add(id))
	}
	assert.Equal(t, []int{3, 7, 9}, m.IDs())
	assert.False(t, m.Add(7), "duplicate id")
	assert.True(t, m.Contains(9))
	assert.Equal(t, 7, m.At(1))

	assert.True(t, m.Remove(3))
	assert.False(t, m.Remove(3))
	assert.Equal(t, []int{7, 9}, m.IDs())

	m.Clear()
	for id := 1; id <= MaxPassengers; id++ {
		require.True(t, m.Add(id))
	}
	assert.True(t, m.Full())
	assert.False(t, m.Add(100))
	assert.Equal(t, MaxPassengers, m.Len())
}

func TestTravelTicks(t *testing.T) {
	// Up is speed-limited, down costs a flat 50 ticks per floor.
	assert.InDelta(t, 150.0, travelTicks(0, 3, baseSpeed), 1e-9)
	assert.Equal(t, 150.0, travelTicks(5, 2, baseSpeed))
	assert.Equal(t, 0.0, travelTicks(4, 4, baseSpeed))
}

func TestTripSpeed(t *testing.T) {
	t.Run("empty elevator runs at base speed", func(t *testing.T) {
		s := quietWorld()
		assert.InDelta(t, baseSpeed, s.tripSpeed(&s.Elevators[0]), 1e-12)
	})

	t.Run("mass divides speed", func(t *testing.T) {
		s := quietWorld()
		id := addWaiting(t, s, Left, 0, 3)
		s.Elevators[0].Passengers.Add(id)
		assert.InDelta(t, baseSpeed/1.01, s.tripSpeed(&s.Elevators[0]), 1e-12)
	})

	t.Run("heavy load halves speed", func(t *testing.T) {
		s := quietWorld()
		for i := 0; i < heavyLoadPassengers+1; i++ {
			p := NewPassenger(Left, 0, 3)
			p.Mass = 1.0
			id, err := s.InsertPassenger(p)
			require.NoError(t, err)
			s.Elevators[0].Passengers.Add(id)
		}
		assert.InDelta(t, 0.01, s.tripSpeed(&s.Elevators[0]), 1e-12)
	})

	t.Run("unknown manifest entry is diagnosed", func(t *testing.T) {
		s := quietWorld()
		s.Elevators[0].Passengers.Add(42)
		assert.InDelta(t, baseSpeed, s.tripSpeed(&s.Elevators[0]), 1e-12)
		d := s.Diagnostics()
		assert.Equal(t, 1, d.Count(DiagMissingPassenger))
	})
}

func TestElevator_DoorCycle(t *testing.T) {
	// GIVEN an empty elevator open on floor 0
	s := quietWorld()
	e := &s.Elevators[0]

	// WHEN it is sent to floor 2
	require.NoError(t, s.Command(0, 2))

	// THEN it dwells, closes, travels and opens on the fixed schedule
	stepN(s, 39)
	assert.Equal(t, ElevatorFilling, e.State)
	assert.Equal(t, 2, e.NextFloor)

	stepN(s, 1) // 40
	assert.Equal(t, ElevatorClosing, e.State)

	stepN(s, 100) // 140
	assert.Equal(t, ElevatorClosing, e.State)
	stepN(s, 1) // 141
	assert.Equal(t, ElevatorMoving, e.State)
	assert.InDelta(t, baseSpeed, e.Speed, 1e-12)

	stepN(s, 99) // 240
	assert.Equal(t, ElevatorMoving, e.State)
	assert.Less(t, e.Y, 2.0)
	stepN(s, 1) // 241
	assert.Equal(t, ElevatorOpening, e.State)
	assert.Equal(t, 2.0, e.Y)

	stepN(s, 99) // 340
	assert.Equal(t, ElevatorOpening, e.State)
	stepN(s, 1) // 341
	assert.Equal(t, ElevatorFilling, e.State)
	assert.Equal(t, -1, e.NextFloor)
	assert.Equal(t, 0, e.DoorsOpenTicks)
	assert.Equal(t, 2, e.Floor())
}

func TestElevator_Descent(t *testing.T) {
	// GIVEN an elevator open on floor 3
	s := quietWorld()
	openAt(s, 1, 3, MinFillingTicks)
	require.NoError(t, s.Command(1, 1))

	// WHEN it travels two floors down
	ok := stepUntil(s, 1000, func() bool { return s.Elevators[1].State == ElevatorOpening })

	// THEN it arrives exactly on the floor
	require.True(t, ok)
	assert.Equal(t, 1.0, s.Elevators[1].Y)
}

func TestElevator_TravelTicksEstimate(t *testing.T) {
	s := quietWorld()
	e := &s.Elevators[2]
	e.Y = 4
	assert.Equal(t, 200.0, e.TravelTicks(0, s))
	assert.InDelta(t, 200.0, e.TravelTicks(8, s), 1e-9)
}

func TestElevatorState_String(t *testing.T) {
	assert.Equal(t, "CLOSING", ElevatorClosing.String())
	assert.Equal(t, "ElevatorState(9)", ElevatorState(9).String())
}
