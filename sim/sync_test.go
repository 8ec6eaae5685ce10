package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynchronizeWith_CopiesVisibleState(t *testing.T) {
	// GIVEN an authority some ticks into a game and a fresh mirror
	auth := NewSimulator(42)
	stepN(auth, 300)
	auth.Scores = [2]int{70, 40}
	mirror := NewSimulatorWithRandom(NewPartitionedRNG(42).ForSubsystem(SubsystemLeft))

	// WHEN the mirror synchronizes
	mirror.SynchronizeWith(auth, Left)

	// THEN clock, scores and every visible passenger field match
	assert.Equal(t, auth.Tick, mirror.Tick)
	assert.Equal(t, auth.Scores, mirror.Scores)
	assert.Equal(t, auth.PassengerSeq(), mirror.PassengerSeq())
	require.Len(t, mirror.Passengers, len(auth.Passengers))
	for i := range auth.Passengers {
		a, m := auth.Passengers[i], mirror.Passengers[i]
		assert.Equal(t, a.ID, m.ID)
		assert.Equal(t, a.X, m.X)
		assert.Equal(t, a.Y, m.Y)
		assert.Equal(t, a.DestFloor, m.DestFloor)
		assert.Equal(t, a.State, m.State)
		assert.Equal(t, a.TimeToAway, m.TimeToAway)
		assert.True(t, m.DestConfirmed)
		assert.Equal(t, a.Visited, a.Visited&m.Visited, "mirror knows every visited floor")
	}
	for i := range auth.Elevators {
		assert.Equal(t, auth.Elevators[i].Y, mirror.Elevators[i].Y)
		assert.Equal(t, auth.Elevators[i].State, mirror.Elevators[i].State)
	}
}

func TestSynchronizeWith_InventsItineraryForNewPassengers(t *testing.T) {
	// GIVEN a passenger the mirror has never seen, with three floors visited
	auth := quietWorld()
	p := NewPassenger(Right, 2, 6)
	p.Visited = p.Visited.With(4)
	p.SetItinerary([]int{1})
	id, err := auth.InsertPassenger(p)
	require.NoError(t, err)
	mirror := NewEmptySimulator(NewPartitionedRNG(1).ForSubsystem(SubsystemRight))

	// WHEN the mirror synchronizes
	mirror.SynchronizeWith(auth, Right)

	// THEN it guesses the remaining stops from the visited count
	m := mirror.Passenger(id)
	require.NotNil(t, m)
	assert.Equal(t, 2, m.ItineraryLen)
	seen := m.Visited.With(m.DestFloor)
	for _, f := range m.RemainingItinerary() {
		assert.False(t, seen.Has(f), "floor %d repeats a known stop", f)
		seen = seen.With(f)
	}
	assert.Equal(t, p.SpawnX, m.SpawnX)
	assert.Equal(t, Right, m.Side)
	d := mirror.Diagnostics()
	assert.Equal(t, 0, d.Total())
}

func TestSynchronizeWith_KeepsMirrorItinerary(t *testing.T) {
	auth := quietWorld()
	id := addWaiting(t, auth, Left, 0, 3)
	mirror := auth.Clone()
	mirror.Passenger(id).SetItinerary([]int{7, 5})

	stepN(auth, 3)
	mirror.SynchronizeWith(auth, Left)

	assert.Equal(t, []int{7, 5}, mirror.Passenger(id).RemainingItinerary())
	assert.Equal(t, auth.Passenger(id).TimeToAway, mirror.Passenger(id).TimeToAway)
}

func TestSynchronizeWith_ReclaimsParkedPassenger(t *testing.T) {
	// GIVEN a mirror that parked a passenger the authority already shows again
	auth := quietWorld()
	id := addWaiting(t, auth, Left, 4, 0)
	mirror := NewEmptySimulator(NewRandom())
	p := *auth.Passenger(id)
	p.SetItinerary([]int{2})
	mirror.Out.Push(auth.Tick+100, p)

	// WHEN it synchronizes
	mirror.SynchronizeWith(auth, Left)

	// THEN the parked record is reused
	assert.Equal(t, 0, mirror.Out.Len())
	require.NotNil(t, mirror.Passenger(id))
	assert.Equal(t, []int{2}, mirror.Passenger(id).RemainingItinerary())
}

func TestSynchronizeWith_DropsUnknownPassengers(t *testing.T) {
	auth := quietWorld()
	mirror := quietWorld()
	addWaiting(t, mirror, Left, 1, 3)

	mirror.SynchronizeWith(auth, Left)

	assert.Empty(t, mirror.Passengers)
}

func TestSynchronizeWith_VisitedRangeDiagnosed(t *testing.T) {
	auth := quietWorld()
	p := NewPassenger(Left, 1, 2)
	for f := 0; f < 7; f++ {
		p.Visited = p.Visited.With(f)
	}
	id, err := auth.InsertPassenger(p)
	require.NoError(t, err)
	mirror := NewEmptySimulator(NewRandom())

	mirror.SynchronizeWith(auth, Left)

	d := mirror.Diagnostics()
	assert.Equal(t, 1, d.Count(DiagVisitedRange))
	assert.Equal(t, 0, mirror.Passenger(id).ItineraryLen)
}

func TestSynchronizeWith_ElevatorStates(t *testing.T) {
	t.Run("own side mismatch is diagnosed", func(t *testing.T) {
		auth := quietWorld()
		mirror := quietWorld()
		auth.Elevators[0].State = ElevatorClosing
		auth.Elevators[0].NextFloor = 3
		auth.Elevators[4].State = ElevatorClosing
		auth.Elevators[4].NextFloor = 3

		mirror.SynchronizeWith(auth, Left)

		d := mirror.Diagnostics()
		assert.Equal(t, 1, d.Count(DiagStateMismatch))
		assert.Equal(t, ElevatorClosing, mirror.Elevators[0].State)
		assert.Equal(t, ElevatorClosing, mirror.Elevators[4].State)
		assert.Equal(t, 3, mirror.Elevators[4].NextFloor)
	})

	t.Run("trip already under way", func(t *testing.T) {
		auth := quietWorld()
		mirror := quietWorld()
		a := &auth.Elevators[1]
		a.State = ElevatorMoving
		a.Y = 1.5
		a.NextFloor = 4
		a.Speed = baseSpeed

		mirror.SynchronizeWith(auth, Right)

		e := &mirror.Elevators[1]
		assert.Equal(t, ElevatorMoving, e.State)
		assert.InDelta(t, 2.5/baseSpeed, e.TimeToFloor, 1e-6)
		assert.Equal(t, baseSpeed, e.Speed)
	})

	t.Run("doors reopened resets dwell", func(t *testing.T) {
		auth := quietWorld()
		mirror := quietWorld()
		openAt(auth, 2, 5, 3)
		m := &mirror.Elevators[2]
		m.State = ElevatorOpening
		m.DoorsOpenTicks = 77

		mirror.SynchronizeWith(auth, Right)

		assert.Equal(t, ElevatorFilling, m.State)
		assert.Equal(t, 0, m.DoorsOpenTicks)
		assert.Equal(t, 5.0, m.Y)
		assert.Equal(t, -1, m.NextFloor)
	})
}

func TestCopyCommandsFrom_OnlyOwnSide(t *testing.T) {
	// GIVEN a mirror where the left side commanded and invited
	auth := quietWorld()
	id := addWaiting(t, auth, Left, 0, 3)
	mirror := auth.Clone()
	mirror.Elevators[0].GoToFloor = 3
	mirror.Elevators[5].GoToFloor = 6
	mirror.Passenger(id).Invitations = ElevatorSet(0).With(0).With(5)

	// WHEN commands are copied for the left side
	auth.CopyCommandsFrom(mirror, Left)

	// THEN only left elevators are affected
	assert.Equal(t, 3, auth.Elevators[0].GoToFloor)
	assert.Equal(t, -1, auth.Elevators[5].GoToFloor)
	assert.Equal(t, ElevatorSet(0).With(0), auth.Passenger(id).Invitations)
	assert.Equal(t, NewPassenger(Left, 0, 3).X, auth.Passenger(id).X, "state is not copied")
}

func TestCopyCommandsFrom_UnknownPassenger(t *testing.T) {
	auth := quietWorld()
	mirror := quietWorld()
	id := addWaiting(t, mirror, Right, 0, 2)
	mirror.Passenger(id).Invitations = ElevatorSet(0).With(6)

	auth.CopyCommandsFrom(mirror, Right)

	d := auth.Diagnostics()
	assert.Equal(t, 1, d.Count(DiagUnknownPassenger))
}
