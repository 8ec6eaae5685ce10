package sim

import "testing"

// quietWorld returns an empty world whose clock is past the spawn window, so
// only hand-placed passengers take part.
func quietWorld() *Simulator {
	s := NewEmptySimulator(NewRandom())
	s.Tick = SpawnCutoffTick
	return s
}

// addWaiting inserts a passenger waiting at its side's spawn point.
func addWaiting(t *testing.T, s *Simulator, side Side, floor, dest int) int {
	t.Helper()
	id, err := s.InsertPassenger(NewPassenger(side, floor, dest))
	if err != nil {
		t.Fatalf("InsertPassenger: %v", err)
	}
	return id
}

// stepN advances the world n ticks.
func stepN(s *Simulator, n int) {
	for i := 0; i < n; i++ {
		s.Step()
	}
}

// stepUntil steps until cond holds, at most limit ticks. It reports whether
// cond was reached.
func stepUntil(s *Simulator, limit int, cond func() bool) bool {
	for i := 0; i < limit; i++ {
		s.Step()
		if cond() {
			return true
		}
	}
	return false
}

// openAt parks elevator id on floor with doors open for dwell ticks.
func openAt(s *Simulator, id, floor, dwell int) {
	e := &s.Elevators[id]
	e.Y = float64(floor)
	e.State = ElevatorFilling
	e.DoorsOpenTicks = dwell
	e.NextFloor = -1
}
