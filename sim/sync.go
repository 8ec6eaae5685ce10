package sim

// SynchronizeWith pulls the externally visible state of auth into this mirror.
// Private fields the authority cannot know (itineraries the mirror invented,
// door counters) are kept. Passengers seen for the first time get an itinerary
// drawn from the mirror's own generator. Elevator state disagreements on the
// own side are counted as diagnostics.
func (sim *Simulator) SynchronizeWith(auth *Simulator, own Side) {
	sim.Tick = auth.Tick
	sim.Scores = auth.Scores
	sim.Delivered = auth.Delivered
	sim.ElevatorScores = auth.ElevatorScores
	sim.passengerSeq = max(sim.passengerSeq, auth.passengerSeq)

	merged := make([]Passenger, 0, max(len(auth.Passengers), cap(sim.Passengers)))
	j := 0
	for i := range auth.Passengers {
		ap := &auth.Passengers[i]
		for j < len(sim.Passengers) && sim.Passengers[j].ID < ap.ID {
			j++ // absent from the authority: dropped
		}

		var p Passenger
		if j < len(sim.Passengers) && sim.Passengers[j].ID == ap.ID {
			p = sim.Passengers[j]
		} else if parked, ok := sim.Out.Remove(ap.ID); ok {
			p = parked
		} else {
			p = sim.registerPassenger(ap)
		}

		p.X = ap.X
		p.Y = ap.Y
		p.FromFloor = ap.FromFloor
		p.DestFloor = ap.DestFloor
		p.DestConfirmed = true
		p.TimeToAway = ap.TimeToAway
		p.Ticks = ap.Ticks
		p.Elevator = ap.Elevator
		p.State = ap.State
		p.Mass = ap.Mass
		p.Visited |= ap.Visited
		p.Invitations = 0
		merged = append(merged, p)
	}
	sim.Passengers = merged

	for i := range auth.Elevators {
		a := &auth.Elevators[i]
		e := &sim.Elevators[i]
		e.X = a.X
		e.Y = a.Y
		e.NextFloor = a.NextFloor
		e.Passengers = a.Passengers
		if a.State == ElevatorFilling && e.State != ElevatorFilling {
			e.DoorsOpenTicks = 0
		}
		if a.State != e.State {
			if e.Side == own {
				sim.diagnose(DiagStateMismatch, "elevator %d predicted %s, authority reports %s", e.ID, e.State, a.State)
			}
			wasClosing := e.State == ElevatorClosing
			e.setState(a.State, sim)
			if a.State == ElevatorMoving && !wasClosing {
				e.TimeToFloor = remainingTravel(e.Y, e.NextFloor, a.Speed)
			}
		}
		e.Speed = a.Speed
		e.NextFloor = a.NextFloor // transitions above may have reset it
	}
}

// registerPassenger builds the mirror's record of a passenger it has never seen.
// The remaining itinerary length is estimated from the floors already visited.
func (sim *Simulator) registerPassenger(ap *Passenger) Passenger {
	p := Passenger{
		ID:       ap.ID,
		Side:     ap.Side,
		SpawnX:   ap.SpawnX,
		Visited:  ap.Visited.With(0),
		Elevator: -1,
	}
	remaining := MaxItinerary + 1 - p.Visited.Count()
	if remaining < 0 || remaining > MaxItinerary {
		sim.diagnose(DiagVisitedRange, "passenger %d has %d visited floors", p.ID, p.Visited.Count())
		remaining = max(0, min(remaining, MaxItinerary))
	}
	if remaining > 0 {
		floors := sim.Random.PickFloors(remaining, p.Visited.With(ap.DestFloor))
		p.ItineraryLen = copy(p.Itinerary[:], floors)
	}
	return p
}

// CopyCommandsFrom pushes the commands side wrote into mirror onto this
// authoritative world: go-to-floor of side's elevators and invitations onto
// side's elevators. State fields are never copied.
func (sim *Simulator) CopyCommandsFrom(mirror *Simulator, side Side) {
	var own ElevatorSet
	for i := range mirror.Elevators {
		e := &mirror.Elevators[i]
		if e.Side != side {
			continue
		}
		own = own.With(e.ID)
		sim.Elevators[i].GoToFloor = e.GoToFloor
	}

	for i := range mirror.Passengers {
		mp := &mirror.Passengers[i]
		invited := mp.Invitations & own
		if invited.Empty() {
			continue
		}
		p := sim.Passenger(mp.ID)
		if p == nil {
			sim.diagnose(DiagUnknownPassenger, "%s side invited unknown passenger %d", side, mp.ID)
			continue
		}
		p.Invitations |= invited
	}
}

// remainingTravel estimates the ticks left for a trip already under way.
func remainingTravel(y float64, floor int, speed float64) float64 {
	if float64(floor) > y {
		return (float64(floor) - y) / speed
	}
	return (y - float64(floor)) * descentTicksPerFloor
}
