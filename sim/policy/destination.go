package policy

import "github.com/elevator-sim/elevator-sim/sim"

// BestDestination picks where elevator e should head from floor. Each
// destination of the passengers aboard is credited with their value plus a
// bonus for bunched stops, then charged weight per floor of distance. The
// cheapest destination wins, the lowest floor on ties. With nobody aboard the
// current floor is returned.
func BestDestination(w *sim.Simulator, e *sim.Elevator, floor, weight int) int {
	var points, riders [sim.FloorCount]int
	var present sim.FloorSet

	for i := 0; i < e.Passengers.Len(); i++ {
		p := w.Passenger(e.Passengers.At(i))
		if p == nil {
			continue
		}
		points[p.DestFloor] -= p.Value(e.Side)
		riders[p.DestFloor]++
		present = present.With(p.DestFloor)
	}

	best, bestCost := floor, 0
	found := false
	for f := 0; f < sim.FloorCount; f++ {
		if !present.Has(f) {
			continue
		}
		cost := points[f] - bunchingBonus(riders[f]) + weight*abs(floor-f)
		if !found || cost < bestCost {
			best, bestCost, found = f, cost, true
		}
	}
	return best
}

// bunchingBonus rewards a stop shared by k passengers.
func bunchingBonus(k int) int {
	switch {
	case k <= 1:
		return 0
	case k == 2:
		return 10
	case k == 3:
		return 20
	case k == 4:
		return 40
	default:
		return 40 + (k-4)*30
	}
}
