// Cargo valuation: read-only estimates of the score still carried by an
// elevator or a whole side. Used by the rollout engine and by match reports.

package sim

import (
	"fmt"
	"sort"
)

// Value is a cargo estimate.
type Value struct {
	Points       float64 // score recoverable by delivering everyone aboard
	Ticks        int     // travel-time proxy for delivering everyone aboard
	UniqueFloors int     // distinct stops, floor 0 included
	// Anomalies counts manifest entries that could not be valued: ids that are
	// not active, or unconfirmed destinations with an impossible visited count.
	Anomalies int
}

// Valuation names a cargo estimator.
type Valuation interface {
	Name() string
	CargoValue(sim *Simulator, e *Elevator) Value
}

const (
	ValuationDistinctFloors = "distinct-floors"
	ValuationFixedOverhead  = "fixed-overhead"
	ValuationExpected       = "expected"
)

// ValidValuations is the set of recognized valuation names.
// Shared by policy config validation and NewValuation().
var ValidValuations = map[string]bool{
	ValuationDistinctFloors: true,
	ValuationFixedOverhead:  true,
	ValuationExpected:       true,
}

// ValuationNames returns the recognized valuation names, sorted.
func ValuationNames() []string {
	names := make([]string, 0, len(ValidValuations))
	for n := range ValidValuations {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NewValuation creates a valuation by name. Panics on unrecognized names.
func NewValuation(name string) Valuation {
	switch name {
	case ValuationDistinctFloors:
		return DistinctFloors{}
	case ValuationFixedOverhead:
		return FixedOverhead{}
	case ValuationExpected:
		return Expected{}
	default:
		panic(fmt.Sprintf("unknown valuation %q, valid: %v", name, ValuationNames()))
	}
}

// DistinctFloors values cargo by true destinations and charges a per-stop
// overhead for every distinct stop.
type DistinctFloors struct{}

func (DistinctFloors) Name() string { return ValuationDistinctFloors }

func (DistinctFloors) CargoValue(sim *Simulator, e *Elevator) Value {
	return sim.cargoValue(e, false, func(p *Passenger) (float64, bool) {
		return float64(p.Value(e.Side)), true
	})
}

// FixedOverhead is DistinctFloors with the per-stop overhead charged for every
// floor of the building instead of the distinct stops.
type FixedOverhead struct{}

func (FixedOverhead) Name() string { return ValuationFixedOverhead }

func (FixedOverhead) CargoValue(sim *Simulator, e *Elevator) Value {
	return sim.cargoValue(e, true, func(p *Passenger) (float64, bool) {
		return float64(p.Value(e.Side)), true
	})
}

// Expected values passengers whose destination is a placeholder by the
// statistical estimate of ExpectedValue.
type Expected struct{}

func (Expected) Name() string { return ValuationExpected }

func (Expected) CargoValue(sim *Simulator, e *Elevator) Value {
	return sim.cargoValue(e, false, func(p *Passenger) (float64, bool) {
		v, ok := p.ExpectedValue(e.Side)
		return float64(int(v)), ok
	})
}

// CargoValue is the distinct-floors estimate of e's cargo.
func (sim *Simulator) CargoValue(e *Elevator) Value {
	return DistinctFloors{}.CargoValue(sim, e)
}

// TotalCargoValue sums v over the elevators of side: points add up, ticks take
// the maximum.
func (sim *Simulator) TotalCargoValue(side Side, v Valuation) Value {
	var total Value
	for i := range sim.Elevators {
		e := &sim.Elevators[i]
		if e.Side != side {
			continue
		}
		ev := v.CargoValue(sim, e)
		total.Points += ev.Points
		total.Ticks = max(total.Ticks, ev.Ticks)
		total.UniqueFloors = max(total.UniqueFloors, ev.UniqueFloors)
		total.Anomalies += ev.Anomalies
	}
	return total
}

func (sim *Simulator) cargoValue(e *Elevator, fixedOverhead bool, points func(p *Passenger) (float64, bool)) Value {
	var v Value
	floor := e.Floor()
	lo, hi := floor, floor
	stops := FloorSet(0).With(0)
	for _, id := range e.Passengers.ids[:e.Passengers.count] {
		i := sim.PassengerIndex(id)
		if i < 0 {
			v.Anomalies++
			continue
		}
		p := &sim.Passengers[i]
		pts, ok := points(p)
		if !ok {
			v.Anomalies++
		}
		v.Points += pts
		lo = min(lo, p.DestFloor)
		hi = max(hi, p.DestFloor)
		if p.DestFloor != floor {
			stops = stops.With(p.DestFloor)
		}
	}
	v.UniqueFloors = stops.Count()
	overhead := v.UniqueFloors
	if fixedOverhead {
		overhead = FloorCount
	}
	v.Ticks = (hi-lo+min(hi-floor, floor-lo))*600 + overhead*250
	return v
}

// ExpectedValue is Value for a confirmed destination. For a placeholder it
// estimates the score from how many floors were already visited: the more
// visited, the likelier the next stop is the exit at floor 0. It reports false
// when the visited count is outside [1, 6]; the estimate is still returned.
func (p *Passenger) ExpectedValue(mySide Side) (float64, bool) {
	var v float64
	ok := true
	if p.DestConfirmed {
		v = float64(abs(p.DestFloor-p.FromFloor) * 10)
	} else {
		c := p.Visited.Count()
		ok = c >= 1 && c <= MaxItinerary+2
		var sum float64
		k := 0
		for f := 0; f < FloorCount; f++ {
			if !p.Visited.Has(f) {
				sum += float64(abs(f - p.FromFloor))
				k++
			}
		}
		if k > 0 {
			sum /= float64(k)
		}
		v = (float64(c-1)*0.2*float64(p.FromFloor) + float64(6-c)*0.2*sum) * 10
	}
	if p.Side != mySide {
		v *= 2
	}
	return v, ok
}
