package sim

import (
	"hash/fnv"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible game.
// Two matches with the same SimulationKey and identical policy configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemWorld is the generator of the authoritative world (passenger spawns).
	// Uses the master seed directly so that seeds keep their meaning across versions.
	SubsystemWorld = "world"

	// SubsystemLeft and SubsystemRight seed each side's private mirror, which
	// invents itineraries for passengers it has not seen yet.
	SubsystemLeft  = "left"
	SubsystemRight = "right"
)

// SubsystemForSide returns the mirror subsystem name of a side.
func SubsystemForSide(side Side) string {
	if side == Left {
		return SubsystemLeft
	}
	return SubsystemRight
}

// === Random ===

const (
	defaultW uint32 = 12345
	defaultZ uint32 = 456345
)

// Random is a 2-lag multiply-with-carry generator with two 32-bit state words.
// It is a plain value: copying a Random forks the stream.
// Neither word may be zero; W must not be 0x464fffff and Z must not be 0x9068ffff.
type Random struct {
	W uint32
	Z uint32
}

// NewRandom returns a generator in its default state.
func NewRandom() Random {
	return Random{W: defaultW, Z: defaultZ}
}

// Seed overwrites the state words, falling back to the defaults for degenerate values.
func (r *Random) Seed(w, z uint32) {
	if w == 0 || w == 0x464fffff {
		w = defaultW
	}
	if z == 0 || z == 0x9068ffff {
		z = defaultZ
	}
	r.W, r.Z = w, z
}

// Next returns the next 32-bit output.
func (r *Random) Next() uint32 {
	r.Z = 36969*(r.Z&65535) + (r.Z >> 16)
	r.W = 18000*(r.W&65535) + (r.W >> 16)
	return (r.Z << 16) + r.W
}

// Intn returns a value in [0, n). n must be positive.
func (r *Random) Intn(n int) int {
	return int(r.Next() % uint32(n))
}

// RandomFloor returns a floor in [1, FloorCount-1].
func (r *Random) RandomFloor() int {
	return r.Intn(FloorCount-1) + 1
}

// PickFloors enumerates the floors not in excluded, shuffles them with this
// generator and returns at most count of them.
func (r *Random) PickFloors(count int, excluded FloorSet) []int {
	floors := make([]int, 0, FloorCount)
	for f := 0; f < FloorCount; f++ {
		if !excluded.Has(f) {
			floors = append(floors, f)
		}
	}
	if len(floors) > 1 {
		for i := 1; i < len(floors); i++ {
			j := r.Intn(i + 1)
			floors[i], floors[j] = floors[j], floors[i]
		}
	}
	if count < 0 {
		count = 0
	}
	if len(floors) > count {
		floors = floors[:count]
	}
	return floors
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated generators per subsystem.
//
// Derivation formula:
//   - For SubsystemWorld: W = low 32 bits of masterSeed, Z = default
//   - For all other subsystems: the words of masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]Random
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]Random),
	}
}

// ForSubsystem returns the initial generator state of the named subsystem.
// The same name always yields the same state; callers own the returned copy.
func (p *PartitionedRNG) ForSubsystem(name string) Random {
	if r, ok := p.subsystems[name]; ok {
		return r
	}

	var r Random
	if name == SubsystemWorld {
		r.Seed(uint32(p.key), defaultZ)
	} else {
		derived := uint64(int64(p.key) ^ fnv1a64(name))
		r.Seed(uint32(derived), uint32(derived>>32))
	}
	p.subsystems[name] = r
	return r
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
