// Package testutil provides shared test infrastructure for the elevator simulator.
// It consolidates golden dataset types and assertion helpers used across
// sim/ and its sub-package tests. It does not import sim.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	RNG []GoldenRNGCase `json:"rng"`
}

// GoldenRNGCase pins the generator output for one initial state.
type GoldenRNGCase struct {
	Name    string   `json:"name"`
	W       uint32   `json:"w"`
	Z       uint32   `json:"z"`
	Outputs []uint32 `json:"outputs"` // first draws of Next()

	// PickFloors(PickCount, Excluded) from the initial state.
	PickCount int    `json:"pick_count"`
	Excluded  uint16 `json:"excluded"`
	Picked    []int  `json:"picked"`

	// The first passenger pair spawned from the initial state.
	SpawnPlaces int     `json:"spawn_places"`
	SpawnFloors []int   `json:"spawn_floors"` // as drawn; the last one is the destination
	SpawnMass   float64 `json:"spawn_mass"`
	AfterW      uint32  `json:"after_w"` // generator state after the spawn
	AfterZ      uint32  `json:"after_z"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
