package cmd

import (
	"github.com/sirupsen/logrus"

	"github.com/elevator-sim/elevator-sim/sim/policy"
)

// loadPresets returns the presets of --presets, or only the built-in default
// when no file is given.
func loadPresets(path string) (policy.Presets, error) {
	if path == "" {
		return policy.Presets{policy.DefaultPreset: policy.DefaultConfig()}, nil
	}
	return policy.LoadPresets(path)
}

// resolvePreset looks up name and applies the --workers override.
func resolvePreset(presets policy.Presets, name string, workers int) (policy.Config, error) {
	cfg, err := presets.Lookup(name)
	if err != nil {
		return policy.Config{}, err
	}
	if workers > 0 {
		cfg.Rollout.Workers = workers
	}
	return cfg, cfg.Validate()
}

// loadSides resolves the configs of both sides from the CLI flags.
func loadSides() (left, right policy.Config) {
	presets, err := loadPresets(presetsPath)
	if err != nil {
		logrus.Fatalf("Failed to load presets: %v", err)
	}
	if left, err = resolvePreset(presets, leftPreset, workers); err != nil {
		logrus.Fatalf("Left preset: %v", err)
	}
	if right, err = resolvePreset(presets, rightPreset, workers); err != nil {
		logrus.Fatalf("Right preset: %v", err)
	}
	return left, right
}
