package policy

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/elevator-sim/elevator-sim/sim"
)

// Config holds the numeric knobs of the dispatch policy. Historical variants of
// the heuristic differ only in these values.
type Config struct {
	// FirstMoveMinDest is, per lane, the destination a passenger must exceed to be
	// invited on the very first trip out of floor 0.
	FirstMoveMinDest []int `yaml:"first_move_min_dest"`
	// MinTripFloors: passengers travelling this many floors or fewer are never invited.
	MinTripFloors int `yaml:"min_trip_floors"`

	MaxWaitTicks         int `yaml:"max_wait_ticks"`
	MaxWaitLoadThreshold int `yaml:"max_wait_load_threshold"`
	MaxWaitLoadPenalty   int `yaml:"max_wait_load_penalty"`
	WaitBudgetCap        int `yaml:"wait_budget_cap"`

	OpeningPhaseTicks        int `yaml:"opening_phase_ticks"`
	ReentryBaseTicks         int `yaml:"reentry_base_ticks"`
	ReentryPerPassengerTicks int `yaml:"reentry_per_passenger_ticks"`

	GameTicks           int `yaml:"game_ticks"`
	EndgameTick         int `yaml:"endgame_tick"`
	EndgameAscentTicks  int `yaml:"endgame_ascent_ticks"`  // per floor
	EndgameDescentTicks int `yaml:"endgame_descent_ticks"` // per floor
	EndgameDoorTicks    int `yaml:"endgame_door_ticks"`

	DestinationDistanceWeight int `yaml:"destination_distance_weight"`

	InviteCapacityBoost int `yaml:"invite_capacity_boost"`
	InviteMinValue2     int `yaml:"invite_min_value_2"` // minimum value when at most 2 places are left
	InviteMinValue4     int `yaml:"invite_min_value_4"` // minimum value when at most 4 places are left

	Rollout RolloutConfig `yaml:"rollout"`
}

// RolloutConfig holds the look-ahead parameters.
type RolloutConfig struct {
	Enabled          bool `yaml:"enabled"`
	TriggerDoorTicks int  `yaml:"trigger_door_ticks"`
	BaseDepth        int  `yaml:"base_depth"`
	DepthPerLane     int  `yaml:"depth_per_lane"`

	DeliveredWeight float64 `yaml:"delivered_weight"`
	CargoWeight     float64 `yaml:"cargo_weight"`
	// Cargo is discounted once fewer than CargoDecayHorizon ticks remain:
	// coef = (remaining - CargoDecayOffset) / CargoDecaySpan.
	CargoDecayHorizon int `yaml:"cargo_decay_horizon"`
	CargoDecayOffset  int `yaml:"cargo_decay_offset"`
	CargoDecaySpan    int `yaml:"cargo_decay_span"`

	HomeFloorPenalty  int `yaml:"home_floor_penalty"`
	HomeFloorMinExits int `yaml:"home_floor_min_exits"`
	KeepFloorBonus    int `yaml:"keep_floor_bonus"`
	SameFloorPenalty  int `yaml:"same_floor_penalty"`

	Valuation string `yaml:"valuation"`
	// ModelOpponent runs the policy for the opposing side inside replays too.
	ModelOpponent bool `yaml:"model_opponent"`
	Workers       int  `yaml:"workers"`
}

// DefaultConfig returns the tuned canonical configuration.
func DefaultConfig() Config {
	return Config{
		FirstMoveMinDest:          []int{6, 5, 3, 2},
		MinTripFloors:             1,
		MaxWaitTicks:              630,
		MaxWaitLoadThreshold:      9,
		MaxWaitLoadPenalty:        50,
		WaitBudgetCap:             1200,
		OpeningPhaseTicks:         1980,
		ReentryBaseTicks:          250,
		ReentryPerPassengerTicks:  60,
		GameTicks:                 sim.GameTicks,
		EndgameTick:               6500,
		EndgameAscentTicks:        60,
		EndgameDescentTicks:       51,
		EndgameDoorTicks:          241,
		DestinationDistanceWeight: 70,
		InviteCapacityBoost:       3,
		InviteMinValue2:           30,
		InviteMinValue4:           20,
		Rollout: RolloutConfig{
			Enabled:           true,
			TriggerDoorTicks:  98,
			BaseDepth:         400,
			DepthPerLane:      40,
			DeliveredWeight:   1,
			CargoWeight:       0.5,
			CargoDecayHorizon: 1500,
			CargoDecayOffset:  300,
			CargoDecaySpan:    1200,
			HomeFloorPenalty:  100,
			HomeFloorMinExits: 10,
			KeepFloorBonus:    1,
			SameFloorPenalty:  200,
			Valuation:         sim.ValuationExpected,
			ModelOpponent:     false,
			Workers:           1,
		},
	}
}

// Validate checks that every knob is in range. This is the only place an
// out-of-range floor is fatal.
func (c *Config) Validate() error {
	if len(c.FirstMoveMinDest) != sim.ElevatorsPerSide {
		return fmt.Errorf("first_move_min_dest needs %d entries, got %d", sim.ElevatorsPerSide, len(c.FirstMoveMinDest))
	}
	for i, f := range c.FirstMoveMinDest {
		if !sim.ValidFloor(f) {
			return fmt.Errorf("first_move_min_dest[%d] = %d is not a floor in [0, %d]", i, f, sim.FloorCount-1)
		}
	}
	nonNegative := []struct {
		name  string
		value int
	}{
		{"min_trip_floors", c.MinTripFloors},
		{"max_wait_ticks", c.MaxWaitTicks},
		{"max_wait_load_threshold", c.MaxWaitLoadThreshold},
		{"max_wait_load_penalty", c.MaxWaitLoadPenalty},
		{"wait_budget_cap", c.WaitBudgetCap},
		{"opening_phase_ticks", c.OpeningPhaseTicks},
		{"reentry_base_ticks", c.ReentryBaseTicks},
		{"reentry_per_passenger_ticks", c.ReentryPerPassengerTicks},
		{"endgame_tick", c.EndgameTick},
		{"endgame_ascent_ticks", c.EndgameAscentTicks},
		{"endgame_descent_ticks", c.EndgameDescentTicks},
		{"endgame_door_ticks", c.EndgameDoorTicks},
		{"destination_distance_weight", c.DestinationDistanceWeight},
		{"invite_capacity_boost", c.InviteCapacityBoost},
		{"invite_min_value_2", c.InviteMinValue2},
		{"invite_min_value_4", c.InviteMinValue4},
		{"rollout.trigger_door_ticks", c.Rollout.TriggerDoorTicks},
		{"rollout.base_depth", c.Rollout.BaseDepth},
		{"rollout.depth_per_lane", c.Rollout.DepthPerLane},
		{"rollout.cargo_decay_horizon", c.Rollout.CargoDecayHorizon},
		{"rollout.cargo_decay_offset", c.Rollout.CargoDecayOffset},
		{"rollout.home_floor_penalty", c.Rollout.HomeFloorPenalty},
		{"rollout.home_floor_min_exits", c.Rollout.HomeFloorMinExits},
		{"rollout.keep_floor_bonus", c.Rollout.KeepFloorBonus},
		{"rollout.same_floor_penalty", c.Rollout.SameFloorPenalty},
	}
	for _, k := range nonNegative {
		if k.value < 0 {
			return fmt.Errorf("%s must be non-negative, got %d", k.name, k.value)
		}
	}
	if c.GameTicks <= 0 {
		return fmt.Errorf("game_ticks must be positive, got %d", c.GameTicks)
	}
	if c.Rollout.TriggerDoorTicks > sim.ClosingTicks {
		return fmt.Errorf("rollout.trigger_door_ticks must be at most %d, got %d", sim.ClosingTicks, c.Rollout.TriggerDoorTicks)
	}
	if c.Rollout.CargoDecaySpan <= 0 {
		return fmt.Errorf("rollout.cargo_decay_span must be positive, got %d", c.Rollout.CargoDecaySpan)
	}
	if c.Rollout.DeliveredWeight < 0 || c.Rollout.CargoWeight < 0 {
		return fmt.Errorf("rollout weights must be non-negative, got delivered=%f cargo=%f", c.Rollout.DeliveredWeight, c.Rollout.CargoWeight)
	}
	if !sim.ValidValuations[c.Rollout.Valuation] {
		return fmt.Errorf("unknown rollout valuation %q, valid: %v", c.Rollout.Valuation, sim.ValuationNames())
	}
	if c.Rollout.Workers < 1 {
		return fmt.Errorf("rollout.workers must be at least 1, got %d", c.Rollout.Workers)
	}
	return nil
}

// DefaultPreset is the name under which DefaultConfig is always available.
const DefaultPreset = "default"

// Presets maps preset names to configurations.
type Presets map[string]Config

// presetFile is the on-disk layout. Each preset is decoded on top of
// DefaultConfig, so a preset lists only the knobs it changes.
type presetFile struct {
	Presets map[string]yaml.Node `yaml:"presets"`
}

// LoadPresets reads a presets YAML file. Unknown keys are errors.
func LoadPresets(path string) (Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading presets: %w", err)
	}
	return ParsePresets(data)
}

// ParsePresets parses presets YAML with strict field checking.
func ParsePresets(data []byte) (Presets, error) {
	var file presetFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing presets: %w", err)
	}

	presets := Presets{DefaultPreset: DefaultConfig()}
	for name, node := range file.Presets {
		if node.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("preset %q: expected a mapping of knobs (line %d)", name, node.Line)
		}
		raw, err := yaml.Marshal(&node)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		cfg := DefaultConfig()
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		presets[name] = cfg
	}
	return presets, nil
}

// Lookup returns the named preset.
func (p Presets) Lookup(name string) (Config, error) {
	if cfg, ok := p[name]; ok {
		return cfg, nil
	}
	if name == DefaultPreset {
		return DefaultConfig(), nil
	}
	return Config{}, fmt.Errorf("unknown preset %q, available: %v", name, p.Names())
}

// Names returns the preset names, sorted.
func (p Presets) Names() []string {
	names := make([]string, 0, len(p))
	for n := range p {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
