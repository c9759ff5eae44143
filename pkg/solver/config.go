package solver

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/workcell/pkg/errors"
	"github.com/matzehuels/workcell/pkg/workcell"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultPedestalClearance is the margin kept around the pedestal, which
	// houses the robot's sweep volume.
	DefaultPedestalClearance = 0.10

	// DefaultConveyorClearance is the margin kept around the conveyor.
	DefaultConveyorClearance = 0.025

	// DefaultPalletClearance is the margin kept around the pallet.
	DefaultPalletClearance = 0.025

	// DefaultSearchStep is the radius increment of the placement search.
	DefaultSearchStep = 0.05

	// DefaultAirGap is added above every grasp surface.
	DefaultAirGap = 0.01

	// DefaultMinSeparation is the minimum horizontal pick-place distance.
	DefaultMinSeparation = 0.8

	// DefaultMinPickHeight is the minimum pick target height above the floor.
	DefaultMinPickHeight = 0.3

	// DefaultMinReach is used when the robot descriptor does not state one.
	DefaultMinReach = 0.20

	// MinSearchStep is the finest search step. Candidates are rounded to
	// millimeters, so a finer step would revisit the same radius.
	MinSearchStep = 0.001
)

// Default dimension table, [L, W, H] in meters.
var (
	DefaultPedestalDimensions = workcell.V3(0.60, 0.60, 0.50)
	DefaultConveyorDimensions = workcell.V3(2.00, 0.64, 0.82)
	DefaultPalletDimensions   = workcell.V3(1.20, 0.80, 0.15) // euro pallet
	DefaultObjectDimensions   = workcell.V3(0.30, 0.30, 0.30) // medium carton
)

// =============================================================================
// Config
// =============================================================================

// Config holds every tunable of a solve. The zero value is not usable; start
// from [DefaultConfig] and override fields, or load a TOML file with
// [LoadConfig].
type Config struct {
	PedestalClearance float64 `toml:"pedestal_clearance" json:"pedestal_clearance"`
	ConveyorClearance float64 `toml:"conveyor_clearance" json:"conveyor_clearance"`
	PalletClearance   float64 `toml:"pallet_clearance" json:"pallet_clearance"`

	SearchStep  float64 `toml:"search_step" json:"search_step"`
	SearchStart float64 `toml:"search_start" json:"search_start"`

	AirGap           float64 `toml:"air_gap" json:"air_gap"`
	RobotMountOffset float64 `toml:"robot_mount_offset" json:"robot_mount_offset"`
	DefaultMinReach  float64 `toml:"default_min_reach" json:"default_min_reach"`

	MinSeparation float64 `toml:"min_separation" json:"min_separation"`
	MinPickHeight float64 `toml:"min_pick_height" json:"min_pick_height"`

	Defaults DefaultDimensions `toml:"defaults" json:"defaults"`
}

// DefaultDimensions is the fallback [L, W, H] for each kind when the
// requirement record does not provide a matching component.
type DefaultDimensions struct {
	Pedestal workcell.Vec3 `toml:"pedestal" json:"pedestal"`
	Conveyor workcell.Vec3 `toml:"conveyor" json:"conveyor"`
	Pallet   workcell.Vec3 `toml:"pallet" json:"pallet"`
	Object   workcell.Vec3 `toml:"object" json:"object"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		PedestalClearance: DefaultPedestalClearance,
		ConveyorClearance: DefaultConveyorClearance,
		PalletClearance:   DefaultPalletClearance,
		SearchStep:        DefaultSearchStep,
		AirGap:            DefaultAirGap,
		DefaultMinReach:   DefaultMinReach,
		MinSeparation:     DefaultMinSeparation,
		MinPickHeight:     DefaultMinPickHeight,
		Defaults: DefaultDimensions{
			Pedestal: DefaultPedestalDimensions.Clone(),
			Conveyor: DefaultConveyorDimensions.Clone(),
			Pallet:   DefaultPalletDimensions.Clone(),
			Object:   DefaultObjectDimensions.Clone(),
		},
	}
}

// LoadConfig reads a TOML file on top of [DefaultConfig]. Keys absent from
// the file keep their defaults; unknown keys are rejected.
//
//	pedestal_clearance = 0.15
//	search_step = 0.02
//
//	[defaults]
//	pallet = [1.2, 1.0, 0.144]
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every tunable is usable.
func (c Config) Validate() error {
	nonNegative := []struct {
		name  string
		value float64
	}{
		{"pedestal_clearance", c.PedestalClearance},
		{"conveyor_clearance", c.ConveyorClearance},
		{"pallet_clearance", c.PalletClearance},
		{"search_start", c.SearchStart},
		{"air_gap", c.AirGap},
		{"robot_mount_offset", c.RobotMountOffset},
		{"default_min_reach", c.DefaultMinReach},
		{"min_separation", c.MinSeparation},
		{"min_pick_height", c.MinPickHeight},
	}
	for _, f := range nonNegative {
		if err := errors.ValidateNonNegative(f.name, f.value); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config")
		}
	}
	if err := errors.ValidatePositive("search_step", c.SearchStep); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config")
	}
	if c.SearchStep < MinSearchStep {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid config: search_step must be at least %g m, got %g", MinSearchStep, c.SearchStep)
	}
	for _, kind := range workcell.Kinds {
		if err := errors.ValidateDimensions(fmt.Sprintf("defaults.%s", kind), c.DefaultFor(kind)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config")
		}
	}
	return nil
}

// DefaultFor returns the fallback dimensions for kind.
func (c Config) DefaultFor(kind workcell.Kind) workcell.Vec3 {
	switch kind {
	case workcell.KindPedestal:
		return c.Defaults.Pedestal
	case workcell.KindConveyor:
		return c.Defaults.Conveyor
	case workcell.KindPallet:
		return c.Defaults.Pallet
	case workcell.KindObject:
		return c.Defaults.Object
	}
	return nil
}

// Clearance returns the margin kept around a component of the given kind.
// The object rides on the conveyor and has no floor margin.
func (c Config) Clearance(kind workcell.Kind) float64 {
	switch kind {
	case workcell.KindPedestal:
		return c.PedestalClearance
	case workcell.KindConveyor:
		return c.ConveyorClearance
	case workcell.KindPallet:
		return c.PalletClearance
	}
	return 0
}

// PairClearance returns the margin enforced between two kinds: the larger of
// their individual margins.
func (c Config) PairClearance(a, b workcell.Kind) float64 {
	return max(c.Clearance(a), c.Clearance(b))
}
