package workcell

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// StatusSuccess is the status of a result that passed every acceptance check.
// Any other status string describes the first failing check.
const StatusSuccess = "success"

// =============================================================================
// Result - output contract
// =============================================================================

// Result is the layout handed to the downstream scene builder.
//
// Field order is fixed and there are no maps, so marshaling the same Result
// twice yields identical bytes.
type Result struct {
	Status        string            `json:"status" yaml:"status"`
	Components    []PlacedComponent `json:"optimized_components" yaml:"optimized_components"`
	Coordinates   Coordinates       `json:"layout_coordinates" yaml:"layout_coordinates"`
	MotionTargets MotionTargets     `json:"motion_targets" yaml:"motion_targets"`
	Quality       Quality           `json:"quality" yaml:"quality"`
	Violations    []string          `json:"violations,omitempty" yaml:"violations,omitempty"`
}

// OK reports whether the result passed validation.
func (r *Result) OK() bool { return r.Status == StatusSuccess }

// Component returns the placed component of the given kind.
func (r *Result) Component(kind Kind) (PlacedComponent, bool) {
	for _, c := range r.Components {
		if c.Kind == kind {
			return c, true
		}
	}
	return PlacedComponent{}, false
}

// PlacedComponent is one component with its resolved pose and the identity
// fields copied from the requirement record.
type PlacedComponent struct {
	Name          string `json:"name" yaml:"name"`
	ComponentType string `json:"component_type" yaml:"component_type"`
	Kind          Kind   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Position      Vec3   `json:"position" yaml:"position"`
	Orientation   Vec3   `json:"orientation" yaml:"orientation"`
	Dimensions    Vec3   `json:"dimensions" yaml:"dimensions"`
	MJCFPath      string `json:"mjcf_path,omitempty" yaml:"mjcf_path,omitempty"`
	Synthesized   bool   `json:"synthesized,omitempty" yaml:"synthesized,omitempty"`
	Degraded      bool   `json:"degraded,omitempty" yaml:"degraded,omitempty"`
}

// Coordinates exposes the major positions and targets under stable keys.
type Coordinates struct {
	PedestalPos Vec3 `json:"pedestal_pos" yaml:"pedestal_pos"`
	RobotPos    Vec3 `json:"robot_pos" yaml:"robot_pos"`
	ConveyorPos Vec3 `json:"conveyor_pos" yaml:"conveyor_pos"`
	PalletPos   Vec3 `json:"pallet_pos" yaml:"pallet_pos"`
	BoxSpawnPos Vec3 `json:"box_spawn_pos" yaml:"box_spawn_pos"`
	PickTarget  Vec3 `json:"pick_target_xyz" yaml:"pick_target_xyz"`
	PlaceTarget Vec3 `json:"place_target_xyz" yaml:"place_target_xyz"`
}

// MotionTargets are the points the trajectory executor drives to.
type MotionTargets struct {
	RobotPos    Vec3 `json:"robot_pos" yaml:"robot_pos"`
	PickTarget  Vec3 `json:"pick_target_xyz" yaml:"pick_target_xyz"`
	PlaceTarget Vec3 `json:"place_target_xyz" yaml:"place_target_xyz"`
	BoxSpawnPos Vec3 `json:"box_spawn_pos" yaml:"box_spawn_pos"`
}

// Quality summarizes how well the layout satisfied its constraints.
type Quality struct {
	// PickPlaceDistance is the 3D distance between pick and place targets.
	PickPlaceDistance float64 `json:"pick_place_distance_m" yaml:"pick_place_distance_m"`
	// PickPlaceHorizontal is the floor-plane distance between the targets.
	PickPlaceHorizontal float64 `json:"pick_place_horizontal_m" yaml:"pick_place_horizontal_m"`
	// Confidence is the fraction of searched components placed cleanly.
	Confidence float64 `json:"confidence" yaml:"confidence"`
	// Degraded is set when at least one component could not satisfy reach.
	Degraded           bool     `json:"degraded" yaml:"degraded"`
	DegradedComponents []string `json:"degraded_components,omitempty" yaml:"degraded_components,omitempty"`
	ReachMin           float64  `json:"reach_min_m" yaml:"reach_min_m"`
	ReachMax           float64  `json:"reach_max_m" yaml:"reach_max_m"`
}

// =============================================================================
// Result Serialization API
// =============================================================================

// MarshalResult serializes a Result to pretty-printed JSON bytes.
func MarshalResult(r Result) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// MarshalResultYAML serializes a Result to YAML with the same keys as JSON.
func MarshalResultYAML(r Result) ([]byte, error) {
	return yaml.Marshal(r)
}

// UnmarshalResult deserializes JSON bytes into a Result.
// No semantic validation happens here; use the solver's Validate for that.
func UnmarshalResult(data []byte) (Result, error) {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return Result{}, fmt.Errorf("unmarshal result: %w", err)
	}
	return r, nil
}

// WriteResultFile writes a Result to a JSON file.
func WriteResultFile(r Result, path string) error {
	data, err := MarshalResult(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// ReadResultFile reads a Result from a JSON file, or a YAML file when the
// path ends in .yaml or .yml.
func ReadResultFile(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var r Result
		if err := yaml.Unmarshal(data, &r); err != nil {
			return Result{}, fmt.Errorf("unmarshal result yaml: %w", err)
		}
		return r, nil
	}
	return UnmarshalResult(data)
}
