package workcell

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Requirement - upstream input record
// =============================================================================

// Requirement is the structured description of a workcell produced by the
// requirement-gathering stage.
type Requirement struct {
	Robot      *RobotSelection    `json:"robot_selection" yaml:"robot_selection"`
	Components []ComponentSpec    `json:"workcell_components" yaml:"workcell_components"`
	Task       *TaskSpecification `json:"task_specification,omitempty" yaml:"task_specification,omitempty"`
}

// RobotSelection describes the chosen robot.
type RobotSelection struct {
	Model        string   `json:"model" yaml:"model"`
	Manufacturer string   `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	ReachM       float64  `json:"reach_m" yaml:"reach_m"`
	MinReachM    *float64 `json:"min_reach_m,omitempty" yaml:"min_reach_m,omitempty"`
	PayloadKg    float64  `json:"payload_kg,omitempty" yaml:"payload_kg,omitempty"`
	URDFPath     string   `json:"urdf_path,omitempty" yaml:"urdf_path,omitempty"`
}

// ComponentSpec is one loosely-typed entry of the component inventory.
// ComponentType is free text and is matched against keywords by the solver.
type ComponentSpec struct {
	Name          string `json:"name" yaml:"name"`
	ComponentType string `json:"component_type" yaml:"component_type"`
	Dimensions    Vec3   `json:"dimensions" yaml:"dimensions"`
	MJCFPath      string `json:"mjcf_path,omitempty" yaml:"mjcf_path,omitempty"`
}

// TaskSpecification describes the manipulated object. It is an alternative
// source for the object's dimensions.
type TaskSpecification struct {
	Name       string   `json:"name,omitempty" yaml:"name,omitempty"`
	SKU        string   `json:"sku_id,omitempty" yaml:"sku_id,omitempty"`
	Dimensions Vec3     `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
	WeightKg   *float64 `json:"weight_kg,omitempty" yaml:"weight_kg,omitempty"`
}

// =============================================================================
// Requirement Serialization API
// =============================================================================

// MarshalRequirement serializes a Requirement to compact JSON. The encoding is
// deterministic and is used for content hashing.
func MarshalRequirement(r Requirement) ([]byte, error) {
	return json.Marshal(r)
}

// UnmarshalRequirement decodes a requirement record. Documents that start
// with '{' are decoded as JSON, anything else as YAML.
func UnmarshalRequirement(data []byte) (Requirement, error) {
	var r Requirement
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Requirement{}, fmt.Errorf("unmarshal requirement: empty document")
	}
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &r); err != nil {
			return Requirement{}, fmt.Errorf("unmarshal requirement: %w", err)
		}
		return r, nil
	}
	if err := yaml.Unmarshal(trimmed, &r); err != nil {
		return Requirement{}, fmt.Errorf("unmarshal requirement yaml: %w", err)
	}
	return r, nil
}

// ReadRequirementFile reads a requirement record from a JSON or YAML file.
// Files ending in .yaml or .yml are always decoded as YAML.
func ReadRequirementFile(path string) (Requirement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Requirement{}, fmt.Errorf("read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var r Requirement
		if err := yaml.Unmarshal(data, &r); err != nil {
			return Requirement{}, fmt.Errorf("unmarshal requirement yaml: %w", err)
		}
		return r, nil
	}
	return UnmarshalRequirement(data)
}
