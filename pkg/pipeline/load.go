package pipeline

import (
	"os"

	"github.com/matzehuels/workcell/pkg/errors"
	"github.com/matzehuels/workcell/pkg/workcell"
)

// LoadRequirement reads a requirement record from path. A missing file maps
// to FILE_NOT_FOUND and a malformed document to INVALID_FORMAT.
func LoadRequirement(path string) (workcell.Requirement, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return workcell.Requirement{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "requirement record %s", path)
	}
	req, err := workcell.ReadRequirementFile(path)
	if err != nil {
		return workcell.Requirement{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "requirement record %s", path)
	}
	return req, nil
}

// ParseRequirement decodes a requirement record (JSON or YAML) from bytes.
func ParseRequirement(data []byte) (workcell.Requirement, error) {
	req, err := workcell.UnmarshalRequirement(data)
	if err != nil {
		return workcell.Requirement{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "requirement record")
	}
	return req, nil
}

// LoadResult reads a Layout Result from path.
func LoadResult(path string) (workcell.Result, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return workcell.Result{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout %s", path)
	}
	res, err := workcell.ReadResultFile(path)
	if err != nil {
		return workcell.Result{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "layout %s", path)
	}
	return res, nil
}
