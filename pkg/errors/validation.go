package errors

import (
	"math"
	"strings"
)

// ValidateDimensions checks that dims is an [L, W, H] triple of finite,
// strictly positive meters. what names the offending entry in the message.
func ValidateDimensions(what string, dims []float64) error {
	if len(dims) != 3 {
		return New(ErrCodeInvalidDimensions, "%s: dimensions must be [length, width, height], got %d values", what, len(dims))
	}
	for i, d := range dims {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return New(ErrCodeInvalidDimensions, "%s: dimension %d is not a finite number", what, i)
		}
		if d <= 0 {
			return New(ErrCodeInvalidDimensions, "%s: all dimensions must be positive, got %v", what, dims)
		}
	}
	return nil
}

// ValidateReach checks a robot reach envelope. maxReach must be finite and
// positive; minReach must be finite, non-negative and below maxReach.
func ValidateReach(minReach, maxReach float64) error {
	if math.IsNaN(maxReach) || math.IsInf(maxReach, 0) || maxReach <= 0 {
		return New(ErrCodeInvalidReach, "reach_m must be a positive number, got %v", maxReach)
	}
	if math.IsNaN(minReach) || math.IsInf(minReach, 0) || minReach < 0 {
		return New(ErrCodeInvalidReach, "min_reach_m must be a non-negative number, got %v", minReach)
	}
	if minReach >= maxReach {
		return New(ErrCodeInvalidReach, "min_reach_m (%v) must be below reach_m (%v)", minReach, maxReach)
	}
	return nil
}

// ValidateNonNegative checks that v is finite and >= 0.
func ValidateNonNegative(what string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return New(ErrCodeInvalidInput, "%s must be a non-negative number, got %v", what, v)
	}
	return nil
}

// ValidatePositive checks that v is finite and > 0.
func ValidatePositive(what string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(ErrCodeInvalidInput, "%s must be a positive number, got %v", what, v)
	}
	return nil
}

// ValidateOutputPath validates a file path the CLI is about to write.
// It rejects empty paths, control characters and directory-only paths.
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}
	for _, r := range path {
		if r == '\x00' || (r < 0x20 && r != '\t') {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidInput, "output path must name a file, not a directory")
	}
	return nil
}
