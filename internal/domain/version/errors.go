// Package version provides domain types for semantic versioning.
package version

import "errors"

// Domain errors for version operations.
var (
	// ErrInvalidVersion indicates an invalid version string.
	ErrInvalidVersion = errors.New("invalid semantic version")

	// ErrInvalidBumpType indicates an invalid bump type.
	ErrInvalidBumpType = errors.New("invalid bump type")
)
