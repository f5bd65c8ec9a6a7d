// Package changes provides domain types for analyzing commit changes.
package changes

import "errors"

// Domain errors for changes operations.
var (
	// ErrInvalidReleaseType indicates an unrecognized release type.
	ErrInvalidReleaseType = errors.New("invalid release type")

	// ErrPresetNotFound indicates a convention preset that is not registered.
	ErrPresetNotFound = errors.New("preset not found")

	// ErrInvalidPreset indicates a preset whose rules cannot classify anything.
	ErrInvalidPreset = errors.New("invalid preset")
)
