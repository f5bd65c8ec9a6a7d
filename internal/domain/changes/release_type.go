// Package changes provides domain types for analyzing commit changes.
package changes

import "github.com/relicta-tech/cursor-rules/internal/domain/version"

// ReleaseType represents the kind of release the commit history requires.
type ReleaseType string

const (
	// ReleaseTypeMajor indicates a major release with breaking changes.
	ReleaseTypeMajor ReleaseType = "major"
	// ReleaseTypeMinor indicates a minor release with new features.
	ReleaseTypeMinor ReleaseType = "minor"
	// ReleaseTypePatch indicates a patch release with bug fixes.
	ReleaseTypePatch ReleaseType = "patch"
	// ReleaseTypeNone indicates no release is needed.
	ReleaseTypeNone ReleaseType = "none"
)

// String returns the string representation of the release type.
func (r ReleaseType) String() string {
	return string(r)
}

// ToBumpType converts a ReleaseType to a version.BumpType.
// The second return value is false for ReleaseTypeNone and unknown values.
func (r ReleaseType) ToBumpType() (version.BumpType, bool) {
	switch r {
	case ReleaseTypeMajor:
		return version.BumpMajor, true
	case ReleaseTypeMinor:
		return version.BumpMinor, true
	case ReleaseTypePatch:
		return version.BumpPatch, true
	default:
		return "", false
	}
}

func (r ReleaseType) rank() int {
	switch r {
	case ReleaseTypeMajor:
		return 3
	case ReleaseTypeMinor:
		return 2
	case ReleaseTypePatch:
		return 1
	default:
		return 0
	}
}

// MaxReleaseType returns the higher precedence release type.
// Major > Minor > Patch > None
func MaxReleaseType(a, b ReleaseType) ReleaseType {
	if b.rank() > a.rank() {
		return b
	}
	if a.rank() == 0 {
		return ReleaseTypeNone
	}
	return a
}
