// Package version provides domain types for semantic versioning.
package version

import "fmt"

// BumpType names the version component to increment.
type BumpType string

const (
	BumpMajor BumpType = "major"
	BumpMinor BumpType = "minor"
	BumpPatch BumpType = "patch"
)

func (b BumpType) String() string {
	return string(b)
}

// Bump increments exactly one component, resets the lower ones to zero
// and drops prerelease and build metadata.
func Bump(v SemanticVersion, bt BumpType) (SemanticVersion, error) {
	switch bt {
	case BumpMajor:
		return NewSemanticVersion(v.Major()+1, 0, 0), nil
	case BumpMinor:
		return NewSemanticVersion(v.Major(), v.Minor()+1, 0), nil
	case BumpPatch:
		return NewSemanticVersion(v.Major(), v.Minor(), v.Patch()+1), nil
	default:
		return v, fmt.Errorf("%w: %q", ErrInvalidBumpType, bt)
	}
}
