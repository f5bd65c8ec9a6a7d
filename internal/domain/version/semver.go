// Package version provides domain types for semantic versioning.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SemanticVersion is an immutable semantic version. The zero value is 0.0.0.
type SemanticVersion struct {
	v *semver.Version
}

// NewSemanticVersion creates a release version without prerelease or metadata.
func NewSemanticVersion(major, minor, patch uint64) SemanticVersion {
	return SemanticVersion{v: semver.New(major, minor, patch, "", "")}
}

// Parse parses a semantic version string.
//
// Surrounding whitespace, a leading "=" and a leading "v" are accepted, so
// "v1.2.0" and "1.2.0" parse to the same version. Everything else must be a
// strict MAJOR.MINOR.PATCH with optional prerelease and build metadata.
func Parse(s string) (SemanticVersion, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "=")
	clean = strings.TrimPrefix(clean, "v")

	v, err := semver.StrictNewVersion(clean)
	if err != nil {
		return SemanticVersion{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	return SemanticVersion{v: v}, nil
}

// Valid reports whether s parses as a semantic version.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

func (v SemanticVersion) sv() *semver.Version {
	if v.v == nil {
		return semver.New(0, 0, 0, "", "")
	}
	return v.v
}

func (v SemanticVersion) Major() uint64 { return v.sv().Major() }
func (v SemanticVersion) Minor() uint64 { return v.sv().Minor() }
func (v SemanticVersion) Patch() uint64 { return v.sv().Patch() }

// String returns the normalized form, without a "v" prefix.
func (v SemanticVersion) String() string {
	return v.sv().String()
}

// Compare orders versions by semantic version precedence, ignoring build
// metadata. It returns -1, 0 or 1.
func (v SemanticVersion) Compare(other SemanticVersion) int {
	return v.sv().Compare(other.sv())
}

// GreaterThan reports whether v has higher precedence than other.
func (v SemanticVersion) GreaterThan(other SemanticVersion) bool {
	return v.Compare(other) > 0
}
