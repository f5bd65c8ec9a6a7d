package versioning

import (
	"github.com/relicta-tech/cursor-rules/internal/domain/changes"
	"github.com/relicta-tech/cursor-rules/internal/domain/version"
	rperrors "github.com/relicta-tech/cursor-rules/internal/errors"
)

// DefaultPlaceholder is emitted as the next version when no release is required.
const DefaultPlaceholder = "no-release (no feat/fix/breaking changes)"

// VersionComputer applies a release type to the baseline.
type VersionComputer struct {
	placeholder string
}

// NewVersionComputer creates a VersionComputer. An empty placeholder selects
// DefaultPlaceholder.
func NewVersionComputer(placeholder string) *VersionComputer {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return &VersionComputer{placeholder: placeholder}
}

// Placeholder returns the no-release value.
func (c *VersionComputer) Placeholder() string {
	return c.placeholder
}

// Apply returns the next version, or the placeholder for ReleaseTypeNone.
// An unparseable current version is an error for every kind.
func (c *VersionComputer) Apply(current string, kind changes.ReleaseType) (string, error) {
	const op = "versioning.Apply"

	v, err := version.Parse(current)
	if err != nil {
		return "", rperrors.VersionWrap(err, op, "invalid current version")
	}

	bt, ok := kind.ToBumpType()
	if !ok {
		if kind != changes.ReleaseTypeNone && kind != "" {
			return "", rperrors.VersionWrap(changes.ErrInvalidReleaseType, op, "unknown release type "+kind.String())
		}
		return c.placeholder, nil
	}

	next, err := version.Bump(v, bt)
	if err != nil {
		return "", rperrors.VersionWrap(err, op, "failed to bump version")
	}
	return next.String(), nil
}
