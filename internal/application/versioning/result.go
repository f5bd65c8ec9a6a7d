// Package versioning provides the next-version resolution use case.
package versioning

import "github.com/relicta-tech/cursor-rules/internal/domain/changes"

// Result is the outcome of one resolution run.
type Result struct {
	// Current is the baseline exactly as resolved.
	Current string `json:"current"`
	// Next is the next version or the no-release placeholder.
	Next string `json:"next"`
	// Type is the release type, "none" when no release is required.
	Type string `json:"type"`
	// Reason explains the classification and may span several lines.
	Reason string `json:"reason"`
}

// IsRelease returns true if the result asks for a new version.
func (r Result) IsRelease() bool {
	return r.Type != "" && r.Type != changes.ReleaseTypeNone.String()
}

// ResultEmitter publishes a result. Implementations write the complete
// payload or nothing.
type ResultEmitter interface {
	Emit(result Result) error
}
