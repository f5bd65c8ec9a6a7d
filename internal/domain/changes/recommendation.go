// Package changes provides domain types for analyzing commit changes.
package changes

// Recommendation is the outcome of classifying commit history.
type Recommendation struct {
	// Kind is the required release type.
	Kind ReleaseType
	// Reason is a free-form explanation, possibly empty.
	Reason string
	// Preset names the convention that produced the recommendation ("" for the default rules).
	Preset string
}

// RequiresRelease returns true if the recommendation asks for a version bump.
func (r Recommendation) RequiresRelease() bool {
	_, ok := r.Kind.ToBumpType()
	return ok
}
