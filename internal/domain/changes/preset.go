// Package changes provides domain types for analyzing commit changes.
package changes

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Built-in preset names.
const (
	PresetConventionalCommits = "conventionalcommits"
	PresetAngular             = "angular"
)

// Preset is a commit convention: which commit types map to which release
// type, and which markers flag a breaking change.
type Preset struct {
	Name           string
	MinorTypes     []CommitType
	PatchTypes     []CommitType
	BreakingMarker bool
	BreakingFooter bool
}

// DefaultPreset returns the minimal rules used when no preset is requested.
func DefaultPreset() Preset {
	return Preset{
		MinorTypes:     []CommitType{CommitTypeFeat},
		PatchTypes:     []CommitType{CommitTypeFix},
		BreakingMarker: true,
		BreakingFooter: true,
	}
}

func builtinPresets() []Preset {
	return []Preset{
		{
			Name:           PresetConventionalCommits,
			MinorTypes:     []CommitType{CommitTypeFeat},
			PatchTypes:     []CommitType{CommitTypeFix, CommitTypePerf},
			BreakingMarker: true,
			BreakingFooter: true,
		},
		{
			Name:           PresetAngular,
			MinorTypes:     []CommitType{CommitTypeFeat},
			PatchTypes:     []CommitType{CommitTypeFix, CommitTypePerf},
			BreakingFooter: true,
		},
	}
}

// Validate checks that the preset can classify commits.
func (p Preset) Validate() error {
	if !p.BreakingMarker && !p.BreakingFooter && len(p.MinorTypes) == 0 && len(p.PatchTypes) == 0 {
		return fmt.Errorf("%w: %q has no rules", ErrInvalidPreset, p.Name)
	}
	for _, t := range slices.Concat(p.MinorTypes, p.PatchTypes) {
		if strings.TrimSpace(string(t)) == "" {
			return fmt.Errorf("%w: %q has an empty commit type", ErrInvalidPreset, p.Name)
		}
	}
	for _, t := range p.MinorTypes {
		if slices.Contains(p.PatchTypes, t) {
			return fmt.Errorf("%w: %q maps %q to both minor and patch", ErrInvalidPreset, p.Name, t)
		}
	}
	return nil
}

func (p Preset) isBreaking(c *ConventionalCommit) bool {
	return (p.BreakingMarker && c.HasBreakingMarker()) || (p.BreakingFooter && c.HasBreakingFooter())
}

// classify returns the release type a single commit asks for.
func (p Preset) classify(c *ConventionalCommit) ReleaseType {
	switch {
	case p.isBreaking(c):
		return ReleaseTypeMajor
	case slices.Contains(p.MinorTypes, c.Type()):
		return ReleaseTypeMinor
	case slices.Contains(p.PatchTypes, c.Type()):
		return ReleaseTypePatch
	default:
		return ReleaseTypeNone
	}
}

// Recommend classifies the commits since the given reference.
// Commits that are nil (non-conventional messages) are ignored.
func (p Preset) Recommend(commits []*ConventionalCommit, since string) Recommendation {
	var breaking, features, fixes int
	kind := ReleaseTypeNone
	for _, c := range commits {
		if c == nil {
			continue
		}
		if p.isBreaking(c) {
			breaking++
		}
		switch {
		case slices.Contains(p.MinorTypes, c.Type()):
			features++
		case slices.Contains(p.PatchTypes, c.Type()):
			fixes++
		}
		kind = MaxReleaseType(kind, p.classify(c))
	}

	rec := Recommendation{Kind: kind, Preset: p.Name}
	if kind == ReleaseTypeNone {
		rec.Reason = "no relevant commits (feat/fix/breaking)"
		if since != "" {
			rec.Reason += " since " + since
		}
		return rec
	}

	verb := "are"
	if breaking == 1 {
		verb = "is"
	}
	rec.Reason = fmt.Sprintf("There %s %s, %s and %s",
		verb,
		plural(breaking, "BREAKING CHANGE", "BREAKING CHANGES"),
		plural(features, "feature", "features"),
		plural(fixes, "fix", "fixes"))
	return rec
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// PresetRegistry resolves preset names to presets.
type PresetRegistry struct {
	presets map[string]Preset
}

// NewPresetRegistry creates a registry with the built-in presets plus any
// custom ones. Custom presets replace built-ins of the same name.
func NewPresetRegistry(custom ...Preset) *PresetRegistry {
	r := &PresetRegistry{presets: make(map[string]Preset)}
	for _, p := range builtinPresets() {
		r.presets[p.Name] = p
	}
	for _, p := range custom {
		r.presets[strings.ToLower(p.Name)] = p
	}
	return r
}

// Load returns the named preset. The empty name yields DefaultPreset.
func (r *PresetRegistry) Load(name string) (Preset, error) {
	if name == "" {
		return DefaultPreset(), nil
	}
	p, ok := r.presets[strings.ToLower(name)]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	if err := p.Validate(); err != nil {
		return Preset{}, err
	}
	return p, nil
}

// Names returns the registered preset names in sorted order.
func (r *PresetRegistry) Names() []string {
	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
