// Package sourcecontrol provides domain types for source control operations.
package sourcecontrol

import (
	"sort"

	"github.com/relicta-tech/cursor-rules/internal/domain/version"
)

// Tag represents a git tag entity.
type Tag struct {
	name    string
	hash    CommitHash
	version *version.SemanticVersion
}

// NewTag creates a new Tag entity. The version is set when the name parses.
func NewTag(name string, hash CommitHash) *Tag {
	t := &Tag{
		name: name,
		hash: hash,
	}

	if ver, err := version.Parse(name); err == nil {
		t.version = &ver
	}

	return t
}

// Name returns the tag name.
func (t *Tag) Name() string {
	return t.name
}

// Hash returns the commit hash the tag points to.
func (t *Tag) Hash() CommitHash {
	return t.hash
}

// IsVersionTag returns true if this tag represents a version.
func (t *Tag) IsVersionTag() bool {
	return t.version != nil
}

// Version returns the semantic version if this is a version tag.
func (t *Tag) Version() *version.SemanticVersion {
	return t.version
}

// TagList is a list of tags.
type TagList []*Tag

// VersionTags returns only version tags, preserving order.
func (tl TagList) VersionTags() TagList {
	result := make(TagList, 0, len(tl))
	for _, t := range tl {
		if t != nil && t.IsVersionTag() {
			result = append(result, t)
		}
	}
	return result
}

// SortedDescending returns the version tags ordered from highest to lowest
// precedence. Tags with equal versions keep their relative order.
func (tl TagList) SortedDescending() TagList {
	result := tl.VersionTags()
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].version.GreaterThan(*result[j].version)
	})
	return result
}

// Latest returns the highest version tag, or nil if there is none.
func (tl TagList) Latest() *Tag {
	sorted := tl.SortedDescending()
	if len(sorted) == 0 {
		return nil
	}
	return sorted[0]
}
