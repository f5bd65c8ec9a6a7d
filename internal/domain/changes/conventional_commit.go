// Package changes provides domain types for analyzing commit changes.
package changes

import (
	"regexp"
	"strings"
)

// ConventionalCommit is the part of a conventional commit that drives
// release classification.
type ConventionalCommit struct {
	commitType CommitType
	scope      string
	subject    string

	// bang is set by the "!" header marker, breakingFooter by a
	// BREAKING CHANGE trailer. Presets may honor either or both.
	bang           bool
	breakingFooter bool
}

// ConventionalCommitOption is a functional option for creating commits.
type ConventionalCommitOption func(*ConventionalCommit)

// WithScope sets the commit scope.
func WithScope(scope string) ConventionalCommitOption {
	return func(c *ConventionalCommit) {
		c.scope = scope
	}
}

// WithBreakingFooter marks the commit as breaking through a BREAKING CHANGE trailer.
func WithBreakingFooter() ConventionalCommitOption {
	return func(c *ConventionalCommit) {
		c.breakingFooter = true
	}
}

// WithBreakingMarker marks the commit as breaking through the "!" header marker.
func WithBreakingMarker() ConventionalCommitOption {
	return func(c *ConventionalCommit) {
		c.bang = true
	}
}

// NewConventionalCommit creates a new ConventionalCommit.
func NewConventionalCommit(commitType CommitType, subject string, opts ...ConventionalCommitOption) *ConventionalCommit {
	c := &ConventionalCommit{commitType: commitType, subject: subject}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	// type(scope)!: subject, with scope and ! optional
	headerRegex = regexp.MustCompile(`^(\w+)(?:\(([^)]+)\))?(!)?\s*:\s*(.+)$`)

	breakingFooterRegex = regexp.MustCompile(`^BREAKING[ -]CHANGE:\s*\S`)
)

// ParseConventionalCommit parses a commit message. It returns nil when the
// header does not follow the conventional format.
func ParseConventionalCommit(message string) *ConventionalCommit {
	lines := strings.Split(strings.TrimSpace(message), "\n")
	m := headerRegex.FindStringSubmatch(strings.TrimSpace(lines[0]))
	if m == nil {
		return nil
	}

	c := &ConventionalCommit{
		commitType: NewCommitType(m[1]),
		scope:      m[2],
		bang:       m[3] == "!",
		subject:    strings.TrimSpace(m[4]),
	}
	for _, line := range lines[1:] {
		if breakingFooterRegex.MatchString(strings.TrimRight(line, "\r")) {
			c.breakingFooter = true
			break
		}
	}
	return c
}

// Type returns the commit type.
func (c *ConventionalCommit) Type() CommitType {
	return c.commitType
}

// HasBreakingMarker returns true if the header carries the "!" marker.
func (c *ConventionalCommit) HasBreakingMarker() bool {
	return c.bang
}

// HasBreakingFooter returns true if a BREAKING CHANGE trailer is present.
func (c *ConventionalCommit) HasBreakingFooter() bool {
	return c.breakingFooter
}

// String renders the header, e.g. "feat(ui)!: add x".
func (c *ConventionalCommit) String() string {
	var sb strings.Builder
	sb.WriteString(string(c.commitType))
	if c.scope != "" {
		sb.WriteString("(" + c.scope + ")")
	}
	if c.bang {
		sb.WriteString("!")
	}
	sb.WriteString(": " + c.subject)
	return sb.String()
}
