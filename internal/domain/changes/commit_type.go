// Package changes provides domain types for analyzing commit changes.
package changes

import "strings"

// CommitType is the type token of a conventional commit header, lowercased.
// Any token is accepted so custom presets can classify their own types.
type CommitType string

// Commit types used by the built-in presets.
const (
	CommitTypeFeat CommitType = "feat"
	CommitTypeFix  CommitType = "fix"
	CommitTypePerf CommitType = "perf"
)

// NewCommitType normalizes a type token as written in a header or config.
func NewCommitType(s string) CommitType {
	return CommitType(strings.ToLower(strings.TrimSpace(s)))
}
