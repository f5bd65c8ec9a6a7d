// Package sourcecontrol provides domain types for source control operations.
package sourcecontrol

import "strings"

// CommitHash represents a git commit hash.
type CommitHash string

// Short returns the short (7 character) hash.
func (h CommitHash) Short() string {
	if len(h) > 7 {
		return string(h[:7])
	}
	return string(h)
}

// String returns the full hash.
func (h CommitHash) String() string {
	return string(h)
}

// Commit is a commit reachable from HEAD. Only the hash and message take
// part in release classification.
type Commit struct {
	hash    CommitHash
	message string
}

// NewCommit creates a new Commit.
func NewCommit(hash CommitHash, message string) *Commit {
	return &Commit{hash: hash, message: message}
}

// Hash returns the commit hash.
func (c *Commit) Hash() CommitHash {
	return c.hash
}

// ShortHash returns the short commit hash.
func (c *Commit) ShortHash() string {
	return c.hash.Short()
}

// Message returns the full commit message.
func (c *Commit) Message() string {
	return c.message
}

// Subject returns the first line of the commit message.
func (c *Commit) Subject() string {
	subject, _, _ := strings.Cut(c.message, "\n")
	return strings.TrimRight(subject, "\r")
}
