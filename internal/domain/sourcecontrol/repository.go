// Package sourcecontrol provides domain types for source control operations.
package sourcecontrol

import "context"

// History is the part of HEAD's history that has not been released yet.
type History struct {
	// Commits are ordered newest first.
	Commits []*Commit
	// LastRelease is the most recent version tag reachable from HEAD, or nil.
	LastRelease *Tag
}

// Since returns the name of the last release tag, or "" if there is none.
func (h History) Since() string {
	if h.LastRelease == nil {
		return ""
	}
	return h.LastRelease.Name()
}

// TagReader provides read access to tags.
type TagReader interface {
	ListTags(ctx context.Context) (TagList, error)
}

// RemoteSyncer refreshes tag and branch information from a remote.
type RemoteSyncer interface {
	FetchTags(ctx context.Context, remote, branch string) error
}

// HistoryReader provides read access to unreleased commits.
type HistoryReader interface {
	CommitsSinceLastRelease(ctx context.Context) (History, error)
}

// Repository defines the read-only git operations used to resolve versions.
// Implemented in the infrastructure layer.
type Repository interface {
	TagReader
	RemoteSyncer
	HistoryReader
}
