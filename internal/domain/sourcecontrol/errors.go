// Package sourcecontrol provides domain types for source control operations.
package sourcecontrol

import "errors"

// Domain errors for source control operations.
var (
	// ErrNotARepository indicates the path is not a git repository.
	ErrNotARepository = errors.New("not a git repository")

	// ErrRemoteNotFound indicates the remote was not found.
	ErrRemoteNotFound = errors.New("remote not found")

	// ErrFetchFailed indicates a fetch operation failed.
	ErrFetchFailed = errors.New("fetch failed")
)
