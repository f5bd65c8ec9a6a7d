package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/relicta-tech/cursor-rules/internal/domain/sourcecontrol"
	rperrors "github.com/relicta-tech/cursor-rules/internal/errors"
)

// Backend selects the git implementation.
type Backend string

const (
	// BackendGoGit reads the repository with go-git.
	BackendGoGit Backend = "gogit"
	// BackendCLI shells out to the git binary.
	BackendCLI Backend = "cli"
)

// IsValid returns true if the backend is known.
func (b Backend) IsValid() bool {
	return b == BackendGoGit || b == BackendCLI
}

// ParseBackend parses a backend name. The empty string selects BackendGoGit.
func ParseBackend(s string) (Backend, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return BackendGoGit, nil
	}
	b := Backend(s)
	if !b.IsValid() {
		return "", fmt.Errorf("unknown git backend %q (want %s or %s)", s, BackendGoGit, BackendCLI)
	}
	return b, nil
}

// Open opens the repository at path with the chosen backend.
func Open(ctx context.Context, path string, backend Backend) (sourcecontrol.Repository, error) {
	switch backend {
	case BackendCLI:
		return OpenCLI(ctx, path)
	case BackendGoGit, "":
		return OpenGoGit(path)
	default:
		return nil, rperrors.Config("git.Open", fmt.Sprintf("unknown git backend %q", backend))
	}
}
