// Package git provides read-only git adapters for version resolution.
package git

import (
	"context"
	"time"
)

// Default timeouts for git operations to prevent hangs on slow/unreachable remotes.
const (
	// DefaultLocalTimeout is the timeout for local git operations (read-only).
	DefaultLocalTimeout = 30 * time.Second

	// DefaultRemoteTimeout is the timeout for remote git operations (network calls).
	DefaultRemoteTimeout = 60 * time.Second
)

// withLocalTimeout applies a timeout for local git operations.
func withLocalTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return withTimeout(ctx, DefaultLocalTimeout)
}

// withRemoteTimeout applies a timeout for remote git operations.
func withRemoteTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return withTimeout(ctx, DefaultRemoteTimeout)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	// Don't override if context already has a shorter deadline
	if deadline, ok := ctx.Deadline(); ok {
		if time.Until(deadline) < d {
			return ctx, func() {}
		}
	}
	return context.WithTimeout(ctx, d)
}
