package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	rperrors "github.com/relicta-tech/cursor-rules/internal/errors"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInterrupted = 130
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Run executes fn with a context canceled on the first signal from sigChan and
// returns the process exit code. A second signal, or a shutdown taking longer
// than shutdownTimeout, calls exit(1).
func Run(ctx context.Context, sigChan <-chan os.Signal, fn func(context.Context) error, cleanup func(), stderr io.Writer, exit func(int)) int {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case sig := <-sigChan:
			fmt.Fprintf(stderr, "\nReceived signal %v, shutting down...\n", sig)
			cancel()
		case <-done:
			return
		}

		timer := time.NewTimer(shutdownTimeout)
		defer timer.Stop()
		select {
		case <-done:
		case <-timer.C:
			fmt.Fprintf(stderr, "\nShutdown timeout (%v) exceeded, forcing exit\n", shutdownTimeout)
			exit(ExitFailure)
		case sig := <-sigChan:
			fmt.Fprintf(stderr, "\nReceived second signal %v, forcing exit\n", sig)
			exit(ExitFailure)
		}
	}()

	err := fn(ctx)
	close(done)
	wg.Wait()
	if cleanup != nil {
		cleanup()
	}

	switch {
	case err == nil:
		return ExitOK
	case ctx.Err() != nil || rperrors.IsKind(err, rperrors.KindCanceled):
		fmt.Fprintln(stderr, "Operation canceled")
		return ExitInterrupted
	case errors.Is(err, ErrNoCategory):
		// Usage hint already printed.
		return ExitFailure
	default:
		fmt.Fprintf(stderr, "Error: %v\n", rperrors.RedactError(err))
		return ExitFailure
	}
}
