// Package main is the entry point for the next-version CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/relicta-tech/cursor-rules/internal/cli"
	"github.com/relicta-tech/cursor-rules/internal/version"
)

// Version information set by ldflags during build.
var (
	buildVersion = "dev"
	commit       = "none"
	date         = "unknown"
)

func main() {
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	opts := cli.NewOptions()
	opts.SetVersion(version.Resolve(buildVersion, commit, date))
	cmd := cli.NewRootCommand(opts)

	code := cli.Run(context.Background(), sigChan, cmd.ExecuteContext, nil, os.Stderr, os.Exit)
	os.Exit(code)
}
