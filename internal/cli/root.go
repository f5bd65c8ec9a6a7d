// Package cli provides the command-line interfaces for next-version and cursor-rules.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/relicta-tech/cursor-rules/internal/application/versioning"
	"github.com/relicta-tech/cursor-rules/internal/config"
	"github.com/relicta-tech/cursor-rules/internal/container"
	"github.com/relicta-tech/cursor-rules/internal/domain/changes"
	"github.com/relicta-tech/cursor-rules/internal/security"
)

// OutputEnv names the CI output channel variable.
const OutputEnv = "GITHUB_OUTPUT"

type nextVersionFlags struct {
	configFile string
	repo       string
	remote     string
	branch     string
	noSync     bool
	presets    []string
	manifest   string
	output     string
	stdout     bool
	logLevel   string
	verbose    bool
	noColor    bool
}

// NewRootCommand creates the next-version command.
func NewRootCommand(opts *Options) *cobra.Command {
	flags := &nextVersionFlags{}

	cmd := &cobra.Command{
		Use:   "next-version",
		Short: "Recommend the next semantic version from commit history",
		Long: `next-version inspects repository tags and commits since the last release
and recommends the next semantic version.

The current version is the highest semantic-version tag, or the version in
the metadata descriptor (package.json by default) when no such tag exists.
Commits are classified with a commit convention preset: breaking changes
bump major, features bump minor, fixes bump patch.

The result is appended to the file named by GITHUB_OUTPUT (or --output)
as current/next/type/reason, or printed to stdout as JSON.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNextVersion(cmd.Context(), opts, flags, cmd.Flags())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "", "config file (default: .next-version.yaml)")
	pf.StringVar(&flags.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable colored output")

	f := cmd.Flags()
	f.StringVar(&flags.repo, "repo", ".", "repository directory")
	f.StringVar(&flags.remote, "remote", "origin", "remote to fetch tags from")
	f.StringVar(&flags.branch, "branch", "main", "branch to fetch")
	f.BoolVar(&flags.noSync, "no-sync", false, "skip fetching tags from the remote")
	f.StringArrayVar(&flags.presets, "preset", []string{changes.PresetConventionalCommits}, "commit convention preset, tried in order (repeatable)")
	f.StringVar(&flags.manifest, "manifest", "package.json", "metadata descriptor used when no version tag exists")
	f.StringVar(&flags.output, "output", "", "output channel file (default: $GITHUB_OUTPUT)")
	f.BoolVar(&flags.stdout, "stdout", false, "print JSON to stdout even when an output channel is set")

	cmd.AddCommand(newVersionCommand("next-version", opts, &flags.verbose))
	return cmd
}

// overrides maps explicitly set flags to config keys.
func (f *nextVersionFlags) overrides(set *pflag.FlagSet) map[string]any {
	values := make(map[string]any)
	changed := func(name string) bool {
		fl := set.Lookup(name)
		return fl != nil && fl.Changed
	}

	if changed("repo") {
		values["git.path"] = f.repo
	}
	if changed("remote") {
		values["git.remote"] = f.remote
	}
	if changed("branch") {
		values["git.branch"] = f.branch
	}
	if changed("no-sync") {
		values["sync.enabled"] = !f.noSync
	}
	if changed("preset") {
		values["versioning.presets"] = f.presets
	}
	if changed("manifest") {
		values["versioning.manifest"] = f.manifest
	}
	if changed("output") {
		values["output.path"] = f.output
	}
	if changed("log-level") {
		values["output.log_level"] = f.logLevel
	}
	if changed("verbose") {
		values["output.verbose"] = f.verbose
	}
	if changed("no-color") {
		values["output.color"] = !f.noColor
	}
	return values
}

func loadConfig(configFile string, overrides map[string]any) (*config.Config, []string, error) {
	loader := config.NewLoader()
	if configFile != "" {
		loader.WithConfigPath(configFile)
	}
	loader.MergeConfig(overrides)

	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, err
	}

	validator := config.NewValidator()
	if err := validator.Validate(cfg); err != nil {
		return nil, nil, err
	}
	return cfg, validator.Warnings(), nil
}

// outputChannel returns the CI output file, or "" for stdout.
func outputChannel(cfg *config.Config, forceStdout bool, getenv func(string) string) string {
	if forceStdout {
		return ""
	}
	if cfg.Output.Path != "" {
		return cfg.Output.Path
	}
	return getenv(OutputEnv)
}

func runNextVersion(ctx context.Context, opts *Options, flags *nextVersionFlags, set *pflag.FlagSet) error {
	cfg, warnings, err := loadConfig(flags.configFile, flags.overrides(set))
	if err != nil {
		return err
	}

	if !cfg.Output.Color || security.IsCI(opts.getenv) {
		opts.DisableColor()
	}
	opts.configureLogger(cfg.Output.LogLevel, cfg.Output.Format, cfg.Output.Verbose)
	for _, w := range warnings {
		opts.Logger.Warn(w)
	}

	channel := outputChannel(cfg, flags.stdout, opts.getenv)
	c, err := container.New(ctx, cfg, container.Options{
		Channel: channel,
		Stdout:  opts.Stdout,
		Logger:  opts.SlogLogger(),
	})
	if err != nil {
		return err
	}

	report, err := c.Resolver().Run(ctx)
	if err != nil {
		if report != nil {
			opts.Logger.Debug("resolution aborted", "trace", report.Trace)
		}
		return err
	}

	logResult(opts, report, channel)
	return nil
}

func logResult(opts *Options, report *versioning.Report, channel string) {
	r := report.Result
	if channel == "" {
		opts.Logger.Debug("next version", "current", r.Current, "next", r.Next, "type", r.Type, "baseline", report.Baseline.Source)
		return
	}
	if !r.IsRelease() {
		opts.Logger.Info("no release required", "current", r.Current, "channel", channel)
		return
	}
	opts.Logger.Info("next version written", "current", r.Current, "next", r.Next, "type", r.Type, "channel", channel)
}

func newVersionCommand(name string, opts *Options, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			opts.println(cmd.OutOrStdout(), fmt.Sprintf("%s %s", name, opts.Version.Version))
			if *verbose {
				opts.println(cmd.OutOrStdout(), fmt.Sprintf("  commit: %s", opts.Version.Commit))
				opts.println(cmd.OutOrStdout(), fmt.Sprintf("  built:  %s", opts.Version.Date))
			}
		},
	}
}
