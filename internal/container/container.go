// Package container wires the next-version components from configuration.
package container

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/relicta-tech/cursor-rules/internal/application/versioning"
	"github.com/relicta-tech/cursor-rules/internal/config"
	"github.com/relicta-tech/cursor-rules/internal/domain/sourcecontrol"
	"github.com/relicta-tech/cursor-rules/internal/errors"
	gitadapter "github.com/relicta-tech/cursor-rules/internal/infrastructure/git"
	"github.com/relicta-tech/cursor-rules/internal/infrastructure/manifest"
	"github.com/relicta-tech/cursor-rules/internal/infrastructure/output"
)

// Container holds the infrastructure and application components for one run.
type Container struct {
	config *config.Config
	logger *slog.Logger

	repo     sourcecontrol.Repository
	manifest *manifest.FileReader
	emitter  *output.Emitter

	resolver *versioning.Resolver
}

// Options carries process-level inputs that are not part of the configuration.
type Options struct {
	// Channel is the CI output file path; empty writes JSON to Stdout.
	Channel string
	// Stdout receives the JSON result when no channel is set.
	Stdout io.Writer
	// Logger is used by the application layer. Nil selects slog.Default.
	Logger *slog.Logger
}

// New opens the repository and builds the resolver.
func New(ctx context.Context, cfg *config.Config, opts Options) (*Container, error) {
	const op = "container.New"

	if cfg == nil {
		return nil, errors.Config(op, "configuration is required")
	}

	backend, err := gitadapter.ParseBackend(cfg.Git.Backend)
	if err != nil {
		return nil, errors.ConfigWrap(err, op, "invalid git backend")
	}

	repo, err := gitadapter.Open(ctx, cfg.Git.Path, backend)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		config:   cfg,
		logger:   logger,
		repo:     repo,
		manifest: manifest.NewFileReader(),
		emitter:  output.NewEmitter(opts.Channel, opts.Stdout),
	}
	c.resolver = c.buildResolver()
	return c, nil
}

func (c *Container) buildResolver() *versioning.Resolver {
	source := versioning.NewVersionSource(
		versioning.NewTagLookup(c.repo, c.logger.With("lookup", "tag")),
		versioning.NewManifestLookup(c.manifest, c.ManifestPath()),
	)
	classifier := versioning.NewCommitClassifier(c.repo, c.config.Versioning.Registry(), c.logger.With("component", "classifier"))
	analyzer := versioning.NewCommitBumpAnalyzer(classifier, c.logger.With("component", "analyzer"), c.config.Versioning.Presets...)
	computer := versioning.NewVersionComputer(c.config.Versioning.Placeholder)

	return versioning.NewResolver(source, analyzer, computer, c.emitter,
		versioning.WithRemoteSync(c.repo, versioning.SyncOptions{
			Enabled: c.config.Sync.Enabled,
			Remote:  c.config.Git.Remote,
			Branch:  c.config.Git.Branch,
		}),
		versioning.WithLogger(c.logger.With("usecase", "resolve_next_version")),
	)
}

// ManifestPath returns the metadata descriptor path. Relative paths are
// resolved against the repository directory.
func (c *Container) ManifestPath() string {
	p := c.config.Versioning.Manifest
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.config.Git.Path, p)
}

// Resolver returns the next-version use case.
func (c *Container) Resolver() *versioning.Resolver {
	return c.resolver
}

// Repository returns the opened repository.
func (c *Container) Repository() sourcecontrol.Repository {
	return c.repo
}

// Emitter returns the result emitter.
func (c *Container) Emitter() *output.Emitter {
	return c.emitter
}
