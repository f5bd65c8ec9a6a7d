package versioning

import (
	"context"
	"log/slog"

	"github.com/relicta-tech/cursor-rules/internal/domain/sourcecontrol"
	rperrors "github.com/relicta-tech/cursor-rules/internal/errors"
)

// Baseline is the current version before any increment.
type Baseline struct {
	// Version is the version string as resolved. Tag versions are normalized
	// (v1.2.0 becomes 1.2.0); descriptor versions are kept verbatim.
	Version string
	// Source names the lookup that produced it, e.g. "tag:v1.2.0".
	Source string
}

// BaselineLookup is one strategy for finding the baseline. It reports
// found=false when it has no answer and an error only when the failure
// must stop the resolution.
type BaselineLookup interface {
	Lookup(ctx context.Context) (baseline Baseline, found bool, err error)
}

// ManifestReader reads the version field of a metadata descriptor.
type ManifestReader interface {
	ReadVersion(path string) (string, error)
}

// VersionSource resolves the baseline by trying lookups in order.
type VersionSource struct {
	lookups []BaselineLookup
}

// NewVersionSource creates a VersionSource from an ordered lookup chain.
func NewVersionSource(lookups ...BaselineLookup) *VersionSource {
	return &VersionSource{lookups: lookups}
}

// Resolve returns the first baseline found along the chain.
func (s *VersionSource) Resolve(ctx context.Context) (Baseline, error) {
	const op = "versioning.Resolve"

	for _, l := range s.lookups {
		if err := ctx.Err(); err != nil {
			return Baseline{}, rperrors.CanceledWrap(err, op)
		}
		b, found, err := l.Lookup(ctx)
		if err != nil {
			return Baseline{}, err
		}
		if found {
			return b, nil
		}
	}
	return Baseline{}, rperrors.New(rperrors.KindNotFound, "no baseline version: no version tags and no descriptor lookup succeeded")
}

// TagLookup picks the highest version tag. Tag enumeration failures count
// as an empty tag list.
type TagLookup struct {
	tags   sourcecontrol.TagReader
	logger *slog.Logger
}

// NewTagLookup creates a TagLookup. A nil logger discards.
func NewTagLookup(tags sourcecontrol.TagReader, logger *slog.Logger) *TagLookup {
	return &TagLookup{
		tags:   tags,
		logger: orDiscard(logger),
	}
}

// Lookup implements BaselineLookup.
func (l *TagLookup) Lookup(ctx context.Context) (Baseline, bool, error) {
	tags, err := l.tags.ListTags(ctx)
	if err != nil {
		l.logger.Debug("tag enumeration failed, treating as no tags", "error", err)
		return Baseline{}, false, nil
	}

	latest := tags.Latest()
	if latest == nil {
		l.logger.Debug("no version tags found", "tags", len(tags))
		return Baseline{}, false, nil
	}

	return Baseline{
		Version: latest.Version().String(),
		Source:  "tag:" + latest.Name(),
	}, true, nil
}

// ManifestLookup reads the baseline from a metadata descriptor. Any failure
// is fatal since it is the last resort.
type ManifestLookup struct {
	reader ManifestReader
	path   string
}

// NewManifestLookup creates a ManifestLookup for the descriptor at path.
func NewManifestLookup(reader ManifestReader, path string) *ManifestLookup {
	return &ManifestLookup{reader: reader, path: path}
}

// Lookup implements BaselineLookup.
func (l *ManifestLookup) Lookup(_ context.Context) (Baseline, bool, error) {
	v, err := l.reader.ReadVersion(l.path)
	if err != nil {
		return Baseline{}, false, err
	}
	return Baseline{Version: v, Source: "manifest:" + l.path}, true, nil
}
