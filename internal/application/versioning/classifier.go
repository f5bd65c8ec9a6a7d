package versioning

import (
	"context"
	"errors"
	"log/slog"

	"github.com/relicta-tech/cursor-rules/internal/domain/changes"
	"github.com/relicta-tech/cursor-rules/internal/domain/sourcecontrol"
	rperrors "github.com/relicta-tech/cursor-rules/internal/errors"
)

// CommitClassifier classifies the commits since the last release with a
// preset from the registry.
type CommitClassifier struct {
	history  sourcecontrol.HistoryReader
	registry *changes.PresetRegistry
	logger   *slog.Logger
}

// NewCommitClassifier creates a CommitClassifier. A nil logger discards.
func NewCommitClassifier(history sourcecontrol.HistoryReader, registry *changes.PresetRegistry, logger *slog.Logger) *CommitClassifier {
	return &CommitClassifier{history: history, registry: registry, logger: orDiscard(logger)}
}

// Classify implements Classifier.
func (c *CommitClassifier) Classify(ctx context.Context, name string) (changes.Recommendation, error) {
	const op = "versioning.Classify"

	preset, err := c.registry.Load(name)
	if err != nil {
		if errors.Is(err, changes.ErrPresetNotFound) {
			return changes.Recommendation{}, rperrors.NotFoundWrap(err, op, "failed to load preset")
		}
		return changes.Recommendation{}, rperrors.VersionWrap(err, op, "failed to load preset")
	}

	history, err := c.history.CommitsSinceLastRelease(ctx)
	if err != nil {
		return changes.Recommendation{}, err
	}

	parsed := make([]*changes.ConventionalCommit, 0, len(history.Commits))
	for _, commit := range history.Commits {
		cc := changes.ParseConventionalCommit(commit.Message())
		if cc == nil {
			c.logger.Debug("skipping non-conventional commit", "commit", commit.ShortHash(), "subject", commit.Subject())
			continue
		}
		c.logger.Debug("classified commit", "commit", commit.ShortHash(), "header", cc.String())
		parsed = append(parsed, cc)
	}

	return preset.Recommend(parsed, history.Since()), nil
}
