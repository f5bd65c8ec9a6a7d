package versioning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/relicta-tech/cursor-rules/internal/domain/changes"
	rperrors "github.com/relicta-tech/cursor-rules/internal/errors"
)

// Classifier turns commit history into a recommendation under one preset.
// The empty preset name selects the default rules.
type Classifier interface {
	Classify(ctx context.Context, preset string) (changes.Recommendation, error)
}

// CommitBumpAnalyzer tries a list of presets in order and returns the first
// successful classification. The default rules are always tried last.
type CommitBumpAnalyzer struct {
	classifier Classifier
	presets    []string
	logger     *slog.Logger
}

// NewCommitBumpAnalyzer creates an analyzer trying presets in the given order.
// A nil logger discards.
func NewCommitBumpAnalyzer(classifier Classifier, logger *slog.Logger, presets ...string) *CommitBumpAnalyzer {
	seen := make(map[string]bool, len(presets)+1)
	ordered := make([]string, 0, len(presets)+1)
	for _, p := range append(append([]string(nil), presets...), "") {
		if seen[p] {
			continue
		}
		seen[p] = true
		ordered = append(ordered, p)
	}

	return &CommitBumpAnalyzer{
		classifier: classifier,
		presets:    ordered,
		logger:     orDiscard(logger),
	}
}

// Presets returns the attempt order.
func (a *CommitBumpAnalyzer) Presets() []string {
	return append([]string(nil), a.presets...)
}

// Analyze returns the recommendation of the first preset that succeeds.
func (a *CommitBumpAnalyzer) Analyze(ctx context.Context) (changes.Recommendation, error) {
	const op = "versioning.Analyze"

	var errs []error
	for _, preset := range a.presets {
		if err := ctx.Err(); err != nil {
			return changes.Recommendation{}, rperrors.CanceledWrap(err, op)
		}

		rec, err := a.classifier.Classify(ctx, preset)
		if err == nil {
			if len(errs) > 0 {
				a.logger.Debug("classification recovered with fallback preset", "preset", presetLabel(preset), "failed_attempts", len(errs))
			}
			return rec, nil
		}

		a.logger.Debug("classification failed", "preset", presetLabel(preset), "error", err)
		errs = append(errs, fmt.Errorf("preset %s: %w", presetLabel(preset), err))
	}

	return changes.Recommendation{}, rperrors.VersionWrap(errors.Join(errs...), op, "commit classification failed")
}

func presetLabel(name string) string {
	if name == "" {
		return "(default)"
	}
	return name
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
