package versioning

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relicta-tech/cursor-rules/internal/domain/changes"
	"github.com/relicta-tech/cursor-rules/internal/domain/sourcecontrol"
	rperrors "github.com/relicta-tech/cursor-rules/internal/errors"
)

func TestCommitBumpAnalyzer_PresetOrder(t *testing.T) {
	a := NewCommitBumpAnalyzer(&mockClassifier{}, nil, "conventionalcommits", "angular", "conventionalcommits", "")
	assert.Equal(t, []string{"conventionalcommits", "angular", ""}, a.Presets())

	a = NewCommitBumpAnalyzer(&mockClassifier{}, nil)
	assert.Equal(t, []string{""}, a.Presets())
}

func TestCommitBumpAnalyzer_PrimarySucceeds(t *testing.T) {
	classifier := &mockClassifier{results: map[string]changes.Recommendation{
		"conventionalcommits": {Kind: changes.ReleaseTypePatch, Reason: "fix: null pointer", Preset: "conventionalcommits"},
	}}

	rec, err := NewCommitBumpAnalyzer(classifier, nil, "conventionalcommits").Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, changes.ReleaseTypePatch, rec.Kind)
	assert.Equal(t, []string{"conventionalcommits"}, classifier.calls)
}

func TestCommitBumpAnalyzer_FallbackAfterPresetFailure(t *testing.T) {
	classifier := &mockClassifier{
		errs: map[string]error{"conventionalcommits": changes.ErrPresetNotFound},
		results: map[string]changes.Recommendation{
			"": {Kind: changes.ReleaseTypeMinor, Reason: "There are 0 BREAKING CHANGES, 1 feature and 0 fixes"},
		},
	}

	rec, err := NewCommitBumpAnalyzer(classifier, nil, "conventionalcommits").Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, changes.ReleaseTypeMinor, rec.Kind)
	assert.Equal(t, []string{"conventionalcommits", ""}, classifier.calls, "exactly one retry with the default rules")
}

func TestCommitBumpAnalyzer_AllAttemptsFail(t *testing.T) {
	primary := errors.New("preset missing")
	fallback := errors.New("history unreadable")
	classifier := &mockClassifier{errs: map[string]error{"conventionalcommits": primary, "": fallback}}

	_, err := NewCommitBumpAnalyzer(classifier, nil, "conventionalcommits").Analyze(context.Background())
	require.Error(t, err)
	assert.True(t, rperrors.IsKind(err, rperrors.KindVersion))
	assert.ErrorIs(t, err, primary)
	assert.ErrorIs(t, err, fallback)
	assert.Len(t, classifier.calls, 2)
}

func TestCommitBumpAnalyzer_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	classifier := &mockClassifier{}
	_, err := NewCommitBumpAnalyzer(classifier, nil, "conventionalcommits").Analyze(ctx)
	assert.True(t, rperrors.IsKind(err, rperrors.KindCanceled))
	assert.Empty(t, classifier.calls)
}

func commit(hash, message string) *sourcecontrol.Commit {
	return sourcecontrol.NewCommit(sourcecontrol.CommitHash(hash), message)
}

func TestCommitClassifier_Classify(t *testing.T) {
	history := &mockHistory{history: sourcecontrol.History{
		Commits: []*sourcecontrol.Commit{
			commit("c3", "docs: readme"),
			commit("c2", "feat(api)!: remove v1"),
			commit("c1", "fix: null pointer"),
			commit("c0", "Merge pull request #4"),
		},
		LastRelease: sourcecontrol.NewTag("v1.4.2", "base"),
	}}
	classifier := NewCommitClassifier(history, changes.NewPresetRegistry(), nil)

	rec, err := classifier.Classify(context.Background(), "conventionalcommits")
	require.NoError(t, err)
	assert.Equal(t, changes.ReleaseTypeMajor, rec.Kind)
	assert.Equal(t, "There is 1 BREAKING CHANGE, 1 feature and 1 fix", rec.Reason)
	assert.Equal(t, "conventionalcommits", rec.Preset)

	rec, err = classifier.Classify(context.Background(), "angular")
	require.NoError(t, err)
	assert.Equal(t, changes.ReleaseTypeMinor, rec.Kind, "angular ignores the ! marker")
}

func TestCommitClassifier_NoRelevantCommits(t *testing.T) {
	history := &mockHistory{history: sourcecontrol.History{
		Commits:     []*sourcecontrol.Commit{commit("c1", "chore: deps")},
		LastRelease: sourcecontrol.NewTag("v0.4.0", "base"),
	}}

	rec, err := NewCommitClassifier(history, changes.NewPresetRegistry(), nil).Classify(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, changes.ReleaseTypeNone, rec.Kind)
	assert.Equal(t, "no relevant commits (feat/fix/breaking) since v0.4.0", rec.Reason)
}

func TestCommitClassifier_Errors(t *testing.T) {
	history := &mockHistory{}
	classifier := NewCommitClassifier(history, changes.NewPresetRegistry(), nil)

	_, err := classifier.Classify(context.Background(), "gitmoji")
	require.Error(t, err)
	assert.True(t, rperrors.IsKind(err, rperrors.KindNotFound))
	assert.ErrorIs(t, err, changes.ErrPresetNotFound)
	assert.Zero(t, history.calls, "history is not read when the preset cannot load")

	history.err = rperrors.GitWrap(errors.New("bad object"), "git.CommitsSinceLastRelease", "failed")
	_, err = classifier.Classify(context.Background(), "")
	assert.True(t, rperrors.IsKind(err, rperrors.KindGit))
}

func TestCommitClassifier_LogsToInjectedLogger(t *testing.T) {
	history := &mockHistory{history: sourcecontrol.History{
		Commits: []*sourcecontrol.Commit{
			commit("0123456789abcdef", "feat(api): add search"),
			commit("fedcba9876543210", "Merge pull request #4\n\nfrom branch"),
		},
	}}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := NewCommitClassifier(history, changes.NewPresetRegistry(), logger).Classify(context.Background(), "")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "classified commit")
	assert.Contains(t, out, "commit=0123456")
	assert.Contains(t, out, `header="feat(api): add search"`)
	assert.Contains(t, out, "skipping non-conventional commit")
	assert.Contains(t, out, `subject="Merge pull request #4"`)
}

func TestCommitBumpAnalyzer_LogsToInjectedLogger(t *testing.T) {
	classifier := &mockClassifier{
		errs: map[string]error{"conventionalcommits": errors.New("broken preset")},
		results: map[string]changes.Recommendation{
			"": {Kind: changes.ReleaseTypePatch, Reason: "fix: x"},
		},
	}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := NewCommitBumpAnalyzer(classifier, logger, "conventionalcommits").Analyze(context.Background())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "classification failed")
	assert.Contains(t, buf.String(), "classification recovered with fallback preset")
}
