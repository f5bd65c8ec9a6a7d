package versioning

import (
	"context"

	"github.com/relicta-tech/cursor-rules/internal/domain/changes"
	"github.com/relicta-tech/cursor-rules/internal/domain/sourcecontrol"
)

type mockTagReader struct {
	names []string
	err   error
}

func (m *mockTagReader) ListTags(_ context.Context) (sourcecontrol.TagList, error) {
	if m.err != nil {
		return nil, m.err
	}
	tags := make(sourcecontrol.TagList, 0, len(m.names))
	for _, n := range m.names {
		tags = append(tags, sourcecontrol.NewTag(n, sourcecontrol.CommitHash("h-"+n)))
	}
	return tags, nil
}

type mockSyncer struct {
	calls  int
	remote string
	branch string
	err    error
}

func (m *mockSyncer) FetchTags(_ context.Context, remote, branch string) error {
	m.calls++
	m.remote, m.branch = remote, branch
	return m.err
}

type mockManifest struct {
	version string
	err     error
	calls   int
}

func (m *mockManifest) ReadVersion(_ string) (string, error) {
	m.calls++
	return m.version, m.err
}

type mockClassifier struct {
	results map[string]changes.Recommendation
	errs    map[string]error
	calls   []string
}

func (m *mockClassifier) Classify(_ context.Context, preset string) (changes.Recommendation, error) {
	m.calls = append(m.calls, preset)
	if err, ok := m.errs[preset]; ok {
		return changes.Recommendation{}, err
	}
	return m.results[preset], nil
}

type recordingEmitter struct {
	results []Result
	err     error
}

func (e *recordingEmitter) Emit(result Result) error {
	if e.err != nil {
		return e.err
	}
	e.results = append(e.results, result)
	return nil
}

type mockHistory struct {
	history sourcecontrol.History
	err     error
	calls   int
}

func (m *mockHistory) CommitsSinceLastRelease(_ context.Context) (sourcecontrol.History, error) {
	m.calls++
	return m.history, m.err
}
