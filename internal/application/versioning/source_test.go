package versioning

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rperrors "github.com/relicta-tech/cursor-rules/internal/errors"
)

func newSource(tags *mockTagReader, manifest *mockManifest) *VersionSource {
	return NewVersionSource(NewTagLookup(tags, nil), NewManifestLookup(manifest, "package.json"))
}

func TestVersionSource_HighestValidTag(t *testing.T) {
	manifest := &mockManifest{version: "9.9.9"}
	source := newSource(&mockTagReader{names: []string{"v1.2.0", "1.2.0", "not-a-version"}}, manifest)

	b, err := source.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", b.Version)
	assert.Equal(t, "tag:v1.2.0", b.Source)
	assert.Zero(t, manifest.calls, "descriptor must not be read when a tag exists")
}

func TestVersionSource_MaximumIndependentOfOrder(t *testing.T) {
	orders := [][]string{
		{"v0.9.0", "v1.10.0", "v1.9.3", "v1.10.0-rc.1"},
		{"v1.10.0-rc.1", "v1.9.3", "v1.10.0", "v0.9.0"},
		{"v1.9.3", "v0.9.0", "v1.10.0-rc.1", "v1.10.0"},
	}

	for _, names := range orders {
		b, err := newSource(&mockTagReader{names: names}, &mockManifest{}).Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "1.10.0", b.Version, "order %v", names)
	}
}

func TestVersionSource_FallsBackToManifest(t *testing.T) {
	tests := []struct {
		name string
		tags *mockTagReader
	}{
		{"no tags", &mockTagReader{}},
		{"only invalid tags", &mockTagReader{names: []string{"latest", "release-1", "1.2"}}},
		{"tag enumeration fails", &mockTagReader{err: errors.New("git: command not found")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manifest := &mockManifest{version: "0.4.0"}
			b, err := newSource(tt.tags, manifest).Resolve(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "0.4.0", b.Version)
			assert.Equal(t, "manifest:package.json", b.Source)
			assert.Equal(t, 1, manifest.calls)
		})
	}
}

func TestVersionSource_ManifestFailureIsFatal(t *testing.T) {
	readErr := rperrors.NotFoundWrap(errors.New("open package.json: no such file"), "manifest.ReadVersion", "metadata descriptor not found")
	_, err := newSource(&mockTagReader{}, &mockManifest{err: readErr}).Resolve(context.Background())
	require.Error(t, err)
	assert.True(t, rperrors.IsKind(err, rperrors.KindNotFound))
}

func TestVersionSource_EmptyChain(t *testing.T) {
	_, err := NewVersionSource().Resolve(context.Background())
	require.Error(t, err)
	assert.True(t, rperrors.IsKind(err, rperrors.KindNotFound))
}

func TestVersionSource_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newSource(&mockTagReader{names: []string{"v1.0.0"}}, &mockManifest{}).Resolve(ctx)
	require.Error(t, err)
	assert.True(t, rperrors.IsKind(err, rperrors.KindCanceled))
	assert.ErrorIs(t, err, context.Canceled)
}
