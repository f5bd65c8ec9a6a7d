package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relicta-tech/cursor-rules/internal/application/versioning"
	rperrors "github.com/relicta-tech/cursor-rules/internal/errors"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func sampleResult() versioning.Result {
	return versioning.Result{
		Current: "2.0.0",
		Next:    "2.0.1",
		Type:    "patch",
		Reason:  "There are 0 BREAKING CHANGES, 0 features and 1 fix",
	}
}

func TestEmitter_StdoutJSON(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter("", &buf)

	require.NoError(t, e.Emit(sampleResult()))
	assert.Equal(t,
		`{"current":"2.0.0","next":"2.0.1","type":"patch","reason":"There are 0 BREAKING CHANGES, 0 features and 1 fix"}`+"\n",
		buf.String())
	assert.Empty(t, e.Channel())
}

func TestEmitter_StdoutJSONKeepsMarkup(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter("", &buf)

	result := sampleResult()
	result.Reason = "feat: a<b & c>d"
	require.NoError(t, e.Emit(result))
	assert.Contains(t, buf.String(), `"reason":"feat: a<b & c>d"`)
	assert.NotContains(t, buf.String(), `\u003c`)
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestEmitter_StdoutFailure(t *testing.T) {
	err := NewEmitter("", failingWriter{}).Emit(sampleResult())
	require.Error(t, err)
	assert.True(t, rperrors.IsKind(err, rperrors.KindIO))
}

func TestEmitter_Channel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "github_output")
	require.NoError(t, os.WriteFile(path, []byte("previous=value\n"), 0o644))

	var stdout bytes.Buffer
	e := NewEmitter(path, &stdout)
	result := sampleResult()
	result.Reason = "line one\nline two"
	require.NoError(t, e.Emit(result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous=value\n"+
		"current=2.0.0\n"+
		"next=2.0.1\n"+
		"type=patch\n"+
		"reason<<__END__\n"+
		"line one\nline two\n"+
		"__END__\n", string(data))
	assert.Empty(t, stdout.String(), "stdout is untouched when a channel is set")
}

func TestEmitter_ChannelCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out")
	result := versioning.Result{Current: "0.4.0", Next: versioning.DefaultPlaceholder, Type: "none"}

	require.NoError(t, NewEmitter(path, nil).Emit(result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "current=0.4.0\nnext="+versioning.DefaultPlaceholder+"\ntype=none\nreason<<__END__\n\n__END__\n", string(data))
}

func TestEmitter_DelimiterFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out")
	e := NewEmitter(path, nil)
	e.newID = func() string { return "1234" }

	result := sampleResult()
	result.Reason = "contains __END__ inside"
	require.NoError(t, e.Emit(result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "reason<<ghadelimiter_1234\ncontains __END__ inside\nghadelimiter_1234\n")
}

func TestEmitter_RefusesUnframeablePayload(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *versioning.Result)
		wantErr error
	}{
		{
			name:    "reason collides with both delimiters",
			mutate:  func(r *versioning.Result) { r.Reason = "__END__ and ghadelimiter_fixed" },
			wantErr: ErrDelimiterCollision,
		},
		{
			name:    "newline in current",
			mutate:  func(r *versioning.Result) { r.Current = "1.0.0\nnext=9.9.9" },
			wantErr: ErrMultilineValue,
		},
		{
			name:    "carriage return in next",
			mutate:  func(r *versioning.Result) { r.Next = "1.0.1\r" },
			wantErr: ErrMultilineValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out")
			require.NoError(t, os.WriteFile(path, []byte("keep=me\n"), 0o644))

			e := NewEmitter(path, nil)
			e.newID = func() string { return "fixed" }
			result := sampleResult()
			tt.mutate(&result)

			err := e.Emit(result)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, rperrors.IsKind(err, rperrors.KindIO))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "keep=me\n", string(data), "nothing is written on failure")
		})
	}
}

func TestEmitter_ChannelWriteFailure(t *testing.T) {
	dir := t.TempDir()
	err := NewEmitter(dir, nil).Emit(sampleResult())
	require.Error(t, err)
	assert.True(t, rperrors.IsKind(err, rperrors.KindIO))
}

func TestEmitter_DefaultIDIsUnique(t *testing.T) {
	e := NewEmitter("x", nil)
	a, b := e.newID(), e.newID()
	assert.NotEqual(t, a, b)
	assert.False(t, strings.ContainsAny(a, "\n\r"))
}
