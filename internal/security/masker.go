// Package security provides output redaction for log and error streams.
package security

import (
	"io"

	"github.com/relicta-tech/cursor-rules/internal/errors"
)

// ciEnvVars are set by common CI providers.
var ciEnvVars = []string{
	"CI",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"CIRCLECI",
	"JENKINS_URL",
	"BUILDKITE",
}

// IsCI reports whether getenv describes a CI environment.
func IsCI(getenv func(string) string) bool {
	for _, env := range ciEnvVars {
		if getenv(env) != "" {
			return true
		}
	}
	return false
}

// MaskedWriter wraps an io.Writer and redacts credentials before writing.
// Each Write is masked on its own, so a secret split across two writes is
// not detected; log records are written whole.
type MaskedWriter struct {
	w io.Writer
}

// NewMaskedWriter creates a MaskedWriter.
func NewMaskedWriter(w io.Writer) *MaskedWriter {
	return &MaskedWriter{w: w}
}

// Write implements io.Writer. It reports len(p) on success even when the
// masked output is shorter.
func (mw *MaskedWriter) Write(p []byte) (int, error) {
	if _, err := io.WriteString(mw.w, errors.RedactSensitive(string(p))); err != nil {
		return 0, err
	}
	return len(p), nil
}
