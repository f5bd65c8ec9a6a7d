// Package output publishes resolution results to the CI output channel or stdout.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/relicta-tech/cursor-rules/internal/application/versioning"
	rperrors "github.com/relicta-tech/cursor-rules/internal/errors"
	"github.com/relicta-tech/cursor-rules/internal/fileutil"
)

// DefaultDelimiter terminates the multi-line reason value.
const DefaultDelimiter = "__END__"

// channelFilePerm is used when the channel file does not exist yet.
const channelFilePerm = 0o644

var (
	// ErrDelimiterCollision indicates that no delimiter could frame the reason.
	ErrDelimiterCollision = errors.New("reason collides with every output delimiter")

	// ErrMultilineValue indicates a newline inside a single-line output value.
	ErrMultilineValue = errors.New("single-line output value contains a newline")
)

// Emitter writes a result either to a CI output channel file or, when no
// channel is configured, as JSON to stdout.
type Emitter struct {
	channel string
	stdout  io.Writer
	newID   func() string
}

// NewEmitter creates an Emitter. channel is the path of the CI output file;
// an empty channel selects stdout.
func NewEmitter(channel string, stdout io.Writer) *Emitter {
	return &Emitter{
		channel: channel,
		stdout:  stdout,
		newID:   uuid.NewString,
	}
}

// Channel returns the configured channel path, empty for stdout.
func (e *Emitter) Channel() string {
	return e.channel
}

// Emit publishes the result with a single write. Nothing is written when
// the payload cannot be framed.
func (e *Emitter) Emit(result versioning.Result) error {
	const op = "output.Emit"

	if e.channel == "" {
		return e.emitJSON(result)
	}

	payload, err := e.channelPayload(result)
	if err != nil {
		return rperrors.IOWrap(err, op, "cannot encode output")
	}
	if err := fileutil.AppendFile(e.channel, payload, channelFilePerm); err != nil {
		return rperrors.IOWrap(err, op, "failed to write output channel")
	}
	return nil
}

func (e *Emitter) emitJSON(result versioning.Result) error {
	const op = "output.Emit"

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return rperrors.IOWrap(err, op, "failed to encode result")
	}
	if _, err := e.stdout.Write(buf.Bytes()); err != nil {
		return rperrors.IOWrap(err, op, "failed to write result")
	}
	return nil
}

// channelPayload renders the key=value block with the reason as a heredoc.
func (e *Emitter) channelPayload(result versioning.Result) ([]byte, error) {
	single := []struct {
		key   string
		value string
	}{
		{"current", result.Current},
		{"next", result.Next},
		{"type", result.Type},
	}

	var sb strings.Builder
	for _, kv := range single {
		if strings.ContainsAny(kv.value, "\r\n") {
			return nil, fmt.Errorf("%w: %s", ErrMultilineValue, kv.key)
		}
		sb.WriteString(kv.key)
		sb.WriteByte('=')
		sb.WriteString(kv.value)
		sb.WriteByte('\n')
	}

	delim, err := e.delimiter(result.Reason)
	if err != nil {
		return nil, err
	}
	sb.WriteString("reason<<")
	sb.WriteString(delim)
	sb.WriteByte('\n')
	sb.WriteString(result.Reason)
	sb.WriteByte('\n')
	sb.WriteString(delim)
	sb.WriteByte('\n')
	return []byte(sb.String()), nil
}

func (e *Emitter) delimiter(value string) (string, error) {
	candidates := []string{DefaultDelimiter, "ghadelimiter_" + e.newID()}
	for _, d := range candidates {
		if !strings.Contains(value, d) {
			return d, nil
		}
	}
	return "", ErrDelimiterCollision
}
