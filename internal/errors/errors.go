// Package errors classifies failures by kind and keeps secrets out of
// printed messages.
package errors

import (
	"errors"
	"fmt"
	"regexp"
)

// Kind is the failure category.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindConfig
	KindGit
	// KindVersion covers classification and increment failures.
	KindVersion
	KindIO
	KindValidation
	KindNotFound
	KindCanceled
	KindInternal
)

var kindNames = map[Kind]string{
	KindConfig:     "configuration",
	KindGit:        "git",
	KindVersion:    "version",
	KindIO:         "io",
	KindValidation: "validation",
	KindNotFound:   "not_found",
	KindCanceled:   "canceled",
	KindInternal:   "internal",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Error is a failure of Op, described by Message, caused by Err.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches a target *Error by Kind, and by Op too when the target names one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Kind != e.Kind {
		return false
	}
	return t.Op == "" || t.Op == e.Op
}

// New returns an error of the given kind with no cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches kind, op and message to err.
func Wrap(err error, kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, kind Kind, op, format string, args ...any) *Error {
	return Wrap(err, kind, op, fmt.Sprintf(format, args...))
}

// GetKind returns the kind of the first *Error in err's chain.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err's chain holds an *Error of kind.
func IsKind(err error, kind Kind) bool {
	return GetKind(err) == kind
}

func Config(op, message string) *Error {
	return &Error{Kind: KindConfig, Op: op, Message: message}
}

func ConfigWrap(err error, op, message string) *Error {
	return Wrap(err, KindConfig, op, message)
}

func GitWrap(err error, op, message string) *Error {
	return Wrap(err, KindGit, op, message)
}

// GitWrapSafe is GitWrap with credentials and tokens removed from err.
func GitWrapSafe(err error, op, message string) *Error {
	return Wrap(RedactError(err), KindGit, op, message)
}

func VersionWrap(err error, op, message string) *Error {
	return Wrap(err, KindVersion, op, message)
}

func Validation(op, message string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: message}
}

func NotFoundWrap(err error, op, message string) *Error {
	return Wrap(err, KindNotFound, op, message)
}

func IOWrap(err error, op, message string) *Error {
	return Wrap(err, KindIO, op, message)
}

// CanceledWrap marks a context error as a cancellation of op.
func CanceledWrap(err error, op string) *Error {
	return Wrap(err, KindCanceled, op, "operation canceled")
}

var secretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bgh[posr]_[a-zA-Z0-9]{36,}\b`),
	regexp.MustCompile(`\bgithub_pat_[a-zA-Z0-9_]{22,}\b`),
	regexp.MustCompile(`\bBearer\s+[a-zA-Z0-9._-]{20,}\b`),
	// user:password@ in a remote URL
	regexp.MustCompile(`://[^/:@\s]+:[^/@\s]+@`),
}

// RedactSensitive replaces tokens and URL credentials in s with [REDACTED].
func RedactSensitive(s string) string {
	for _, p := range secretPatterns {
		s = p.ReplaceAllString(s, "[REDACTED]")
	}
	return s
}

// RedactError returns err unchanged when it carries no secrets, and
// otherwise a plain error with the redacted text. The redacted error does
// not unwrap.
func RedactError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if clean := RedactSensitive(msg); clean != msg {
		return errors.New(clean)
	}
	return err
}
