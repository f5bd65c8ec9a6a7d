// Package cli provides the command-line interfaces for next-version and cursor-rules.
package cli

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/relicta-tech/cursor-rules/internal/security"
	"github.com/relicta-tech/cursor-rules/internal/version"
)

// Options holds the CLI runtime options and dependencies.
type Options struct {
	// Version is the build information printed by the version command.
	Version version.Info

	Logger *log.Logger
	Styles Styles

	// I/O streams (for testing)
	Stdout io.Writer
	Stderr io.Writer

	// Getenv reads the process environment. The CLI is the only layer
	// that does.
	Getenv func(string) string
	// Executable locates the running binary.
	Executable func() (string, error)
}

// Styles holds the CLI styling configuration.
type Styles struct {
	Title   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Subtle  lipgloss.Style
}

// DefaultStyles returns the default CLI styles.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Subtle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// NewOptions creates a new Options instance wired to the process.
func NewOptions() *Options {
	return &Options{
		Styles:     DefaultStyles(),
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Getenv:     os.Getenv,
		Executable: os.Executable,
		Logger: log.NewWithOptions(security.NewMaskedWriter(os.Stderr), log.Options{
			ReportTimestamp: true,
			ReportCaller:    false,
		}),
	}
}

// SetVersion sets the version information.
func (o *Options) SetVersion(info version.Info) {
	o.Version = info
}

// DisableColor switches styles and the logger to plain output.
func (o *Options) DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
	o.Logger.SetColorProfile(termenv.Ascii)
}

// configureLogger applies level and format settings and makes the logger the
// slog default used by the application layer.
func (o *Options) configureLogger(level, format string, verbose bool) {
	if format == "json" {
		o.Logger.SetFormatter(log.JSONFormatter)
	} else {
		o.Logger.SetFormatter(log.TextFormatter)
	}

	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = log.InfoLevel
	}
	if verbose {
		lvl = log.DebugLevel
	}
	o.Logger.SetLevel(lvl)

	slog.SetDefault(o.SlogLogger())
}

// SlogLogger returns a slog logger backed by the CLI logger.
func (o *Options) SlogLogger() *slog.Logger {
	return slog.New(o.Logger)
}

func (o *Options) println(w io.Writer, s string) {
	if w != nil {
		_, _ = io.WriteString(w, s+"\n")
	}
}

func (o *Options) getenv(key string) string {
	if o.Getenv == nil {
		return ""
	}
	return o.Getenv(key)
}
