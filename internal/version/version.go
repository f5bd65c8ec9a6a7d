// Package version provides build information for the next-version and
// cursor-rules binaries.
package version

import (
	_ "embed"
	"fmt"
	"strings"
)

// VERSION contains the version from the VERSION file.
// It is used when ldflags are not set (e.g., go install).
//
//go:embed VERSION
var VERSION string

// Info describes a build.
type Info struct {
	Version string
	Commit  string
	Date    string
}

// Get returns the embedded version with "v" prefix.
func Get() string {
	return "v" + strings.TrimSpace(VERSION)
}

// Resolve fills unset ldflags values. A "dev" or empty version falls back
// to the embedded one.
func Resolve(ver, commit, date string) Info {
	if ver == "" || ver == "dev" {
		ver = Get()
	}
	if commit == "" {
		commit = "none"
	}
	if date == "" {
		date = "unknown"
	}
	return Info{Version: ver, Commit: commit, Date: date}
}

// String returns a one-line description.
func (i Info) String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", i.Version, i.Commit, i.Date)
}
