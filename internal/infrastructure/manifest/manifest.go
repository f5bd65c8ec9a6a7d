// Package manifest reads the version field of project metadata descriptors
// such as package.json, Cargo.toml, pyproject.toml, Chart.yaml or VERSION.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	rperrors "github.com/relicta-tech/cursor-rules/internal/errors"
	"github.com/relicta-tech/cursor-rules/internal/fileutil"
)

// ErrNoVersion indicates a descriptor without a usable version field.
var ErrNoVersion = errors.New("no version field")

// Format identifies how a descriptor is parsed.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// Reader reads the declared version of a descriptor.
type Reader interface {
	ReadVersion(path string) (string, error)
}

var _ Reader = (*FileReader)(nil)

// FileReader reads descriptors from disk.
type FileReader struct {
	maxSize int64
}

// NewFileReader creates a reader that rejects files larger than fileutil.MaxManifestSize.
func NewFileReader() *FileReader {
	return &FileReader{maxSize: fileutil.MaxManifestSize}
}

// ReadVersion returns the version field exactly as declared.
func (r *FileReader) ReadVersion(path string) (string, error) {
	const op = "manifest.ReadVersion"

	data, err := fileutil.ReadFileLimited(path, r.maxSize)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", rperrors.NotFoundWrap(err, op, "metadata descriptor not found")
		}
		return "", rperrors.IOWrap(err, op, "failed to read metadata descriptor")
	}

	var v string
	switch DetectFormat(path) {
	case FormatJSON:
		v, err = jsonVersion(data)
	case FormatTOML:
		v, err = tomlVersion(data)
	case FormatYAML:
		v, err = yamlVersion(data)
	default:
		v, err = textVersion(data)
	}
	if err != nil {
		if errors.Is(err, ErrNoVersion) {
			return "", rperrors.NotFoundWrap(err, op, filepath.Base(path))
		}
		return "", rperrors.IOWrap(err, op, "failed to parse "+filepath.Base(path))
	}
	return v, nil
}

func jsonVersion(data []byte) (string, error) {
	var doc struct {
		Version json.RawMessage `json:"version"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", err
	}
	if len(doc.Version) == 0 || string(doc.Version) == "null" {
		return "", ErrNoVersion
	}
	var v string
	if err := json.Unmarshal(doc.Version, &v); err != nil {
		return "", fmt.Errorf("%w: version is not a string", ErrNoVersion)
	}
	return v, nil
}

// tomlVersionPaths covers Cargo.toml, PEP 621 and Poetry layouts.
var tomlVersionPaths = [][]string{
	{"version"},
	{"package", "version"},
	{"project", "version"},
	{"tool", "poetry", "version"},
}

func tomlVersion(data []byte) (string, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return "", err
	}
	for _, path := range tomlVersionPaths {
		if v, ok := lookup(doc, path); ok {
			return v, nil
		}
	}
	return "", ErrNoVersion
}

func lookup(doc map[string]any, path []string) (string, bool) {
	var cur any = doc
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", false
		}
		if cur, ok = m[key]; !ok {
			return "", false
		}
	}
	s, ok := cur.(string)
	return s, ok
}

func yamlVersion(data []byte) (string, error) {
	var doc struct {
		Version yaml.Node `yaml:"version"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", err
	}
	// The raw scalar keeps "1.10" from turning into the float 1.1.
	if doc.Version.Kind != yaml.ScalarNode || doc.Version.Tag == "!!null" {
		return "", ErrNoVersion
	}
	return doc.Version.Value, nil
}

func textVersion(data []byte) (string, error) {
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line, nil
		}
	}
	return "", ErrNoVersion
}
