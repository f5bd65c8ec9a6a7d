// Package fileutil reads bounded files and writes whole files safely.
package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// MaxManifestSize is the largest metadata descriptor that will be read.
const MaxManifestSize = 1 << 20

// ReadFileLimited returns the contents of path, refusing directories and
// anything longer than maxSize bytes.
func ReadFileLimited(path string, maxSize int64) ([]byte, error) {
	f, err := os.Open(path) // #nosec G304 -- caller is responsible for path validation
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if info, err := f.Stat(); err != nil {
		return nil, err
	} else if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	// One byte past the limit tells an exact fit from an oversized file.
	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%s exceeds maximum allowed size %d", path, maxSize)
	}
	return data, nil
}

// AppendFile appends data to path in a single write, creating the file
// with perm when it does not exist.
func AppendFile(path string, data []byte, perm os.FileMode) (err error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, perm) // #nosec G304 -- path comes from the CI runner
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	n, err := f.Write(data)
	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return fmt.Errorf("append %s: %w", path, err)
	}
	return nil
}

// AtomicWriteFile replaces path with data. The content is staged in a
// sibling temp file and renamed over path, so readers see the old file or
// the new one and never a partial write.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("stage %s: %w", path, err)
	}
	staged := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(staged)
		}
	}()

	werr := tmp.Chmod(perm)
	if werr == nil {
		_, werr = tmp.Write(data)
	}
	if werr == nil {
		werr = tmp.Sync()
	}
	if cerr := tmp.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("write %s: %w", staged, werr)
	}

	if err := os.Rename(staged, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	committed = true
	return nil
}
