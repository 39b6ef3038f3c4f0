// Package atomicfile provides a write-then-rename helper so that
// readers of a file inside .vcs always observe either a complete
// previous version or a complete new version, never a partial write.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// Write atomically replaces the file at path with data: it writes to
// a sibling temp file and renames it into place, the rename being the
// commit point. The destination directory is created if needed.
func Write(fs afero.Fs, path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o750); err != nil {
		return xerrors.Errorf("could not create directory %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(fs, dir, fmt.Sprintf(".%s-*.tmp", filepath.Base(path)))
	if err != nil {
		return xerrors.Errorf("could not create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	// Best-effort cleanup; once the rename below succeeds this is a
	// no-op because the file no longer exists at tmpPath.
	defer func() {
		_ = fs.Remove(tmpPath)
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return xerrors.Errorf("could not write temp file %s: %w", tmpPath, err)
	}
	if err = tmp.Close(); err != nil {
		return xerrors.Errorf("could not close temp file %s: %w", tmpPath, err)
	}
	if err = fs.Chmod(tmpPath, perm); err != nil {
		return xerrors.Errorf("could not set permissions on %s: %w", tmpPath, err)
	}

	if err = fs.Rename(tmpPath, path); err != nil {
		return xerrors.Errorf("could not rename %s to %s: %w", tmpPath, path, err)
	}
	return nil
}
