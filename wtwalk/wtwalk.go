// Package wtwalk enumerates the working-tree files a staging
// operation should consider, skipping the repository's ".vcs"
// directory and top-level dot-files.
package wtwalk

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// Entry is one regular file found under the working-tree root.
type Entry struct {
	// Path is relative to root, using forward slashes.
	Path  string
	Bytes []byte
	Mtime int64
	Size  int64
}

// Walk enumerates every regular file under root, skipping ".vcs" and
// any top-level entry whose name starts with a dot.
func Walk(fs afero.Fs, root string) ([]Entry, error) {
	var entries []Entry

	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return xerrors.Errorf("could not relativize %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		top := rel
		if i := strings.IndexByte(rel, '/'); i >= 0 {
			top = rel[:i]
		}
		if top == ".vcs" || strings.HasPrefix(top, ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			return nil
		}

		content, err := afero.ReadFile(fs, path)
		if err != nil {
			return xerrors.Errorf("could not read %s: %w", path, err)
		}

		entries = append(entries, Entry{
			Path:  rel,
			Bytes: content,
			Mtime: info.ModTime().Unix(),
			Size:  info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, xerrors.Errorf("could not walk working tree at %s: %w", root, err)
	}

	return entries, nil
}
