// Package pathutil contains small filesystem helpers shared by the
// CLI and the core library: locating a repository root and validating
// path-shaped flags.
package pathutil

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/nivl-labs/mvcs/internal/vcspath"
)

// ErrNoRepo is returned when no repository is found in the given
// directory or any of its parents.
var ErrNoRepo = errors.New("not a vcs repository (or any of the parent directories)")

// RepoRoot returns the absolute path to the working-tree root of the
// repository containing the current directory.
func RepoRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return RepoRootFromPath(wd)
}

// RepoRootFromPath walks up from p looking for a ".vcs" directory
// (regular repository) or a bare repository (a directory that
// directly contains a non-empty HEAD file).
func RepoRootFromPath(p string) (string, error) {
	prev := ""
	for p != prev {
		info, err := os.Stat(filepath.Join(p, vcspath.DotVCS))
		if err == nil && info.IsDir() {
			return p, nil
		}

		info, err = os.Stat(filepath.Join(p, vcspath.HEAD))
		if err == nil && !info.IsDir() && info.Size() > 0 {
			return p, nil
		}

		prev = p
		p = filepath.Dir(p)
	}
	return "", ErrNoRepo
}
