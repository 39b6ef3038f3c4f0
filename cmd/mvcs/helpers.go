package main

import (
	"fmt"
	"io"

	"github.com/nivl-labs/mvcs/identity"
	"github.com/nivl-labs/mvcs/internal/pathutil"
	"github.com/nivl-labs/mvcs/vcs"
	"github.com/spf13/afero"
)

// workdir returns the directory a command should operate in: if -C
// was given it's taken as-is (matching git's -C semantics: the
// target directory itself, not an ancestor search); otherwise the
// repository root is found by walking up from the process's current
// directory, so mvcs works from any subdirectory of the working tree.
func workdir(cfg *globalFlags) (string, error) {
	if cfg.C.String() != "" {
		return cfg.C.String(), nil
	}
	return pathutil.RepoRoot()
}

func openRepository(cfg *globalFlags) (*vcs.Repository, error) {
	root, err := workdir(cfg)
	if err != nil {
		return nil, err
	}
	return vcs.Open(afero.NewOsFs(), root)
}

// resolveIdentity resolves the author/committer string a commit or
// merge should record, via the identity collaborator (spec.md §6,
// SPEC_FULL.md §4.10).
func resolveIdentity(cfg *globalFlags) (string, error) {
	return identity.FromEnv(cfg.env)
}

func fprintln(out io.Writer, a ...interface{}) {
	fmt.Fprintln(out, a...)
}

func fprintf(out io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(out, format, a...)
}
