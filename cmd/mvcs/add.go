package main

import (
	"github.com/nivl-labs/mvcs/vcs"
	"github.com/nivl-labs/mvcs/wtwalk"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newAddCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <pathspec>...",
		Short: "stage working-tree files for the next commit",
		Args:  cobra.MinimumNArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return addCmd(cfg, args)
	}

	return cmd
}

// addCmd stages every regular file the working-tree walker finds,
// filtered down to the requested pathspecs. A bare "." stages
// everything the walker yields; this scope has no pathspec globbing
// (spec.md Non-goals), so any other argument is matched by exact
// relative path.
func addCmd(cfg *globalFlags, pathspecs []string) error {
	root, err := workdir(cfg)
	if err != nil {
		return err
	}
	fs := afero.NewOsFs()

	r, err := vcs.Open(fs, root)
	if err != nil {
		return err
	}

	entries, err := wtwalk.Walk(fs, root)
	if err != nil {
		return err
	}

	all := false
	wanted := map[string]bool{}
	for _, p := range pathspecs {
		if p == "." {
			all = true
			continue
		}
		wanted[p] = true
	}

	for _, e := range entries {
		if !all && !wanted[e.Path] {
			continue
		}
		if _, err := r.StageFile(e.Path, e.Bytes, e.Mtime, e.Size); err != nil {
			return err
		}
	}
	return nil
}
