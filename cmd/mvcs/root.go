package main

import (
	"github.com/nivl-labs/mvcs/internal/env"
	"github.com/nivl-labs/mvcs/internal/pathutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// globalFlags holds the state every subcommand needs: the
// environment (for identity resolution) and an optional -C override
// of the working directory, mirroring the teacher's flags struct.
type globalFlags struct {
	C   pflag.Value
	env *env.Env
}

func newRootCmd(e *env.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mvcs",
		Short:         "a minimal version-control engine",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cfg := &globalFlags{env: e}
	// Empty default: an unset -C means "no override", letting workdir()
	// fall back to pathutil.RepoRoot()'s upward search. A set -C is
	// taken as the literal target directory, as git's -C behaves.
	cfg.C = pathutil.NewDirPathFlagWithDefault("")
	cmd.PersistentFlags().VarP(cfg.C, "C", "C", "run as if mvcs was started in the given path")

	cmd.AddCommand(newInitCmd(cfg))
	cmd.AddCommand(newAddCmd(cfg))
	cmd.AddCommand(newCommitCmd(cfg))
	cmd.AddCommand(newStatusCmd(cfg))
	cmd.AddCommand(newLogCmd(cfg))
	cmd.AddCommand(newBranchCmd(cfg))
	cmd.AddCommand(newCheckoutCmd(cfg))
	cmd.AddCommand(newMergeCmd(cfg))
	cmd.AddCommand(newDiffCmd(cfg))
	cmd.AddCommand(newCatFileCmd(cfg))
	cmd.AddCommand(newHashObjectCmd(cfg))

	return cmd
}
