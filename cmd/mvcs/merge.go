package main

import (
	"github.com/spf13/cobra"
)

func newMergeCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <branch>",
		Short: "merge a branch into the current branch",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		r, err := openRepository(cfg)
		if err != nil {
			return err
		}
		who, err := resolveIdentity(cfg)
		if err != nil {
			return err
		}

		result, err := r.Merge(who, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case result.AlreadyUpToDate:
			fprintln(out, "Already up to date.")
		case result.FastForward:
			fprintln(out, "Fast-forward")
		default:
			fprintln(out, "Merge made by the 'structural' strategy.")
			fprintln(out, result.CommitID.String())
		}
		return nil
	}

	return cmd
}
