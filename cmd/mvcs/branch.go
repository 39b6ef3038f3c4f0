package main

import (
	"github.com/nivl-labs/mvcs/vcs"
	"github.com/spf13/cobra"
)

func newBranchCmd(cfg *globalFlags) *cobra.Command {
	var del string

	cmd := &cobra.Command{
		Use:   "branch [name]",
		Short: "list, create, or delete branches",
		Args:  cobra.MaximumNArgs(1),
	}
	cmd.Flags().StringVarP(&del, "delete", "d", "", "delete the named branch")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		r, err := openRepository(cfg)
		if err != nil {
			return err
		}

		switch {
		case del != "":
			return r.Branches().Delete(del)
		case len(args) == 1:
			head, _, err := r.Refs().GetHeadCommit()
			if err != nil {
				return err
			}
			return r.Branches().Create(args[0], head)
		default:
			return listBranches(r, cmd)
		}
	}

	return cmd
}

func listBranches(r *vcs.Repository, cmd *cobra.Command) error {
	names, err := r.Branches().List()
	if err != nil {
		return err
	}
	current, attached, err := r.Refs().GetCurrentBranch()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, n := range names {
		prefix := "  "
		if attached && n == current {
			prefix = "* "
		}
		fprintf(out, "%s%s\n", prefix, n)
	}
	return nil
}
