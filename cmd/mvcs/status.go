package main

import (
	"github.com/spf13/cobra"
)

func newStatusCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "show the current branch and the staged paths",
		Args:  cobra.NoArgs,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return statusCmd(cfg, cmd)
	}

	return cmd
}

func statusCmd(cfg *globalFlags, cmd *cobra.Command) error {
	r, err := openRepository(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	branchName, attached, err := r.Refs().GetCurrentBranch()
	if err != nil {
		return err
	}
	if attached {
		fprintf(out, "On branch %s\n", branchName)
	} else {
		headID, _, err := r.Refs().GetHeadCommit()
		if err != nil {
			return err
		}
		fprintf(out, "HEAD detached at %s\n", headID.String())
	}

	entries, err := r.StagedEntries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fprintln(out, "nothing staged")
		return nil
	}

	fprintln(out, "Changes to be committed:")
	for _, e := range entries {
		fprintf(out, "\t%s\n", e.Path)
	}
	return nil
}
