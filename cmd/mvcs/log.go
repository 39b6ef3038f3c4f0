package main

import (
	"time"

	"github.com/nivl-labs/mvcs/history"
	"github.com/spf13/cobra"
)

func newLogCmd(cfg *globalFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "show the first-parent commit history starting at HEAD",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().IntVarP(&limit, "max-count", "n", 0, "limit the number of commits shown")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return logCmd(cfg, limit, cmd)
	}

	return cmd
}

func logCmd(cfg *globalFlags, limit int, cmd *cobra.Command) error {
	r, err := openRepository(cfg)
	if err != nil {
		return err
	}

	head, hasHead, err := r.Refs().GetHeadCommit()
	if err != nil {
		return err
	}
	if !hasHead {
		return nil
	}

	chain, err := history.WalkFirstParent(r.Objects(), head)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, id := range chain {
		if limit > 0 && i >= limit {
			break
		}
		c, err := history.ReadCommit(r.Objects(), id)
		if err != nil {
			return err
		}
		fprintf(out, "commit %s\n", id.String())
		fprintf(out, "Author: %s\n", c.Author().Identity)
		fprintf(out, "Date:   %s\n", c.Author().Time.Format(time.RFC1123Z))
		fprintln(out, "")
		fprintf(out, "    %s\n\n", c.Message())
	}
	return nil
}
