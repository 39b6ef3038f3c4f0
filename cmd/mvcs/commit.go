package main

import (
	"errors"

	"github.com/spf13/cobra"
)

// errNoMessage is returned when -m is missing; this scope has no
// editor integration (no $EDITOR fallback), matching the identified
// scope of spec.md §6's "commit -m <msg>".
var errNoMessage = errors.New("a commit message is required (-m)")

func newCommitCmd(cfg *globalFlags) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "record the staged changes as a new commit",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if message == "" {
			return errNoMessage
		}
		return commitCmd(cfg, message, cmd)
	}

	return cmd
}

func commitCmd(cfg *globalFlags, message string, cmd *cobra.Command) error {
	r, err := openRepository(cfg)
	if err != nil {
		return err
	}

	who, err := resolveIdentity(cfg)
	if err != nil {
		return err
	}

	id, err := r.Commit(who, message)
	if err != nil {
		return err
	}
	fprintln(cmd.OutOrStdout(), id.String())
	return nil
}
