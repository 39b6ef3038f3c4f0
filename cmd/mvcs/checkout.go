package main

import (
	"github.com/spf13/cobra"
)

func newCheckoutCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout <branch|oid>",
		Short: "move HEAD to a branch or an object id",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		r, err := openRepository(cfg)
		if err != nil {
			return err
		}
		return r.Checkout(args[0])
	}

	return cmd
}
