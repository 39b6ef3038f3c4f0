package main

import (
	"os"

	"github.com/nivl-labs/mvcs/vcs"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newInitCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "create an empty repository",
		Args:  cobra.NoArgs,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		root := cfg.C.String()
		if root == "" {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			root = wd
		}

		if _, err := vcs.Init(afero.NewOsFs(), root); err != nil {
			return err
		}
		fprintln(cmd.OutOrStdout(), "Initialized empty repository in", root)
		return nil
	}

	return cmd
}
