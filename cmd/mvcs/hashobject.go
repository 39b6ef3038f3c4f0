package main

import (
	"io"
	"os"

	"github.com/nivl-labs/mvcs/object"
	"github.com/spf13/cobra"
)

func newHashObjectCmd(cfg *globalFlags) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "hash-object <file>",
		Short: "compute a blob's object id, optionally writing it to the store",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the object into the repository's store")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close() //nolint:errcheck // read-only handle

		content, err := io.ReadAll(f)
		if err != nil {
			return err
		}

		blob := object.NewBlob(content)
		id := blob.ID()

		if write {
			r, err := openRepository(cfg)
			if err != nil {
				return err
			}
			if id, err = r.Objects().Put(blob.ToObject()); err != nil {
				return err
			}
		}

		fprintln(cmd.OutOrStdout(), id.String())
		return nil
	}

	return cmd
}
