package main

import (
	"errors"

	"github.com/nivl-labs/mvcs/oid"
	"github.com/spf13/cobra"
)

var errCatFileOptions = errors.New("specify exactly one of -t, -s, -p")

func newCatFileCmd(cfg *globalFlags) *cobra.Command {
	var typeOnly, sizeOnly, prettyPrint bool

	cmd := &cobra.Command{
		Use:   "cat-file <object>",
		Short: "print content, type, or size information for a repository object",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().BoolVarP(&typeOnly, "type", "t", false, "show the object's type")
	cmd.Flags().BoolVarP(&sizeOnly, "size", "s", false, "show the object's size")
	cmd.Flags().BoolVarP(&prettyPrint, "pretty", "p", false, "pretty-print the object's content")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		count := 0
		for _, b := range []bool{typeOnly, sizeOnly, prettyPrint} {
			if b {
				count++
			}
		}
		if count != 1 {
			return errCatFileOptions
		}

		id, err := oid.FromHex(args[0])
		if err != nil {
			return err
		}

		r, err := openRepository(cfg)
		if err != nil {
			return err
		}
		o, err := r.Objects().Get(id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case typeOnly:
			fprintln(out, o.Type().String())
		case sizeOnly:
			fprintln(out, o.Size())
		case prettyPrint:
			fprintf(out, "%s", string(o.Bytes()))
		}
		return nil
	}

	return cmd
}
