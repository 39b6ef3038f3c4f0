package main

import (
	"github.com/nivl-labs/mvcs/history"
	"github.com/nivl-labs/mvcs/object"
	"github.com/nivl-labs/mvcs/oid"
	"github.com/nivl-labs/mvcs/vcs"
	"github.com/spf13/cobra"
)

// newDiffCmd wires the explicitly content-free diff stub spec.md §1
// scopes this system to: it reports which paths were added, removed
// or modified between two trees, with no textual hunks. A real
// three-way content diff is an identified open question (spec.md
// §9, SPEC_FULL.md §6).
func newDiffCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff [commit]",
		Short: "list paths that differ between a commit's tree and the staged index (no content hunks)",
		Args:  cobra.MaximumNArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		r, err := openRepository(cfg)
		if err != nil {
			return err
		}

		base := oid.Null
		hasBase := false
		if len(args) == 1 {
			id, err := oid.FromHex(args[0])
			if err != nil {
				return err
			}
			base, hasBase = id, true
		} else {
			head, ok, err := r.Refs().GetHeadCommit()
			if err != nil {
				return err
			}
			base, hasBase = head, ok
		}

		var before []object.TreeEntry
		if hasBase {
			before, err = treeEntriesOfCommit(r, base)
			if err != nil {
				return err
			}
		}

		staged, err := r.StagedEntries()
		if err != nil {
			return err
		}
		after := make([]object.TreeEntry, len(staged))
		for i, e := range staged {
			after[i] = object.TreeEntry{Name: e.Path, ID: e.ID}
		}

		printTreeDiff(cmd, before, after)
		return nil
	}

	return cmd
}

// treeEntriesOfCommit resolves commitID's tree and returns its
// entries.
func treeEntriesOfCommit(r *vcs.Repository, commitID oid.Oid) ([]object.TreeEntry, error) {
	c, err := history.ReadCommit(r.Objects(), commitID)
	if err != nil {
		return nil, err
	}
	o, err := r.Objects().Get(c.TreeID())
	if err != nil {
		return nil, err
	}
	t, err := o.AsTree()
	if err != nil {
		return nil, err
	}
	return t.Entries(), nil
}

func printTreeDiff(cmd *cobra.Command, before, after []object.TreeEntry) {
	beforeByName := make(map[string]oid.Oid, len(before))
	for _, e := range before {
		beforeByName[e.Name] = e.ID
	}
	afterByName := make(map[string]oid.Oid, len(after))
	for _, e := range after {
		afterByName[e.Name] = e.ID
	}

	out := cmd.OutOrStdout()
	for name, id := range afterByName {
		prev, existed := beforeByName[name]
		switch {
		case !existed:
			fprintf(out, "A\t%s\n", name)
		case prev != id:
			fprintf(out, "M\t%s\n", name)
		}
	}
	for name := range beforeByName {
		if _, stillThere := afterByName[name]; !stillThere {
			fprintf(out, "D\t%s\n", name)
		}
	}
}
