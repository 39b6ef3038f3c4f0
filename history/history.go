// Package history implements commit ancestry primitives on top of the
// object store: first-parent walking, ancestry testing, and the
// simplified merge-base this scope defines (spec.md §4.7, §9).
package history

import (
	"github.com/nivl-labs/mvcs/object"
	"github.com/nivl-labs/mvcs/odb"
	"github.com/nivl-labs/mvcs/oid"
	"github.com/pkg/errors"
)

// ReadCommit reads and decodes the commit object with the given id.
func ReadCommit(store *odb.Store, id oid.Oid) (*object.Commit, error) {
	o, err := store.Get(id)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read commit %s", id)
	}
	c, err := o.AsCommit()
	if err != nil {
		return nil, errors.Wrapf(err, "object %s is not a commit", id)
	}
	return c, nil
}

// WriteCommit persists c and returns its id.
func WriteCommit(store *odb.Store, c *object.Commit) (oid.Oid, error) {
	id, err := store.Put(c.ToObject())
	if err != nil {
		return oid.Null, errors.Wrap(err, "could not write commit")
	}
	return id, nil
}

// WalkFirstParent yields start, then each commit reachable by
// following only the first "parent" line, until a commit has no
// parent. The write path guarantees this chain is acyclic and finite.
func WalkFirstParent(store *odb.Store, start oid.Oid) ([]oid.Oid, error) {
	var chain []oid.Oid
	cur := start
	for {
		chain = append(chain, cur)
		c, err := ReadCommit(store, cur)
		if err != nil {
			return nil, err
		}
		parents := c.ParentIDs()
		if len(parents) == 0 {
			return chain, nil
		}
		cur = parents[0]
	}
}

// IsAncestor reports whether a appears in the first-parent chain of b.
func IsAncestor(store *odb.Store, a, b oid.Oid) (bool, error) {
	chain, err := WalkFirstParent(store, b)
	if err != nil {
		return false, err
	}
	for _, id := range chain {
		if id == a {
			return true, nil
		}
	}
	return false, nil
}

// MergeBase returns b if b is a first-parent ancestor of a, and
// oid.Null (found=false) otherwise.
//
// This is a deliberate simplification over the canonical definition
// (the best common ancestor across both inputs' full ancestor sets):
// it only ever considers a's first-parent chain, so a true merge
// scenario where the common ancestor sits off that chain is not
// detected. See spec.md §9.
func MergeBase(store *odb.Store, a, b oid.Oid) (oid.Oid, bool, error) {
	chain, err := WalkFirstParent(store, a)
	if err != nil {
		return oid.Null, false, err
	}
	for _, id := range chain {
		if id == b {
			return b, true, nil
		}
	}
	return oid.Null, false, nil
}
