// Package vcs is the orchestration layer: a Repository facade that
// wires the object store, index, refs and history packages together
// into init/add/commit/checkout/merge, matching spec.md §4.9's state
// machine.
package vcs

import (
	"os"
	"path/filepath"
	"time"

	"github.com/nivl-labs/mvcs/branch"
	"github.com/nivl-labs/mvcs/config"
	"github.com/nivl-labs/mvcs/history"
	"github.com/nivl-labs/mvcs/index"
	"github.com/nivl-labs/mvcs/internal/vcspath"
	"github.com/nivl-labs/mvcs/object"
	"github.com/nivl-labs/mvcs/odb"
	"github.com/nivl-labs/mvcs/oid"
	"github.com/nivl-labs/mvcs/refstore"
	"github.com/nivl-labs/mvcs/vcserr"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// DefaultBranch is the branch HEAD is attached to right after init.
const DefaultBranch = "master"

// Repository is a working-tree-rooted handle onto a repository's
// object store, index and refs.
type Repository struct {
	fs   afero.Fs
	root string // working-tree root
	vcs  string // root/.vcs

	objects  *odb.Store
	refs     *refstore.Store
	branches *branch.Manager
}

func vcsDir(root string) string {
	return filepath.Join(root, vcspath.DotVCS)
}

// Init creates a new repository at root: the ".vcs" directory tree,
// a default config stub, an empty index, and HEAD attached to
// DefaultBranch with no ref yet (the Unborn state, spec.md §4.9).
func Init(fs afero.Fs, root string) (*Repository, error) {
	vd := vcsDir(root)

	if _, err := fs.Stat(vd); err == nil {
		return nil, &vcserr.Error{Kind: vcserr.AlreadyExists, Err: errors.Errorf("repository already exists at %s", root)}
	}

	for _, dir := range []string{vcspath.Objects, vcspath.RefsHeads} {
		if err := fs.MkdirAll(filepath.Join(vd, dir), 0o755); err != nil {
			return nil, vcserr.Wrapf(vcserr.IOError, err, "could not create %s", dir)
		}
	}

	if err := config.WriteDefault(fs, vd); err != nil {
		return nil, vcserr.Wrap(vcserr.IOError, err, "could not write config")
	}

	if err := index.New().Save(fs, filepath.Join(vd, vcspath.Index)); err != nil {
		return nil, vcserr.Wrap(vcserr.IOError, err, "could not write index")
	}

	refs := refstore.New(fs, vd)
	if err := refs.UpdateHead(DefaultBranch); err != nil {
		return nil, vcserr.Wrap(vcserr.IOError, err, "could not write HEAD")
	}

	return open(fs, root), nil
}

// Open loads an existing repository rooted at root.
func Open(fs afero.Fs, root string) (*Repository, error) {
	vd := vcsDir(root)
	if _, err := fs.Stat(vd); err != nil {
		if os.IsNotExist(err) {
			return nil, &vcserr.Error{Kind: vcserr.NotARepository, Err: errors.Errorf("not a repository: %s", root)}
		}
		return nil, vcserr.Wrapf(vcserr.IOError, err, "could not stat %s", vd)
	}
	return open(fs, root), nil
}

func open(fs afero.Fs, root string) *Repository {
	vd := vcsDir(root)
	refs := refstore.New(fs, vd)
	return &Repository{
		fs:       fs,
		root:     root,
		vcs:      vd,
		objects:  odb.New(fs, vd),
		refs:     refs,
		branches: branch.New(refs),
	}
}

func (r *Repository) indexPath() string {
	return filepath.Join(r.vcs, vcspath.Index)
}

func (r *Repository) loadIndex() (*index.Index, error) {
	idx, err := index.Load(r.fs, r.indexPath())
	if err != nil {
		return nil, vcserr.Wrap(vcserr.IOError, err, "could not load index")
	}
	return idx, nil
}

// Objects exposes the underlying object store, for callers (like the
// CLI's cat-file/hash-object commands) that operate on objects
// directly.
func (r *Repository) Objects() *odb.Store {
	return r.objects
}

// Refs exposes the underlying reference store.
func (r *Repository) Refs() *refstore.Store {
	return r.refs
}

// Branches exposes the branch manager.
func (r *Repository) Branches() *branch.Manager {
	return r.branches
}

// StageFile writes content as a blob and records it in the index
// under path, with the given mtime/size. Returns the blob's oid.
func (r *Repository) StageFile(path string, content []byte, mtime, size int64) (oid.Oid, error) {
	blob := object.NewBlob(content)
	id, err := r.objects.Put(blob.ToObject())
	if err != nil {
		return oid.Null, vcserr.Wrap(vcserr.IOError, err, "could not write blob")
	}

	idx, err := r.loadIndex()
	if err != nil {
		return oid.Null, err
	}
	idx.Add(path, id, mtime, size)
	if err := idx.Save(r.fs, r.indexPath()); err != nil {
		return oid.Null, vcserr.Wrap(vcserr.IOError, err, "could not save index")
	}
	return id, nil
}

// Unstage removes path from the index, if present.
func (r *Repository) Unstage(path string) error {
	idx, err := r.loadIndex()
	if err != nil {
		return err
	}
	idx.Remove(path)
	if err := idx.Save(r.fs, r.indexPath()); err != nil {
		return vcserr.Wrap(vcserr.IOError, err, "could not save index")
	}
	return nil
}

// StagedEntries returns the index's current entries.
func (r *Repository) StagedEntries() ([]index.Entry, error) {
	idx, err := r.loadIndex()
	if err != nil {
		return nil, err
	}
	return idx.Entries(), nil
}

// writeTreeFromIndex projects every index entry as (mode=100644,
// name=path, oid=entry.oid), sorted by name, and persists the tree.
func (r *Repository) writeTreeFromIndex(idx *index.Index) (oid.Oid, error) {
	sorted := idx.SortedEntries()
	entries := make([]object.TreeEntry, len(sorted))
	for i, e := range sorted {
		entries[i] = object.TreeEntry{Name: e.Path, ID: e.ID}
	}

	tree := object.NewTree(entries)
	id, err := r.objects.Put(tree.ToObject())
	if err != nil {
		return oid.Null, vcserr.Wrap(vcserr.IOError, err, "could not write tree")
	}
	return id, nil
}

// Commit builds a tree from the current index and writes a commit
// object on top of the current HEAD commit (its sole parent, if any).
// HEAD is then advanced: the current branch's ref if attached, or
// HEAD itself if detached.
func (r *Repository) Commit(identityStr, message string) (oid.Oid, error) {
	idx, err := r.loadIndex()
	if err != nil {
		return oid.Null, err
	}
	if idx.Len() == 0 {
		return oid.Null, &vcserr.Error{Kind: vcserr.EmptyIndex, Err: errors.New("nothing staged to commit")}
	}

	treeID, err := r.writeTreeFromIndex(idx)
	if err != nil {
		return oid.Null, err
	}

	var parents []oid.Oid
	headCommit, hasHead, err := r.refs.GetHeadCommit()
	if err != nil {
		return oid.Null, vcserr.Wrap(vcserr.IOError, err, "could not resolve HEAD")
	}
	if hasHead {
		parents = []oid.Oid{headCommit}
	}

	now := time.Now()
	sig := object.Signature{Identity: identityStr, Time: now}
	c := object.NewCommit(treeID, sig, object.CommitOptions{
		Message:   message,
		ParentIDs: parents,
	})

	id, err := history.WriteCommit(r.objects, c)
	if err != nil {
		return oid.Null, vcserr.Wrap(vcserr.IOError, err, "could not write commit")
	}

	if err := r.advanceHead(id); err != nil {
		return oid.Null, err
	}
	return id, nil
}

// advanceHead moves the current ref (if HEAD is attached) or HEAD
// itself (if detached) to id.
func (r *Repository) advanceHead(id oid.Oid) error {
	branchName, attached, err := r.refs.GetCurrentBranch()
	if err != nil {
		return vcserr.Wrap(vcserr.IOError, err, "could not resolve HEAD")
	}
	if attached {
		if err := r.refs.WriteRef(branchName, id); err != nil {
			return vcserr.Wrap(vcserr.IOError, err, "could not advance branch")
		}
		return nil
	}
	if err := r.refs.UpdateHead(id.String()); err != nil {
		return vcserr.Wrap(vcserr.IOError, err, "could not advance HEAD")
	}
	return nil
}

// Checkout moves HEAD to target: if target names an existing branch,
// HEAD becomes attached to it; otherwise target must be the oid of an
// existing object (of any type, not only a commit), and HEAD becomes
// detached at it. This scope never touches
// working-tree files on checkout (spec.md §4.9, an acknowledged gap).
func (r *Repository) Checkout(target string) error {
	exists, err := r.branches.Exists(target)
	if err != nil {
		return vcserr.Wrap(vcserr.IOError, err, "could not check branch existence")
	}
	if exists {
		if err := r.refs.UpdateHead(target); err != nil {
			return vcserr.Wrap(vcserr.IOError, err, "could not update HEAD")
		}
		return nil
	}

	id, err := oid.FromHex(target)
	if err != nil {
		return &vcserr.Error{Kind: vcserr.BadOid, Err: errors.Errorf("invalid branch or commit %q", target)}
	}
	// Per spec.md §9 note 5, any existing object is accepted here, not
	// only commits; this is a documented laxness, not an oversight.
	found, err := r.objects.Has(id)
	if err != nil {
		return vcserr.Wrap(vcserr.IOError, err, "could not check object existence")
	}
	if !found {
		return &vcserr.Error{Kind: vcserr.NotFound, Err: errors.Errorf("object %s does not exist", id)}
	}
	if err := r.refs.UpdateHead(id.String()); err != nil {
		return vcserr.Wrap(vcserr.IOError, err, "could not update HEAD")
	}
	return nil
}

// MergeResult describes what Merge did.
type MergeResult struct {
	// AlreadyUpToDate is true when the current branch and the merge
	// target point at the same commit.
	AlreadyUpToDate bool
	// FastForward is true when the current ref was simply moved
	// forward, with no new commit.
	FastForward bool
	// CommitID is the new commit's id, set only when a merge commit
	// was synthesized.
	CommitID oid.Oid
}

// Merge merges branchName into the current branch, per spec.md
// §4.9's simplified structural merge: no content reconciliation with
// the target's tree, and the synthesized merge commit carries a
// single parent (the current tip), not both tips.
func (r *Repository) Merge(identityStr, branchName string) (MergeResult, error) {
	cur, attached, err := r.refs.GetCurrentBranch()
	if err != nil {
		return MergeResult{}, vcserr.Wrap(vcserr.IOError, err, "could not resolve HEAD")
	}
	if !attached {
		return MergeResult{}, &vcserr.Error{Kind: vcserr.DetachedHead, Err: errors.New("cannot merge with a detached HEAD")}
	}
	if branchName == cur {
		return MergeResult{}, &vcserr.Error{Kind: vcserr.IsCurrent, Err: errors.Errorf("cannot merge %q into itself", branchName)}
	}

	exists, err := r.branches.Exists(branchName)
	if err != nil {
		return MergeResult{}, vcserr.Wrap(vcserr.IOError, err, "could not check branch existence")
	}
	if !exists {
		return MergeResult{}, &vcserr.Error{Kind: vcserr.NotFound, Err: errors.Errorf("branch %q not found", branchName)}
	}

	c, hasC, err := r.refs.GetHeadCommit()
	if err != nil {
		return MergeResult{}, vcserr.Wrap(vcserr.IOError, err, "could not resolve HEAD commit")
	}
	m, err := r.branches.Head(branchName)
	if err != nil {
		return MergeResult{}, vcserr.Wrap(vcserr.IOError, err, "could not resolve merge target")
	}

	if hasC && c == m {
		return MergeResult{AlreadyUpToDate: true}, nil
	}

	if hasC {
		// Fast-forward applies when the current tip is itself an
		// ancestor of the merge target: ask merge_base whether c lies
		// on m's first-parent chain.
		base, found, err := history.MergeBase(r.objects, m, c)
		if err != nil {
			return MergeResult{}, vcserr.Wrap(vcserr.IOError, err, "could not compute merge base")
		}
		if found && base == c {
			if err := r.refs.WriteRef(cur, m); err != nil {
				return MergeResult{}, vcserr.Wrap(vcserr.IOError, err, "could not fast-forward")
			}
			return MergeResult{FastForward: true}, nil
		}
	}

	idx, err := r.loadIndex()
	if err != nil {
		return MergeResult{}, err
	}
	treeID, err := r.writeTreeFromIndex(idx)
	if err != nil {
		return MergeResult{}, err
	}

	var parents []oid.Oid
	if hasC {
		parents = []oid.Oid{c}
	}

	sig := object.Signature{Identity: identityStr, Time: time.Now()}
	mergeCommit := object.NewCommit(treeID, sig, object.CommitOptions{
		Message:   "Merge branch '" + branchName + "' into " + cur,
		ParentIDs: parents,
	})
	id, err := history.WriteCommit(r.objects, mergeCommit)
	if err != nil {
		return MergeResult{}, vcserr.Wrap(vcserr.IOError, err, "could not write merge commit")
	}
	if err := r.refs.WriteRef(cur, id); err != nil {
		return MergeResult{}, vcserr.Wrap(vcserr.IOError, err, "could not advance branch")
	}

	return MergeResult{CommitID: id}, nil
}
