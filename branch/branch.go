// Package branch implements branch creation, deletion, listing and
// existence checks on top of refstore.
package branch

import (
	"errors"

	"github.com/nivl-labs/mvcs/oid"
	"github.com/nivl-labs/mvcs/refstore"
)

// ErrAlreadyExists is returned by Create when the branch already has
// a ref.
var ErrAlreadyExists = errors.New("branch already exists")

// ErrIsCurrent is returned by Delete when asked to remove the branch
// HEAD currently points to.
var ErrIsCurrent = errors.New("cannot delete the current branch")

// ErrNotFound is returned when the named branch has no ref.
var ErrNotFound = errors.New("branch not found")

// Manager operates on branches through a refstore.Store.
type Manager struct {
	refs *refstore.Store
}

// New returns a branch Manager backed by refs.
func New(refs *refstore.Store) *Manager {
	return &Manager{refs: refs}
}

// Create makes a new branch named name pointing at target.
func (m *Manager) Create(name string, target oid.Oid) error {
	exists, err := m.refs.RefExists(name)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyExists
	}
	return m.refs.WriteRef(name, target)
}

// Delete removes branch name. Deleting the branch HEAD currently
// points to is rejected.
func (m *Manager) Delete(name string) error {
	exists, err := m.refs.RefExists(name)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	current, ok, err := m.refs.GetCurrentBranch()
	if err != nil {
		return err
	}
	if ok && current == name {
		return ErrIsCurrent
	}

	return m.refs.DeleteRef(name)
}

// Exists reports whether branch name has a ref.
func (m *Manager) Exists(name string) (bool, error) {
	return m.refs.RefExists(name)
}

// List returns the short names of the branches whose refs sit
// directly under refs/heads; nested names such as "feature/foo" are
// not listed.
func (m *Manager) List() ([]string, error) {
	return m.refs.ListRefs()
}

// Head returns the oid branch name currently points to.
func (m *Manager) Head(name string) (oid.Oid, error) {
	id, err := m.refs.ReadRef(name)
	if err != nil {
		if errors.Is(err, refstore.ErrNotFound) {
			return oid.Null, ErrNotFound
		}
		return oid.Null, err
	}
	return id, nil
}
