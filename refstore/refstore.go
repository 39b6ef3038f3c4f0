// Package refstore implements references (refs/heads/<branch>) and
// HEAD: reading, atomic writing, and symbolic resolution.
package refstore

import (
	"bytes"
	"errors"
	"os"
	"strings"

	"github.com/nivl-labs/mvcs/internal/atomicfile"
	"github.com/nivl-labs/mvcs/internal/syncutil"
	"github.com/nivl-labs/mvcs/internal/vcspath"
	"github.com/nivl-labs/mvcs/oid"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// ErrNotFound is returned when a ref or HEAD cannot be read.
var ErrNotFound = errors.New("reference not found")

// ErrInvalidName is returned by WriteRef when the given branch name
// isn't usable as a ref path component.
var ErrInvalidName = errors.New("reference name is not valid")

// ErrInvalid is returned when HEAD or a ref file doesn't parse.
var ErrInvalid = errors.New("reference is not valid")

const headSymbolicPrefix = "ref: "

// lockShards is the number of stripes the per-ref mutex is split
// across; a prime gives better distribution with SDBMHash.
const lockShards = 257

// headKey is the fixed lock key guarding HEAD, which has no ref name
// of its own to hash.
var headKey = []byte("HEAD")

// Store reads and writes refs/heads/<name> and HEAD under a
// repository's ".vcs" directory.
type Store struct {
	fs   afero.Fs
	root string

	mu *syncutil.NamedMutex
}

// New returns a Store rooted at vcsDir (the repository's ".vcs"
// directory).
func New(fs afero.Fs, vcsDir string) *Store {
	return &Store{
		fs:   fs,
		root: vcsDir,
		mu:   syncutil.NewNamedMutex(lockShards),
	}
}

// WriteRef atomically writes "<oid>\n" to refs/heads/<name>. Safe for
// concurrent use.
func (s *Store) WriteRef(name string, id oid.Oid) error {
	if !IsRefNameValid(name) {
		return xerrors.Errorf("%q: %w", name, ErrInvalidName)
	}

	key := []byte(name)
	s.mu.Lock(key)
	defer s.mu.Unlock(key)

	p := vcspath.RefPath(s.root, vcspath.BranchRefName(name))
	if err := atomicfile.Write(s.fs, p, []byte(id.String()+"\n"), 0o644); err != nil {
		return xerrors.Errorf("could not write ref %s: %w", name, err)
	}
	return nil
}

// ReadRef reads and trims refs/heads/<name>, returning ErrNotFound if
// it doesn't exist. Safe for concurrent use.
func (s *Store) ReadRef(name string) (oid.Oid, error) {
	key := []byte(name)
	s.mu.RLock(key)
	defer s.mu.RUnlock(key)
	return s.readRefUnsafe(name)
}

func (s *Store) readRefUnsafe(name string) (oid.Oid, error) {
	p := vcspath.RefPath(s.root, vcspath.BranchRefName(name))
	return s.readOidFile(p)
}

// DeleteRef removes refs/heads/<name>. Safe for concurrent use.
func (s *Store) DeleteRef(name string) error {
	key := []byte(name)
	s.mu.Lock(key)
	defer s.mu.Unlock(key)

	p := vcspath.RefPath(s.root, vcspath.BranchRefName(name))
	if err := s.fs.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return xerrors.Errorf("ref %s: %w", name, ErrNotFound)
		}
		return xerrors.Errorf("could not delete ref %s: %w", name, err)
	}
	return nil
}

// RefExists reports whether refs/heads/<name> exists. Safe for
// concurrent use.
func (s *Store) RefExists(name string) (bool, error) {
	key := []byte(name)
	s.mu.RLock(key)
	defer s.mu.RUnlock(key)

	p := vcspath.RefPath(s.root, vcspath.BranchRefName(name))
	_, err := s.fs.Stat(p)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, xerrors.Errorf("could not stat ref at %s: %w", p, err)
}

// ListRefs returns the short names of the branch refs stored directly
// under refs/heads, skipping dot-files (such as in-flight temp files).
// Refs nested in subdirectories (e.g. "feature/foo") are not listed.
func (s *Store) ListRefs() ([]string, error) {
	dir := vcspath.RefPath(s.root, vcspath.RefsHeads)
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, xerrors.Errorf("could not list refs: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (s *Store) readOidFile(p string) (oid.Oid, error) {
	data, err := afero.ReadFile(s.fs, p)
	if err != nil {
		if os.IsNotExist(err) {
			return oid.Null, ErrNotFound
		}
		return oid.Null, xerrors.Errorf("could not read %s: %w", p, err)
	}
	id, err := oid.FromHex(strings.TrimSpace(string(data)))
	if err != nil {
		return oid.Null, xerrors.Errorf("%s: %w", p, ErrInvalid)
	}
	return id, nil
}

// UpdateHead writes HEAD. If target is a 40-char hex oid, HEAD is
// written in detached form; otherwise it's written as a symbolic
// reference to refs/heads/<target>. This is purely syntactic: callers
// (vcs.Checkout) are responsible for validating the target exists.
// Safe for concurrent use.
func (s *Store) UpdateHead(target string) error {
	s.mu.Lock(headKey)
	defer s.mu.Unlock(headKey)

	var content string
	if id, err := oid.FromHex(target); err == nil {
		content = id.String() + "\n"
	} else {
		content = headSymbolicPrefix + vcspath.BranchRefName(target) + "\n"
	}

	p := vcspath.RefPath(s.root, vcspath.HEAD)
	if err := atomicfile.Write(s.fs, p, []byte(content), 0o644); err != nil {
		return xerrors.Errorf("could not write HEAD: %w", err)
	}
	return nil
}

// readHead returns HEAD's raw, trimmed contents. Caller must hold
// headKey.
func (s *Store) readHead() ([]byte, error) {
	p := vcspath.RefPath(s.root, vcspath.HEAD)
	data, err := afero.ReadFile(s.fs, p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, xerrors.Errorf("could not read HEAD: %w", err)
	}
	return bytes.TrimSpace(data), nil
}

// IsHeadDetached reports whether HEAD currently holds a raw oid
// rather than a symbolic reference. Safe for concurrent use.
func (s *Store) IsHeadDetached() (bool, error) {
	s.mu.RLock(headKey)
	defer s.mu.RUnlock(headKey)

	data, err := s.readHead()
	if err != nil {
		return false, err
	}
	return !bytes.HasPrefix(data, []byte(headSymbolicPrefix)), nil
}

// GetCurrentBranch returns the short branch name HEAD points to, or
// ("", false) if HEAD is detached. Safe for concurrent use.
func (s *Store) GetCurrentBranch() (string, bool, error) {
	s.mu.RLock(headKey)
	defer s.mu.RUnlock(headKey)

	data, err := s.readHead()
	if err != nil {
		return "", false, err
	}
	if !bytes.HasPrefix(data, []byte(headSymbolicPrefix)) {
		return "", false, nil
	}
	full := string(bytes.TrimPrefix(data, []byte(headSymbolicPrefix)))
	return vcspath.BranchShortName(full), true, nil
}

// GetHeadCommit resolves HEAD to a commit oid. If HEAD is attached to
// a branch with no commits yet, it returns (oid.Null, false, nil).
// Safe for concurrent use.
func (s *Store) GetHeadCommit() (oid.Oid, bool, error) {
	s.mu.RLock(headKey)
	defer s.mu.RUnlock(headKey)

	data, err := s.readHead()
	if err != nil {
		return oid.Null, false, err
	}

	if bytes.HasPrefix(data, []byte(headSymbolicPrefix)) {
		branch := vcspath.BranchShortName(string(bytes.TrimPrefix(data, []byte(headSymbolicPrefix))))

		branchKey := []byte(branch)
		s.mu.RLock(branchKey)
		id, err := s.readRefUnsafe(branch)
		s.mu.RUnlock(branchKey)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return oid.Null, false, nil
			}
			return oid.Null, false, err
		}
		return id, true, nil
	}

	id, err := oid.FromHex(string(data))
	if err != nil {
		return oid.Null, false, xerrors.Errorf("HEAD: %w", ErrInvalid)
	}
	return id, true, nil
}

// IsRefNameValid reports whether name is usable as a branch's short
// name, following the same constraints git applies to ref paths.
func IsRefNameValid(name string) bool {
	if name == "" || name[len(name)-1] == '/' || name[len(name)-1] == '.' {
		return false
	}

	for i, c := range name {
		if c < 32 || c == 127 {
			return false
		}
		if c == '*' || c == '?' || c == '!' || c == '^' {
			return false
		}
		if c == ' ' || c == '[' || c == '\\' || c == ':' || c == '~' {
			return false
		}
		if i < len(name)-1 {
			switch name[i : i+2] {
			case "@{", "..":
				return false
			}
		}
	}

	for _, s := range strings.Split(name, "/") {
		if s == "" || s[0] == '.' || s[len(s)-1] == '.' || strings.HasSuffix(s, ".lock") {
			return false
		}
	}

	return true
}
