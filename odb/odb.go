// Package odb implements the content-addressed object store: loose
// objects written to and read from ".vcs/objects/<oid[0:2]>/<oid[2:]>",
// zlib-compressed, guarded by a per-object mutex and fronted by an
// in-memory read cache. No packfiles are supported (spec.md
// Non-goals).
package odb

import (
	"errors"
	"os"

	"github.com/nivl-labs/mvcs/internal/atomicfile"
	"github.com/nivl-labs/mvcs/internal/cache"
	"github.com/nivl-labs/mvcs/internal/syncutil"
	"github.com/nivl-labs/mvcs/internal/vcspath"
	"github.com/nivl-labs/mvcs/object"
	"github.com/nivl-labs/mvcs/oid"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// ErrNotFound is returned by Get when no object with the requested id
// exists in the store.
var ErrNotFound = errors.New("object not found")

// DefaultCacheSize bounds the number of decoded objects kept in
// memory. 0 would mean unbounded (internal/cache.NewLRU semantics);
// a store this small doesn't need to risk that.
const DefaultCacheSize = 256

// lockShards is the number of stripes the per-object mutex is split
// across; a prime gives better distribution with SDBMHash.
const lockShards = 257

// Store is a content-addressed object database rooted at a
// repository's ".vcs" directory.
type Store struct {
	fs   afero.Fs
	root string // path to ".vcs"

	mu    *syncutil.NamedMutex
	cache *cache.LRU
}

// New returns a Store rooted at vcsDir (the repository's ".vcs"
// directory, not the working tree root).
func New(fs afero.Fs, vcsDir string) *Store {
	return &Store{
		fs:    fs,
		root:  vcsDir,
		mu:    syncutil.NewNamedMutex(lockShards),
		cache: cache.NewLRU(DefaultCacheSize),
	}
}

func (s *Store) path(id oid.Oid) string {
	return vcspath.ObjectPath(s.root, id.String())
}

// Has reports whether an object with the given id is present. Safe
// for concurrent use.
func (s *Store) Has(id oid.Oid) (bool, error) {
	s.mu.RLock(id.Bytes())
	defer s.mu.RUnlock(id.Bytes())
	return s.hasUnsafe(id)
}

func (s *Store) hasUnsafe(id oid.Oid) (bool, error) {
	_, err := s.fs.Stat(s.path(id))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, xerrors.Errorf("could not stat object %s: %w", id, err)
}

// Get reads and decodes the object with the given id. Safe for
// concurrent use.
func (s *Store) Get(id oid.Oid) (*object.Object, error) {
	s.mu.RLock(id.Bytes())
	defer s.mu.RUnlock(id.Bytes())
	return s.getUnsafe(id)
}

func (s *Store) getUnsafe(id oid.Oid) (*object.Object, error) {
	if cached, found := s.cache.Get(id); found {
		if o, ok := cached.(*object.Object); ok {
			return o, nil
		}
	}

	p := s.path(id)
	compressed, err := afero.ReadFile(s.fs, p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, xerrors.Errorf("object %s: %w", id, ErrNotFound)
		}
		return nil, xerrors.Errorf("could not read object %s at %s: %w", id, p, err)
	}

	o, err := object.Decompress(compressed)
	if err != nil {
		return nil, xerrors.Errorf("could not decode object %s at %s: %w", id, p, err)
	}

	s.cache.Add(id, o)
	return o, nil
}

// Put writes o to the store, returning its id. Writing an object
// whose id already exists is a no-op (spec.md invariant 2): content
// addressing makes every write idempotent. Safe for concurrent use.
func (s *Store) Put(o *object.Object) (oid.Oid, error) {
	id := o.ID()
	s.mu.Lock(id.Bytes())
	defer s.mu.Unlock(id.Bytes())

	found, err := s.hasUnsafe(id)
	if err != nil {
		return oid.Null, err
	}
	if found {
		return id, nil
	}

	compressed, err := o.Compress()
	if err != nil {
		return oid.Null, xerrors.Errorf("could not compress object %s: %w", id, err)
	}

	// Loose objects are read-only once written.
	if err := atomicfile.Write(s.fs, s.path(id), compressed, 0o444); err != nil {
		return oid.Null, xerrors.Errorf("could not persist object %s: %w", id, err)
	}

	// Deliberately not cached here: the cache is only ever populated by
	// getUnsafe, after bytes have actually round-tripped through disk
	// and decoded cleanly. Seeding it on Put would let a later on-disk
	// corruption hide behind the in-process copy forever.
	return id, nil
}
