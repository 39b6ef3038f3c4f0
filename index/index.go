// Package index implements the staging index: the path-keyed map of
// (oid, mtime, size) that bridges working-tree writes and tree
// synthesis at commit time.
package index

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/nivl-labs/mvcs/internal/atomicfile"
	"github.com/nivl-labs/mvcs/oid"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// Entry is one staged path.
type Entry struct {
	Path  string
	ID    oid.Oid
	Mtime int64
	Size  int64
}

// Index is an ordered, path-unique collection of staged entries.
// Order is stable with respect to prior state, plus append-on-insert
// for brand new paths (spec.md §3).
type Index struct {
	entries []Entry
	byPath  map[string]int
}

// New returns an empty Index.
func New() *Index {
	return &Index{byPath: map[string]int{}}
}

// Load reads an index file, tolerating a missing file by returning an
// empty Index. Lines that fail to parse are skipped silently, per
// spec.md §4.5.
func Load(fs afero.Fs, path string) (*Index, error) {
	f, err := fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, xerrors.Errorf("could not open index at %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only handle, nothing to recover

	idx := New()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		entry, ok := parseLine(line)
		if !ok {
			continue
		}
		idx.upsert(entry)
	}
	if err := sc.Err(); err != nil {
		return nil, xerrors.Errorf("could not read index at %s: %w", path, err)
	}
	return idx, nil
}

// parseLine parses "<hex-oid> <mtime> <size> <path>".
func parseLine(line string) (Entry, bool) {
	parts := strings.SplitN(line, " ", 4)
	if len(parts) != 4 {
		return Entry{}, false
	}

	id, err := oid.FromHex(parts[0])
	if err != nil {
		return Entry{}, false
	}
	mtime, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Entry{}, false
	}
	size, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return Entry{}, false
	}
	if parts[3] == "" {
		return Entry{}, false
	}

	return Entry{Path: parts[3], ID: id, Mtime: mtime, Size: size}, true
}

// Save atomically writes the index to path.
func (idx *Index) Save(fs afero.Fs, path string) error {
	buf := new(bytes.Buffer)
	for _, e := range idx.entries {
		fmt.Fprintf(buf, "%s %d %d %s\n", e.ID.String(), e.Mtime, e.Size, e.Path)
	}
	if err := atomicfile.Write(fs, path, buf.Bytes(), 0o644); err != nil {
		return xerrors.Errorf("could not save index at %s: %w", path, err)
	}
	return nil
}

// Add upserts an entry by Path: an existing path's fields are
// overwritten in place, a new path is appended.
func (idx *Index) Add(path string, id oid.Oid, mtime, size int64) {
	idx.upsert(Entry{Path: path, ID: id, Mtime: mtime, Size: size})
}

func (idx *Index) upsert(e Entry) {
	if i, found := idx.byPath[e.Path]; found {
		idx.entries[i] = e
		return
	}
	idx.byPath[e.Path] = len(idx.entries)
	idx.entries = append(idx.entries, e)
}

// Remove deletes the entry for path, if present.
func (idx *Index) Remove(path string) {
	i, found := idx.byPath[path]
	if !found {
		return
	}
	idx.entries = append(idx.entries[:i], idx.entries[i+1:]...)
	delete(idx.byPath, path)
	for p, j := range idx.byPath {
		if j > i {
			idx.byPath[p] = j - 1
		}
	}
}

// Find returns the entry staged at path, if any.
func (idx *Index) Find(path string) (Entry, bool) {
	i, found := idx.byPath[path]
	if !found {
		return Entry{}, false
	}
	return idx.entries[i], true
}

// Entries returns a copy of all staged entries, in stored order.
func (idx *Index) Entries() []Entry {
	out := make([]Entry, len(idx.entries))
	copy(out, idx.entries)
	return out
}

// SortedEntries returns a copy of all staged entries sorted by Path,
// as required to synthesize a tree object (spec.md §4.4).
func (idx *Index) SortedEntries() []Entry {
	out := idx.Entries()
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Len returns the number of staged entries.
func (idx *Index) Len() int {
	return len(idx.entries)
}
