package object

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/nivl-labs/mvcs/internal/readutil"
	"github.com/nivl-labs/mvcs/oid"
	"golang.org/x/xerrors"
)

// Mode is the file mode recorded for every tree entry. This scope
// stores only flat trees of regular files, so it is always 100644.
const Mode = 0o100644

// TreeEntry is one (name, oid) entry inside a Tree; its mode is
// always Mode and is not stored in the struct.
type TreeEntry struct {
	Name string
	ID   oid.Oid
}

// Tree is an ordered, name-unique set of entries pointing at blobs.
type Tree struct {
	rawObject *Object
	entries   []TreeEntry
}

// NewTree builds a Tree from entries already sorted and de-duplicated
// by Name; the caller is responsible for that ordering (spec.md §4.4).
func NewTree(entries []TreeEntry) *Tree {
	t := &Tree{entries: entries}
	t.rawObject = t.toObject()
	return t
}

// SortEntries sorts entries by Name, byte-lexicographic, in place.
func SortEntries(entries []TreeEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
}

// Entries returns a copy of the tree's entries, in stored order.
func (t *Tree) Entries() []TreeEntry {
	out := make([]TreeEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// ID returns the tree object's content address.
func (t *Tree) ID() oid.Oid {
	return t.rawObject.ID()
}

// ToObject returns the underlying Object.
func (t *Tree) ToObject() *Object {
	return t.rawObject
}

func (t *Tree) toObject() *Object {
	buf := new(bytes.Buffer)
	for _, e := range t.entries {
		buf.WriteString(strconv.FormatInt(Mode, 8))
		buf.WriteByte(' ')
		buf.WriteString(e.Name)
		buf.WriteByte(0)
		buf.Write(e.ID.Bytes())
	}
	return New(TypeTree, buf.Bytes())
}

// treeFromObject decodes a tree payload of the form
// "<mode> <name>\0<20-byte-oid>" repeated until the payload is
// exhausted, failing with ErrTreeInvalid on any missing field or
// trailing bytes.
func treeFromObject(o *Object) (*Tree, error) {
	data := o.Bytes()
	entries := []TreeEntry{}
	seen := map[string]struct{}{}

	offset := 0
	for offset < len(data) {
		modeBytes := readutil.ReadTo(data[offset:], ' ')
		if len(modeBytes) == 0 {
			return nil, xerrors.Errorf("could not read entry mode at offset %d: %w", offset, ErrTreeInvalid)
		}
		offset += len(modeBytes) + 1

		mode, err := strconv.ParseInt(string(modeBytes), 8, 32)
		if err != nil || mode != Mode {
			return nil, xerrors.Errorf("unsupported tree entry mode %q: %w", modeBytes, ErrTreeInvalid)
		}

		nameBytes := readutil.ReadTo(data[offset:], 0)
		if len(nameBytes) == 0 {
			return nil, xerrors.Errorf("could not read entry name at offset %d: %w", offset, ErrTreeInvalid)
		}
		offset += len(nameBytes) + 1
		name := string(nameBytes)

		if offset+oid.Size > len(data) {
			return nil, xerrors.Errorf("truncated entry oid for %q: %w", name, ErrTreeInvalid)
		}
		id, err := oid.FromBytes(data[offset : offset+oid.Size])
		if err != nil {
			return nil, xerrors.Errorf("invalid entry oid for %q: %w", name, ErrTreeInvalid)
		}
		offset += oid.Size

		if _, dup := seen[name]; dup {
			return nil, xerrors.Errorf("duplicate entry name %q: %w", name, ErrTreeInvalid)
		}
		seen[name] = struct{}{}

		entries = append(entries, TreeEntry{Name: name, ID: id})
	}

	if !sort.SliceIsSorted(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name }) {
		return nil, xerrors.Errorf("entries not sorted by name: %w", ErrTreeInvalid)
	}

	return &Tree{rawObject: o, entries: entries}, nil
}
