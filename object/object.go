// Package object implements the three object kinds stored in the
// object database — blob, tree and commit — and the framing/
// compression codec shared by all of them.
package object

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/nivl-labs/mvcs/internal/errutil"
	"github.com/nivl-labs/mvcs/internal/readutil"
	"github.com/nivl-labs/mvcs/oid"
	"golang.org/x/xerrors"
)

var (
	// ErrUnknownType is returned when a frame names a type other than
	// blob, tree or commit.
	ErrUnknownType = errors.New("unknown object type")

	// ErrInvalid is returned when a frame's header doesn't parse.
	ErrInvalid = errors.New("invalid object frame")

	// ErrTreeInvalid is returned when a tree payload doesn't parse.
	ErrTreeInvalid = errors.New("invalid tree")

	// ErrCommitInvalid is returned when a commit payload doesn't parse.
	ErrCommitInvalid = errors.New("invalid commit")
)

// Type identifies which of the three object kinds a payload holds.
type Type int8

// The three object kinds this scope supports.
const (
	TypeBlob Type = iota + 1
	TypeTree
	TypeCommit
)

func (t Type) String() string {
	switch t {
	case TypeBlob:
		return "blob"
	case TypeTree:
		return "tree"
	case TypeCommit:
		return "commit"
	default:
		return "invalid"
	}
}

// NewTypeFromString parses a type name as found in a frame header.
func NewTypeFromString(s string) (Type, error) {
	switch s {
	case "blob":
		return TypeBlob, nil
	case "tree":
		return TypeTree, nil
	case "commit":
		return TypeCommit, nil
	default:
		return 0, ErrUnknownType
	}
}

// Object is a content-addressed blob/tree/commit. Its id is derived
// from its framed bytes: "<type> <size>\0<payload>".
type Object struct {
	id      oid.Oid
	typ     Type
	content []byte

	idOnce sync.Once
}

// New builds an Object of the given type from its raw payload. The id
// is computed lazily, on first access.
func New(typ Type, content []byte) *Object {
	return &Object{typ: typ, content: content}
}

// ID returns the object's content address, computing it on first use.
func (o *Object) ID() oid.Oid {
	o.idOnce.Do(func() {
		o.id, _ = o.frame()
	})
	return o.id
}

// Type returns the object's kind.
func (o *Object) Type() Type {
	return o.typ
}

// Size returns the size of the payload, in bytes.
func (o *Object) Size() int {
	return len(o.content)
}

// Bytes returns the object's raw payload.
func (o *Object) Bytes() []byte {
	return o.content
}

// frame returns the oid and the framed ("<type> <size>\0<payload>")
// bytes for this object.
func (o *Object) frame() (oid.Oid, []byte) {
	w := new(bytes.Buffer)
	w.WriteString(o.typ.String())
	w.WriteByte(' ')
	w.WriteString(strconv.Itoa(o.Size()))
	w.WriteByte(0)
	w.Write(o.content)

	framed := w.Bytes()
	return oid.Sum(framed), framed
}

// Compress returns the zlib-compressed framed bytes, as stored on
// disk by the object database.
func (o *Object) Compress() (data []byte, err error) {
	_, framed := o.frame()

	buf := new(bytes.Buffer)
	zw := zlib.NewWriter(buf)
	if _, err = zw.Write(framed); err != nil {
		_ = zw.Close()
		return nil, xerrors.Errorf("could not zlib the object: %w", err)
	}
	// Close flushes the pending deflate data and the checksum, so it
	// has to run before the buffer's bytes are taken.
	if err = zw.Close(); err != nil {
		return nil, xerrors.Errorf("could not zlib the object: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress inflates compressed data and parses the frame header,
// returning a ready-to-use Object.
func Decompress(compressed []byte) (o *Object, err error) {
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, xerrors.Errorf("could not open zlib reader: %w", err)
	}
	defer errutil.Close(zr, &err)

	framed, err := io.ReadAll(zr)
	if err != nil {
		return nil, xerrors.Errorf("could not inflate object: %w", err)
	}
	return Parse(framed)
}

// Parse decodes an already-inflated frame "<type> <size>\0<payload>"
// into an Object.
func Parse(framed []byte) (*Object, error) {
	typData := readutil.ReadTo(framed, ' ')
	if len(typData) == 0 {
		return nil, xerrors.Errorf("could not read object type: %w", ErrInvalid)
	}
	offset := len(typData) + 1

	typ, err := NewTypeFromString(string(typData))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", err, ErrInvalid)
	}

	sizeData := readutil.ReadTo(framed[offset:], 0)
	if len(sizeData) == 0 {
		return nil, xerrors.Errorf("could not read object size: %w", ErrInvalid)
	}
	offset += len(sizeData) + 1

	size, err := strconv.Atoi(string(sizeData))
	if err != nil {
		return nil, xerrors.Errorf("invalid object size %q: %w", sizeData, ErrInvalid)
	}

	payload := framed[offset:]
	if len(payload) != size {
		return nil, xerrors.Errorf("size mismatch: header says %d, got %d: %w", size, len(payload), ErrInvalid)
	}

	o := &Object{typ: typ, content: payload}
	o.id, _ = o.frame()
	return o, nil
}

// AsBlob views the object as a Blob.
func (o *Object) AsBlob() *Blob {
	return &Blob{rawObject: o}
}

// AsTree parses the object's payload as a Tree.
func (o *Object) AsTree() (*Tree, error) {
	if o.typ != TypeTree {
		return nil, xerrors.Errorf("type %s is not a tree: %w", o.typ, ErrTreeInvalid)
	}
	return treeFromObject(o)
}

// AsCommit parses the object's payload as a Commit.
func (o *Object) AsCommit() (*Commit, error) {
	if o.typ != TypeCommit {
		return nil, xerrors.Errorf("type %s is not a commit: %w", o.typ, ErrCommitInvalid)
	}
	return commitFromObject(o)
}
