package object

import "github.com/nivl-labs/mvcs/oid"

// Blob is a file's contents, stored verbatim.
type Blob struct {
	rawObject *Object
}

// NewBlob wraps raw file contents as a Blob-typed Object.
func NewBlob(content []byte) *Blob {
	return &Blob{rawObject: New(TypeBlob, content)}
}

// ID returns the blob's content address.
func (b *Blob) ID() oid.Oid {
	return b.rawObject.ID()
}

// Bytes returns the blob's contents.
func (b *Blob) Bytes() []byte {
	return b.rawObject.content
}

// ToObject returns the Blob's underlying Object.
func (b *Blob) ToObject() *Object {
	return b.rawObject
}
