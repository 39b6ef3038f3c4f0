package object

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/nivl-labs/mvcs/internal/readutil"
	"github.com/nivl-labs/mvcs/oid"
	"golang.org/x/xerrors"
)

// Signature pairs an identity string with the time it was recorded.
// Unlike upstream git's signature this scope carries no email or
// timezone: identity is whatever printable string the identity
// provider (§6) returned, and the time is a plain Unix timestamp.
type Signature struct {
	Identity string
	Time     time.Time
}

// String renders the signature as stored in a commit frame:
// "<identity> <unix-seconds>".
func (s Signature) String() string {
	return s.Identity + " " + strconv.FormatInt(s.Time.Unix(), 10)
}

// IsZero reports whether the signature carries no data.
func (s Signature) IsZero() bool {
	return s.Identity == "" && s.Time.IsZero()
}

// ParseSignature splits "<identity> <unix-seconds>" from the right on
// the last space, per the commit decoder's recognition rule.
func ParseSignature(b []byte) (Signature, error) {
	s := string(b)
	i := strings.LastIndexByte(s, ' ')
	if i < 0 {
		return Signature{}, xerrors.Errorf("missing timestamp in signature %q: %w", s, ErrCommitInvalid)
	}

	ts, err := strconv.ParseInt(s[i+1:], 10, 64)
	if err != nil {
		return Signature{}, xerrors.Errorf("invalid timestamp in signature %q: %w", s, ErrCommitInvalid)
	}

	return Signature{
		Identity: s[:i],
		Time:     time.Unix(ts, 0).UTC(),
	}, nil
}

// CommitOptions holds the optional pieces of a commit besides its
// tree and author.
type CommitOptions struct {
	Message   string
	Committer Signature
	ParentIDs []oid.Oid
}

// Commit is a point in history: a tree snapshot, zero or more
// parents, and the identities that authored/recorded it.
type Commit struct {
	rawObject *Object

	treeID    oid.Oid
	parentIDs []oid.Oid
	author    Signature
	committer Signature
	message   string
}

// NewCommit builds a Commit from a tree id, an author signature and
// the remaining options. If Committer is the zero value, the author
// is used as committer too.
func NewCommit(treeID oid.Oid, author Signature, opts CommitOptions) *Commit {
	c := &Commit{
		treeID:    treeID,
		author:    author,
		committer: opts.Committer,
		parentIDs: opts.ParentIDs,
		message:   opts.Message,
	}
	if c.committer.IsZero() {
		c.committer = author
	}
	c.rawObject = c.toObject()
	return c
}

// ID returns the commit object's content address.
func (c *Commit) ID() oid.Oid {
	return c.rawObject.ID()
}

// TreeID returns the id of the tree this commit snapshots.
func (c *Commit) TreeID() oid.Oid {
	return c.treeID
}

// ParentIDs returns a copy of the commit's parent ids, in order. A
// root commit has none; this scope never writes more than one, even
// for merges (spec.md §9).
func (c *Commit) ParentIDs() []oid.Oid {
	out := make([]oid.Oid, len(c.parentIDs))
	copy(out, c.parentIDs)
	return out
}

// Author returns the commit's author signature.
func (c *Commit) Author() Signature {
	return c.author
}

// Committer returns the commit's committer signature.
func (c *Commit) Committer() Signature {
	return c.committer
}

// Message returns the commit message.
func (c *Commit) Message() string {
	return c.message
}

// ToObject returns the underlying Object.
func (c *Commit) ToObject() *Object {
	return c.rawObject
}

func (c *Commit) toObject() *Object {
	buf := new(bytes.Buffer)

	buf.WriteString("tree ")
	buf.WriteString(c.treeID.String())
	buf.WriteByte('\n')

	for _, p := range c.parentIDs {
		buf.WriteString("parent ")
		buf.WriteString(p.String())
		buf.WriteByte('\n')
	}

	buf.WriteString("author ")
	buf.WriteString(c.author.String())
	buf.WriteByte('\n')

	buf.WriteString("committer ")
	buf.WriteString(c.committer.String())
	buf.WriteByte('\n')

	buf.WriteByte('\n')

	buf.WriteString(c.message)
	if len(c.message) == 0 || c.message[len(c.message)-1] != '\n' {
		buf.WriteByte('\n')
	}

	return New(TypeCommit, buf.Bytes())
}

// commitFromObject decodes a commit frame line by line until a blank
// line is reached; everything after is the message. Unknown header
// lines are skipped per spec.md §4.4.
func commitFromObject(o *Object) (*Commit, error) {
	data := o.Bytes()
	c := &Commit{rawObject: o}

	offset := 0
	for {
		line := readutil.ReadTo(data[offset:], '\n')
		if line == nil {
			return nil, xerrors.Errorf("commit missing blank line before message: %w", ErrCommitInvalid)
		}
		offset += len(line) + 1

		if len(line) == 0 {
			c.message = strings.TrimSuffix(string(data[offset:]), "\n")
			break
		}

		kv := bytes.SplitN(line, []byte{' '}, 2)
		if len(kv) != 2 {
			continue
		}
		var err error
		switch string(kv[0]) {
		case "tree":
			c.treeID, err = oid.FromChars(kv[1])
			if err != nil {
				return nil, xerrors.Errorf("invalid tree id %q: %w", kv[1], ErrCommitInvalid)
			}
		case "parent":
			id, perr := oid.FromChars(kv[1])
			if perr != nil {
				return nil, xerrors.Errorf("invalid parent id %q: %w", kv[1], ErrCommitInvalid)
			}
			c.parentIDs = append(c.parentIDs, id)
		case "author":
			c.author, err = ParseSignature(kv[1])
			if err != nil {
				return nil, err
			}
		case "committer":
			c.committer, err = ParseSignature(kv[1])
			if err != nil {
				return nil, err
			}
		}
	}

	if c.treeID.IsZero() {
		return nil, xerrors.Errorf("commit has no tree: %w", ErrCommitInvalid)
	}
	if c.author.IsZero() {
		return nil, xerrors.Errorf("commit has no author: %w", ErrCommitInvalid)
	}

	return c, nil
}
