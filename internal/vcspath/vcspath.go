// Package vcspath contains the constants and helpers needed to locate
// files and directories inside a repository's .vcs directory.
package vcspath

import "path/filepath"

// Files and directories inside .vcs
const (
	DotVCS       = ".vcs"
	Objects      = "objects"
	RefsDir      = "refs"
	RefsHeads    = RefsDir + "/heads"
	HEAD         = "HEAD"
	Index        = "index"
	Config       = "config"
)

// ObjectShard returns the directory that holds the loose object
// identified by the given 40-char hex oid: objects/<oid[0:2]>
func ObjectShard(root, hexOid string) string {
	return filepath.Join(root, Objects, hexOid[:2])
}

// ObjectPath returns the path of a loose object under root:
// objects/<oid[0:2]>/<oid[2:]>
func ObjectPath(root, hexOid string) string {
	return filepath.Join(ObjectShard(root, hexOid), hexOid[2:])
}

// RefPath returns the on-disk path under root of a ref given its name
// relative to .vcs, e.g. "refs/heads/master" or "HEAD".
func RefPath(root, name string) string {
	return filepath.Join(root, filepath.FromSlash(name))
}

// BranchRefName returns the ref name for a branch's short name, e.g.
// "master" -> "refs/heads/master"
func BranchRefName(shortName string) string {
	return RefsHeads + "/" + shortName
}

// BranchShortName strips the refs/heads/ prefix from a full ref name.
func BranchShortName(fullName string) string {
	const prefix = RefsHeads + "/"
	if len(fullName) > len(prefix) && fullName[:len(prefix)] == prefix {
		return fullName[len(prefix):]
	}
	return fullName
}
