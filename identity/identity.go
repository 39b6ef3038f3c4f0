// Package identity resolves the printable identity string recorded
// in a commit's author/committer fields, when the caller doesn't
// supply one explicitly.
package identity

import (
	"os/user"
	"strings"

	"golang.org/x/xerrors"
)

// Getter mirrors the subset of internal/env.Env this package needs,
// so it doesn't have to depend on the concrete type directly.
type Getter interface {
	Get(key string) string
	Has(key string) bool
}

// Env var names consulted, in order, before falling back to the OS
// user.
const (
	NameVar  = "MVCS_AUTHOR_NAME"
	EmailVar = "MVCS_AUTHOR_EMAIL"
)

// FromEnv resolves an identity string: "<name> <email>" if both
// MVCS_AUTHOR_NAME and MVCS_AUTHOR_EMAIL are set, the name alone if
// only that's set, or the OS user's username as a last resort.
func FromEnv(e Getter) (string, error) {
	name := strings.TrimSpace(e.Get(NameVar))
	email := strings.TrimSpace(e.Get(EmailVar))

	switch {
	case name != "" && email != "":
		return name + " " + email, nil
	case name != "":
		return name, nil
	}

	u, err := user.Current()
	if err != nil {
		return "", xerrors.Errorf("could not resolve an identity: %w", err)
	}
	return u.Username, nil
}
