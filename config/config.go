// Package config writes the repository's ".vcs/config" file at init
// time. Reading it back is intentionally out of scope for now (see
// the project's design notes on this Open Question).
package config

import (
	"bytes"
	"path/filepath"

	"github.com/nivl-labs/mvcs/internal/atomicfile"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
	"gopkg.in/ini.v1"
)

// Section/key names written to .vcs/config, per spec.md §6.
const (
	SectionCore      = "core"
	KeyFormatVersion = "repositoryformatversion"
	KeyFileMode      = "filemode"
)

// WriteDefault writes the default config stub to vcsDir/config.
func WriteDefault(fs afero.Fs, vcsDir string) error {
	cfg := ini.Empty()

	core, err := cfg.NewSection(SectionCore)
	if err != nil {
		return xerrors.Errorf("could not create core section: %w", err)
	}
	values := map[string]string{
		KeyFormatVersion: "0",
		KeyFileMode:      "true",
	}
	for k, v := range values {
		if _, err := core.NewKey(k, v); err != nil {
			return xerrors.Errorf("could not set %s: %w", k, err)
		}
	}

	buf := new(bytes.Buffer)
	if _, err := cfg.WriteTo(buf); err != nil {
		return xerrors.Errorf("could not render config: %w", err)
	}

	path := filepath.Join(vcsDir, "config")
	if err := atomicfile.Write(fs, path, buf.Bytes(), 0o644); err != nil {
		return xerrors.Errorf("could not write config at %s: %w", path, err)
	}
	return nil
}
