// Package userdir bootstraps the per-user prmpt directory from a skeleton
// embedded in the binary.
package userdir

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
)

//go:embed skel
var skel embed.FS

const skelRoot = "skel"

// ConfigFile is the file whose presence marks an initialised directory.
const ConfigFile = "prmpt.toml"

// Ensure creates dir from the skeleton if it has no configuration file yet.
// Existing files are never overwritten. It reports whether anything was
// written.
func Ensure(dir string) (bool, error) {
	if info, err := os.Stat(filepath.Join(dir, ConfigFile)); err == nil && !info.IsDir() {
		return false, nil
	}

	info, err := os.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return false, fmt.Errorf("cannot create %s directory: file exists", dir)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return false, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	written := false
	err = fs.WalkDir(skel, skelRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := p[len(skelRoot):]
		target := filepath.Join(dir, filepath.FromSlash(rel))

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if _, err := os.Stat(target); err == nil {
			return nil
		}

		data, err := skel.ReadFile(p)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return err
		}
		slog.Info("created from skeleton", "file", target)
		written = true
		return nil
	})
	if err != nil {
		return written, fmt.Errorf("failed to copy skeleton: %w", err)
	}

	return written, nil
}

// Files lists the skeleton's files relative to its root.
func Files() []string {
	var files []string
	_ = fs.WalkDir(skel, skelRoot, func(p string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			rel, _ := filepath.Rel(skelRoot, p)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	return files
}

// DefaultScript returns the embedded default prompt script, used when the
// configured script cannot be read.
func DefaultScript() string {
	data, err := skel.ReadFile(path.Join(skelRoot, "default.prmpt"))
	if err != nil {
		return `\user@\hostname\space\workingdir\space\dollar\space`
	}
	return string(data)
}
