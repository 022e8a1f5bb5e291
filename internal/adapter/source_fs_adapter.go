// Package adapter contains filesystem and persistence adapters for the
// ctally CLI.
package adapter

import (
	"os"
	"path/filepath"

	m "ctally/internal/model"
)

// SourceFS abstracts the filesystem operations the tally workflow relies
// on when scanning user trees. It intentionally hides direct `os` access
// so the workflow logic can be tested without touching the disk.
type SourceFS interface {
	// Walk traverses root depth-first in lexical order, visiting every
	// entry. Returning filepath.SkipDir from fn prunes a directory.
	Walk(root m.Path, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its raw contents.
	ReadFile(path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path so the workflow can check
	// existence and distinguish files from directories.
	FileInfo(path m.Path) (os.FileInfo, error)

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into
// the domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFS is the concrete SourceFS backed by the local filesystem.
type LocalSourceFS struct{}

// NewLocalSourceFS constructs a LocalSourceFS ready to be wired into the
// workflow.
func NewLocalSourceFS() *LocalSourceFS {
	return &LocalSourceFS{}
}

// Walk iterates over all entries under root.
func (a *LocalSourceFS) Walk(root m.Path, fn FilepathWalkFunc) error {
	return filepath.Walk(string(root), func(path string, info os.FileInfo, err error) error {
		return fn(path, info, err)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFS) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFS) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFS) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}
