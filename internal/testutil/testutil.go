// Package testutil provides repository fixtures for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/pders01/snapvault/internal/repo"
)

// TempVault is a snapvault repository in a temporary directory, backed by
// the real filesystem. Command tests chdir into it; core tests reach the
// handle directly.
type TempVault struct {
	Path string
	Fs   afero.Fs
	Repo *repo.Repository
	T    *testing.T
}

// NewTempVault creates and initializes a repository in a fresh temp
// directory. The directory is removed when the test finishes.
func NewTempVault(t *testing.T, repoName string) *TempVault {
	t.Helper()

	dir := t.TempDir()
	fsys := afero.NewOsFs()

	r, err := repo.Init(fsys, dir, repoName)
	if err != nil {
		t.Fatalf("failed to init repository: %v", err)
	}

	return &TempVault{Path: dir, Fs: fsys, Repo: r, T: t}
}

// NewMemVault creates and initializes a repository on an in-memory
// filesystem rooted at /work.
func NewMemVault(t *testing.T, repoName string) *TempVault {
	t.Helper()

	fsys := afero.NewMemMapFs()
	root := "/work"
	if err := fsys.MkdirAll(root, 0755); err != nil {
		t.Fatalf("failed to create root: %v", err)
	}

	r, err := repo.Init(fsys, root, repoName)
	if err != nil {
		t.Fatalf("failed to init repository: %v", err)
	}

	return &TempVault{Path: root, Fs: fsys, Repo: r, T: t}
}

// Chdir moves the process into the vault's directory for the duration of
// the test. Only valid for TempVault fixtures on the real filesystem.
func (v *TempVault) Chdir() {
	v.T.Helper()

	oldWd, err := os.Getwd()
	if err != nil {
		v.T.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(v.Path); err != nil {
		v.T.Fatalf("failed to chdir: %v", err)
	}
	v.T.Cleanup(func() {
		if err := os.Chdir(oldWd); err != nil {
			v.T.Errorf("failed to restore working directory: %v", err)
		}
	})
}

// CreateFile writes a file under the vault's working tree, creating
// parent directories as needed.
func (v *TempVault) CreateFile(name, content string) {
	v.T.Helper()

	path := filepath.Join(v.Path, name)
	if err := v.Fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		v.T.Fatalf("failed to create directory: %v", err)
	}
	if err := afero.WriteFile(v.Fs, path, []byte(content), 0644); err != nil {
		v.T.Fatalf("failed to create file: %v", err)
	}
}

// RemoveFile deletes a file from the working tree.
func (v *TempVault) RemoveFile(name string) {
	v.T.Helper()

	if err := v.Fs.Remove(filepath.Join(v.Path, name)); err != nil {
		v.T.Fatalf("failed to remove file: %v", err)
	}
}

// ReadFile returns a working tree file's content.
func (v *TempVault) ReadFile(name string) string {
	v.T.Helper()

	data, err := afero.ReadFile(v.Fs, filepath.Join(v.Path, name))
	if err != nil {
		v.T.Fatalf("failed to read file: %v", err)
	}
	return string(data)
}

// FileExists reports whether a path exists under the vault's directory.
func (v *TempVault) FileExists(name string) bool {
	v.T.Helper()

	ok, err := afero.Exists(v.Fs, filepath.Join(v.Path, name))
	if err != nil {
		v.T.Fatalf("failed to stat file: %v", err)
	}
	return ok
}

// Track adds a path to the index, failing the test on error.
func (v *TempVault) Track(path string) {
	v.T.Helper()

	if err := v.Repo.Add(path, false); err != nil {
		v.T.Fatalf("failed to track %s: %v", path, err)
	}
}
