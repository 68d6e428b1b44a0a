package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
)

// Add registers path in the index and persists it. Files land in the
// tracked file set; a second add of the same file reports ErrAlreadyTracked
// and leaves the set unchanged. Directories get an idempotent entry in the
// tracked directory map; with recursive set, the directory is walked and
// every contained file path not already cached is appended to its capture
// list. The capture list is an add-time cache only, regrown by repeated
// recursive adds, never refreshed on its own.
func (r *Repository) Add(path string, recursive bool) error {
	path = filepath.Clean(path)

	info, err := r.Fs.Stat(filepath.Join(r.Root, path))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}

	if !info.IsDir() {
		if r.Index.HasFile(path) {
			return fmt.Errorf("%w: %s", ErrAlreadyTracked, path)
		}
		r.Index.Files = append(r.Index.Files, path)
		return r.Save()
	}

	if !r.Index.HasDirectory(path) {
		r.Index.Directories[path] = []string{}
	}
	if recursive {
		captured := r.Index.Directories[path]
		err := afero.Walk(r.Fs, filepath.Join(r.Root, path), func(p string, fi os.FileInfo, err error) error {
			if err != nil || fi.IsDir() {
				return err
			}
			rel, err := filepath.Rel(r.Root, p)
			if err != nil {
				return err
			}
			if !slices.Contains(captured, rel) {
				captured = append(captured, rel)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("walking %s: %w", path, err)
		}
		r.Index.Directories[path] = captured
	}
	return r.Save()
}

// Remove drops path from whichever set tracks it and persists the index.
// It fails with ErrNotTracked when path is in neither set.
func (r *Repository) Remove(path string) error {
	path = filepath.Clean(path)

	switch {
	case r.Index.HasFile(path):
		r.Index.Files = slices.DeleteFunc(r.Index.Files, func(f string) bool {
			return f == path
		})
	case r.Index.HasDirectory(path):
		delete(r.Index.Directories, path)
	default:
		return fmt.Errorf("%w: %s", ErrNotTracked, path)
	}
	return r.Save()
}
