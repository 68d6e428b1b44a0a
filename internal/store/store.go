// Package store materializes snapshots: full copies of the tracked file
// set under a destination directory. Both commits and named versions are
// built on the same primitive.
package store

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/pders01/snapvault/internal/models"
)

// Result reports what one materialize call captured. Skipped holds
// tracked paths that vanished from disk before snapshot time; they are
// warnings, not failures.
type Result struct {
	Captured []string
	Skipped  []string
}

// Materialize copies every tracked file and every tracked directory's
// subtree from root into dest. Tracked files keep their relative path
// under dest; tracked directories are copied whole under their base name,
// re-walking the filesystem at call time rather than trusting the index's
// cached capture lists. dest must not already exist; the caller allocates
// a fresh location per snapshot, which keeps the primitive repeatable.
func Materialize(fsys afero.Fs, root string, idx *models.Index, dest string) (*Result, error) {
	if ok, _ := afero.Exists(fsys, dest); ok {
		return nil, fmt.Errorf("snapshot destination already exists: %s", dest)
	}
	if err := fsys.MkdirAll(dest, 0755); err != nil {
		return nil, fmt.Errorf("creating snapshot destination: %w", err)
	}

	res := &Result{}

	for _, f := range idx.Files {
		src := filepath.Join(root, f)
		if ok, _ := afero.Exists(fsys, src); !ok {
			slog.Warn("tracked file missing, skipping", "path", f)
			res.Skipped = append(res.Skipped, f)
			continue
		}
		dst := filepath.Join(dest, f)
		if err := copyFile(fsys, src, dst); err != nil {
			return nil, fmt.Errorf("copying %s: %w", f, err)
		}
		res.Captured = append(res.Captured, f)
	}

	dirs := make([]string, 0, len(idx.Directories))
	for d := range idx.Directories {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	for _, d := range dirs {
		src := filepath.Join(root, d)
		if ok, _ := afero.DirExists(fsys, src); !ok {
			slog.Warn("tracked directory missing, skipping", "path", d)
			res.Skipped = append(res.Skipped, d)
			continue
		}
		if err := CopyTree(fsys, src, filepath.Join(dest, filepath.Base(d))); err != nil {
			return nil, fmt.Errorf("copying directory %s: %w", d, err)
		}
		res.Captured = append(res.Captured, d)
	}

	return res, nil
}

// CopyTree recursively copies the tree at src to dst, creating dst and
// any intermediate directories.
func CopyTree(fsys afero.Fs, src, dst string) error {
	return afero.Walk(fsys, src, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if fi.IsDir() {
			return fsys.MkdirAll(target, 0755)
		}
		return copyFile(fsys, p, target)
	})
}

func copyFile(fsys afero.Fs, src, dst string) error {
	if err := fsys.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fsys.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
