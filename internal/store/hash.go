package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
	"github.com/zeebo/xxh3"

	"github.com/pders01/snapvault/internal/models"
)

// TreeHash digests a snapshot tree: every file's relative path and content
// in sorted path order. Two trees hash equal iff they hold the same files
// with the same bytes, which is what verify checks a version against. The
// snapshot's own metadata.json at the tree root is excluded, since the
// hash is recorded inside it.
func TreeHash(fsys afero.Fs, dir string) (string, error) {
	var files []string
	err := afero.Walk(fsys, dir, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return nil
		}
		if rel, err := filepath.Rel(dir, p); err == nil && rel == models.MetadataFileName {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(files)

	h := xxh3.New()
	for _, p := range files {
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return "", err
		}
		h.WriteString(rel)
		h.Write([]byte{0})

		f, err := fsys.Open(p)
		if err != nil {
			return "", fmt.Errorf("opening %s: %w", rel, err)
		}
		_, err = io.Copy(h, f)
		f.Close()
		if err != nil {
			return "", fmt.Errorf("hashing %s: %w", rel, err)
		}
		h.Write([]byte{0})
	}

	sum := h.Sum128()
	return fmt.Sprintf("%016x%016x", sum.Hi, sum.Lo), nil
}
