// Package status classifies the working tree against the tracked file
// set and the latest pointer's materialized copy.
package status

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/spf13/afero"

	"github.com/pders01/snapvault/internal/commit"
	"github.com/pders01/snapvault/internal/models"
	"github.com/pders01/snapvault/internal/repo"
)

// Report is the full status of a repository. Every tracked file lands in
// exactly one of Modified, Deleted, or Staged; Untracked covers working
// tree files outside both the tracked set and the vault directory.
// LastCommit is nil when nothing has ever been committed.
type Report struct {
	RepoName     string               `json:"repository"`
	TrackedCount int                  `json:"tracked_files"`
	VersionCount int                  `json:"total_versions"`
	LastCommit   *models.CommitRecord `json:"last_commit"`
	Untracked    []string             `json:"untracked"`
	Modified     []string             `json:"modified"`
	Deleted      []string             `json:"deleted"`
	Staged       []string             `json:"staged"`
}

// Collect walks the working tree and partitions paths:
//   - Untracked: present on disk, outside the vault, not tracked.
//   - Deleted: tracked but gone from the working tree.
//   - Modified: tracked and present, but absent from the latest pointer
//     or byte-for-byte different from its copy there. A file the latest
//     pointer has never held is always Modified.
//   - Staged: the rest of tracked-and-present, identical to latest.
//
// Comparison is exact bytes, no normalization of any kind.
func Collect(r *repo.Repository) (*Report, error) {
	working, err := workingFiles(r)
	if err != nil {
		return nil, err
	}
	tracked := mapset.NewSet(r.Index.Files...)

	untracked := working.Difference(tracked)

	modified := mapset.NewSet[string]()
	deleted := mapset.NewSet[string]()
	for f := range tracked.Iter() {
		if !working.Contains(f) {
			deleted.Add(f)
			continue
		}
		same, err := sameContent(r.Fs, filepath.Join(r.Root, f), filepath.Join(r.LatestDir(), f))
		if err != nil {
			return nil, err
		}
		if !same {
			modified.Add(f)
		}
	}
	staged := tracked.Intersect(working).Difference(modified).Difference(deleted)

	last, err := (&commit.Manager{Repo: r}).LastCommit()
	if err != nil {
		return nil, err
	}

	return &Report{
		RepoName:     r.Index.RepoName,
		TrackedCount: tracked.Cardinality(),
		VersionCount: len(r.Index.Versions),
		LastCommit:   last,
		Untracked:    sorted(untracked),
		Modified:     sorted(modified),
		Deleted:      sorted(deleted),
		Staged:       sorted(staged),
	}, nil
}

// workingFiles collects every file path in the working tree relative to
// the repository root, skipping the vault's own storage area.
func workingFiles(r *repo.Repository) (mapset.Set[string], error) {
	files := mapset.NewSet[string]()
	vault := r.VaultDir()

	err := afero.Walk(r.Fs, r.Root, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if p == vault {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(r.Root, p)
		if err != nil {
			return err
		}
		files.Add(rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// sameContent reports whether the latest pointer's copy exists and holds
// exactly the working file's bytes.
func sameContent(fsys afero.Fs, workPath, latestPath string) (bool, error) {
	if ok, _ := afero.Exists(fsys, latestPath); !ok {
		return false, nil
	}
	current, err := afero.ReadFile(fsys, workPath)
	if err != nil {
		return false, err
	}
	pushed, err := afero.ReadFile(fsys, latestPath)
	if err != nil {
		return false, err
	}
	return bytes.Equal(current, pushed), nil
}

func sorted(s mapset.Set[string]) []string {
	out := s.ToSlice()
	sort.Strings(out)
	return out
}
