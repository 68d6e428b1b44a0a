package repo

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/pders01/snapvault/internal/models"
)

// Repository is an open handle on one snapvault repository. All state
// access goes through the handle; there is no ambient singleton. The index
// is read fully at Open, mutated in memory, and rewritten wholesale by
// Save.
type Repository struct {
	Fs    afero.Fs
	Root  string
	Index *models.Index
}

// Open reads the index document at root. It fails with ErrNotInitialized
// when no repository exists there.
func Open(fsys afero.Fs, root string) (*Repository, error) {
	r := &Repository{Fs: fsys, Root: root}

	data, err := afero.ReadFile(fsys, r.IndexPath())
	if err != nil {
		return nil, fmt.Errorf("%w at %s (run 'snapvault init <repo-name>' first)", ErrNotInitialized, root)
	}

	var idx models.Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}
	if idx.Directories == nil {
		idx.Directories = map[string][]string{}
	}

	r.Index = &idx
	return r, nil
}

// Init creates the repository layout at root: the vault directory with an
// empty index, an empty history journal, the versions and commits trees,
// and the reserved latest pointer. It fails with ErrAlreadyInitialized if
// the vault directory is already there.
func Init(fsys afero.Fs, root, repoName string) (*Repository, error) {
	r := &Repository{Fs: fsys, Root: root, Index: models.NewIndex(repoName)}

	if ok, _ := afero.DirExists(fsys, r.VaultDir()); ok {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyInitialized, r.VaultDir())
	}

	dirs := []string{r.VaultDir(), r.VersionsDir(), r.CommitsDir(), r.LatestDir()}
	for _, d := range dirs {
		if err := fsys.MkdirAll(d, 0755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", d, err)
		}
	}

	if err := r.Save(); err != nil {
		return nil, err
	}
	if err := afero.WriteFile(fsys, r.HistoryPath(), []byte("[]"), 0644); err != nil {
		return nil, fmt.Errorf("creating history journal: %w", err)
	}

	return r, nil
}

// Save rewrites the index document wholesale.
func (r *Repository) Save() error {
	data, err := json.MarshalIndent(r.Index, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	if err := afero.WriteFile(r.Fs, r.IndexPath(), data, 0644); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	return nil
}

// VaultDir returns the repository storage directory.
func (r *Repository) VaultDir() string {
	return filepath.Join(r.Root, models.VaultDirName)
}

// IndexPath returns the index document path.
func (r *Repository) IndexPath() string {
	return filepath.Join(r.VaultDir(), models.IndexFileName)
}

// ConfigPath returns the per-repository config document path.
func (r *Repository) ConfigPath() string {
	return filepath.Join(r.VaultDir(), models.ConfigFileName)
}

// HistoryPath returns the append-only journal path.
func (r *Repository) HistoryPath() string {
	return filepath.Join(r.VaultDir(), models.HistoryFileName)
}

// CommitsDir returns the directory holding all commit snapshots.
func (r *Repository) CommitsDir() string {
	return filepath.Join(r.VaultDir(), models.CommitsDirName)
}

// CommitPath returns the snapshot tree for one commit identifier.
func (r *Repository) CommitPath(id string) string {
	return filepath.Join(r.CommitsDir(), id)
}

// LatestDir returns the reserved latest-pointer tree.
func (r *Repository) LatestDir() string {
	return filepath.Join(r.CommitsDir(), models.LatestName)
}

// VersionsDir returns the directory holding all named versions.
func (r *Repository) VersionsDir() string {
	return filepath.Join(r.VaultDir(), models.VersionsDirName)
}

// VersionPath returns the snapshot tree for one named version.
func (r *Repository) VersionPath(name string) string {
	return filepath.Join(r.VersionsDir(), name)
}

// VersionMetadataPath returns the metadata.json path for one version.
func (r *Repository) VersionMetadataPath(name string) string {
	return filepath.Join(r.VersionPath(name), models.MetadataFileName)
}
