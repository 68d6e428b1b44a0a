// Package version manages named, user-overwritable snapshots. Each
// version owns a tree under versions/<name> plus non-mutable descriptive
// metadata, and is registered in the index in creation order.
package version

import (
	"encoding/json"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"github.com/pders01/snapvault/internal/models"
	"github.com/pders01/snapvault/internal/repo"
	"github.com/pders01/snapvault/internal/store"
)

// Manager operates on the versions of one open repository.
type Manager struct {
	Repo *repo.Repository
}

// Options carries the descriptive metadata for a new version. Empty
// fields are filled in by the caller from the repository config before
// the core sees them.
type Options struct {
	Author      string
	Description string
}

// Entry pairs a registered version name with its metadata. Meta is nil
// when the metadata document is missing or unreadable.
type Entry struct {
	Name string
	Meta *models.VersionRecord
}

// Create materializes a snapshot under versions/<name> and registers it.
// An existing name fails with ErrVersionExists unless force is set, in
// which case the old version's storage and registry entry are discarded
// first. The metadata records the tracked-file list as of this instant;
// later index changes never touch it.
func (m *Manager) Create(name string, opts Options, force bool) (*models.VersionRecord, *store.Result, error) {
	r := m.Repo
	path := r.VersionPath(name)

	if ok, _ := afero.Exists(r.Fs, path); ok {
		if !force {
			return nil, nil, fmt.Errorf("%w: %s", repo.ErrVersionExists, name)
		}
		if err := r.Fs.RemoveAll(path); err != nil {
			return nil, nil, fmt.Errorf("removing old version %s: %w", name, err)
		}
		r.Index.DropVersion(name)
	}

	res, err := store.Materialize(r.Fs, r.Root, r.Index, path)
	if err != nil {
		return nil, nil, err
	}

	treeHash, err := store.TreeHash(r.Fs, path)
	if err != nil {
		return nil, nil, err
	}

	rec := &models.VersionRecord{
		Name:        name,
		CreatedAt:   time.Now(),
		Author:      opts.Author,
		Description: opts.Description,
		Files:       append([]string(nil), r.Index.Files...),
		TreeHash:    treeHash,
	}

	data, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return nil, nil, fmt.Errorf("encoding version metadata: %w", err)
	}
	if err := afero.WriteFile(r.Fs, r.VersionMetadataPath(name), data, 0644); err != nil {
		return nil, nil, fmt.Errorf("writing version metadata: %w", err)
	}

	r.Index.Versions = append(r.Index.Versions, name)
	if err := r.Save(); err != nil {
		return nil, nil, err
	}

	return rec, res, nil
}

// Delete removes a version's storage and registry entry. It fails with
// ErrVersionNotFound when the version does not exist.
func (m *Manager) Delete(name string) error {
	r := m.Repo
	path := r.VersionPath(name)

	if ok, _ := afero.Exists(r.Fs, path); !ok {
		return fmt.Errorf("%w: %s", repo.ErrVersionNotFound, name)
	}
	if err := r.Fs.RemoveAll(path); err != nil {
		return fmt.Errorf("removing version %s: %w", name, err)
	}

	r.Index.DropVersion(name)
	return r.Save()
}

// List yields every registered version in registration order. The
// sequence is restartable; metadata is re-read on every iteration.
func (m *Manager) List() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, name := range m.Repo.Index.Versions {
			if !yield(Entry{Name: name, Meta: m.Load(name)}) {
				return
			}
		}
	}
}

// Load reads one version's metadata, or nil when it is missing or
// unreadable.
func (m *Manager) Load(name string) *models.VersionRecord {
	data, err := afero.ReadFile(m.Repo.Fs, m.Repo.VersionMetadataPath(name))
	if err != nil {
		return nil
	}
	var rec models.VersionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		slog.Warn("unreadable version metadata", "version", name, "error", err)
		return nil
	}
	return &rec
}

// Verify recomputes a version tree's hash and compares it to the value
// recorded at creation time. It reports whether the tree is intact, the
// recorded hash, and the recomputed one.
func (m *Manager) Verify(name string) (bool, string, string, error) {
	r := m.Repo

	if ok, _ := afero.Exists(r.Fs, r.VersionPath(name)); !ok {
		return false, "", "", fmt.Errorf("%w: %s", repo.ErrVersionNotFound, name)
	}

	rec := m.Load(name)
	if rec == nil || rec.TreeHash == "" {
		return false, "", "", fmt.Errorf("%w: version %s has no recorded tree hash", repo.ErrMalformedMetadata, name)
	}

	got, err := store.TreeHash(r.Fs, r.VersionPath(name))
	if err != nil {
		return false, "", "", err
	}
	return got == rec.TreeHash, rec.TreeHash, got, nil
}
