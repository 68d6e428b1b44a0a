// Package commit manages time-ordered, disposable snapshots and the
// single mutable latest pointer that always mirrors exactly one commit.
package commit

import (
	"encoding/json"
	"fmt"
	"iter"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/pders01/snapvault/internal/models"
	"github.com/pders01/snapvault/internal/repo"
	"github.com/pders01/snapvault/internal/store"
)

// Manager operates on the commits of one open repository.
type Manager struct {
	Repo *repo.Repository
}

// Entry pairs a commit identifier that still has storage with its
// metadata. Meta is nil when metadata.json is missing or unreadable.
type Entry struct {
	ID   string
	Meta *models.CommitRecord
}

// NewID allocates a commit identifier: a second-resolution timestamp plus
// a short random suffix. The fixed-width prefix keeps identifiers
// lexicographically ordered by creation time; the suffix keeps two
// commits within the same second distinct.
func NewID(now time.Time) string {
	return now.Format("20060102150405") + "-" + uuid.NewString()[:8]
}

// Commit materializes a full snapshot under a fresh identifier, writes
// its metadata, and appends the same record to the history journal.
func (m *Manager) Commit(message, author string) (*models.CommitRecord, *store.Result, error) {
	r := m.Repo

	now := time.Now()
	id := NewID(now)
	dir := r.CommitPath(id)

	res, err := store.Materialize(r.Fs, r.Root, r.Index, dir)
	if err != nil {
		return nil, nil, err
	}

	rec := &models.CommitRecord{
		CommitID:  id,
		Timestamp: now,
		Message:   message,
		Author:    author,
	}

	data, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return nil, nil, fmt.Errorf("encoding commit metadata: %w", err)
	}
	if err := afero.WriteFile(r.Fs, filepath.Join(dir, models.MetadataFileName), data, 0644); err != nil {
		return nil, nil, fmt.Errorf("writing commit metadata: %w", err)
	}

	if err := m.appendHistory(rec); err != nil {
		return nil, nil, err
	}

	return rec, res, nil
}

// Remove deletes one commit's storage. The journal entry stays: history
// outlives deleted snapshots. The reserved latest identifier cannot be
// removed this way.
func (m *Manager) Remove(id string) error {
	r := m.Repo

	if id == models.LatestName {
		return fmt.Errorf("%q is reserved, use push to replace it", models.LatestName)
	}
	if ok, _ := afero.DirExists(r.Fs, r.CommitPath(id)); !ok {
		return fmt.Errorf("%w: %s", repo.ErrCommitNotFound, id)
	}
	return r.Fs.RemoveAll(r.CommitPath(id))
}

// Clear deletes every commit's storage except the latest pointer. The
// journal is untouched.
func (m *Manager) Clear() error {
	for _, id := range m.ids() {
		if err := m.Repo.Fs.RemoveAll(m.Repo.CommitPath(id)); err != nil {
			return fmt.Errorf("removing commit %s: %w", id, err)
		}
	}
	return nil
}

// Push replaces the latest pointer wholesale with a copy of one commit:
// the old tree is deleted and the chosen commit's tree recursively copied
// in, never merged. With an empty id the temporally greatest remaining
// commit is chosen. It fails with ErrNothingToPush when no commit is
// available and ErrCommitNotFound when an explicit id has no storage.
func (m *Manager) Push(id string) (string, error) {
	r := m.Repo

	if id == "" {
		ids := m.ids()
		if len(ids) == 0 {
			return "", repo.ErrNothingToPush
		}
		id = ids[len(ids)-1]
	} else {
		if id == models.LatestName {
			return "", fmt.Errorf("%w: %s", repo.ErrCommitNotFound, id)
		}
		if ok, _ := afero.DirExists(r.Fs, r.CommitPath(id)); !ok {
			return "", fmt.Errorf("%w: %s", repo.ErrCommitNotFound, id)
		}
	}

	if err := r.Fs.RemoveAll(r.LatestDir()); err != nil {
		return "", fmt.Errorf("clearing latest: %w", err)
	}
	if err := store.CopyTree(r.Fs, r.CommitPath(id), r.LatestDir()); err != nil {
		return "", fmt.Errorf("copying commit %s to latest: %w", id, err)
	}
	return id, nil
}

// List yields every commit that still has storage, in identifier order,
// excluding the latest pointer. The sequence is restartable; storage is
// re-listed on every iteration.
func (m *Manager) List() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, id := range m.ids() {
			if !yield(Entry{ID: id, Meta: m.load(id)}) {
				return
			}
		}
	}
}

// ids returns the sorted identifiers of all commit storages, excluding
// the reserved latest pointer.
func (m *Manager) ids() []string {
	entries, err := afero.ReadDir(m.Repo.Fs, m.Repo.CommitsDir())
	if err != nil {
		return nil
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() && e.Name() != models.LatestName {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids
}

func (m *Manager) load(id string) *models.CommitRecord {
	data, err := afero.ReadFile(m.Repo.Fs, filepath.Join(m.Repo.CommitPath(id), models.MetadataFileName))
	if err != nil {
		return nil
	}
	var rec models.CommitRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		slog.Warn("unreadable commit metadata", "commit", id, "error", err)
		return nil
	}
	return &rec
}
