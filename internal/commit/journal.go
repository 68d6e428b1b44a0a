package commit

import (
	"encoding/json"
	"fmt"
	"iter"

	"github.com/spf13/afero"

	"github.com/pders01/snapvault/internal/models"
)

// History replays the journal in append order: one record per commit ever
// made, regardless of whether its storage still exists. The sequence is
// restartable; the journal is re-read on every iteration.
func (m *Manager) History() iter.Seq[models.CommitRecord] {
	return func(yield func(models.CommitRecord) bool) {
		records, err := m.readHistory()
		if err != nil {
			return
		}
		for _, rec := range records {
			if !yield(rec) {
				return
			}
		}
	}
}

// LastCommit returns the newest journal entry, or nil when nothing has
// ever been committed.
func (m *Manager) LastCommit() (*models.CommitRecord, error) {
	records, err := m.readHistory()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[len(records)-1], nil
}

func (m *Manager) readHistory() ([]models.CommitRecord, error) {
	data, err := afero.ReadFile(m.Repo.Fs, m.Repo.HistoryPath())
	if err != nil {
		return nil, fmt.Errorf("reading history journal: %w", err)
	}
	var records []models.CommitRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding history journal: %w", err)
	}
	return records, nil
}

// appendHistory reads the full journal, appends one record, and rewrites
// it wholesale. Existing entries are never mutated or reordered.
func (m *Manager) appendHistory(rec *models.CommitRecord) error {
	records, err := m.readHistory()
	if err != nil {
		return err
	}
	records = append(records, *rec)

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding history journal: %w", err)
	}
	if err := afero.WriteFile(m.Repo.Fs, m.Repo.HistoryPath(), data, 0644); err != nil {
		return fmt.Errorf("writing history journal: %w", err)
	}
	return nil
}
