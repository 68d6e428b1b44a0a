package models

import "time"

// Repository layout names, relative to the working tree root.
const (
	VaultDirName     = ".snapvault"
	CommitsDirName   = "commits"
	VersionsDirName  = "versions"
	IndexFileName    = "repo.json"
	ConfigFileName   = "config.json"
	HistoryFileName  = "history.json"
	MetadataFileName = "metadata.json"

	// LatestName is the reserved commit identifier for the latest pointer.
	// No commit is ever allocated under this name.
	LatestName = "latest"
)

// CommitRecord is the metadata written next to each commit snapshot and
// appended to the history journal.
type CommitRecord struct {
	CommitID  string    `json:"commit_id"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Author    string    `json:"author"`
}

// VersionRecord is the metadata.json structure for a named version.
// Files holds the tracked-file list captured at creation time; tracked
// directories are copied on disk but not enumerated here.
type VersionRecord struct {
	Name        string    `json:"version_name"`
	CreatedAt   time.Time `json:"created_at"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	Files       []string  `json:"files"`
	TreeHash    string    `json:"tree_hash,omitempty"`
}
