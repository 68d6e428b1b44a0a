package models

import "slices"

// Index is the repository index document (repo.json): the tracked file
// set, the tracked directories with their add-time capture lists, and the
// version registry in registration order.
type Index struct {
	RepoName    string              `json:"repo_name"`
	Files       []string            `json:"files"`
	Directories map[string][]string `json:"directories"`
	Versions    []string            `json:"versions"`
}

// NewIndex returns an empty index for a freshly initialized repository.
func NewIndex(repoName string) *Index {
	return &Index{
		RepoName:    repoName,
		Files:       []string{},
		Directories: map[string][]string{},
		Versions:    []string{},
	}
}

// HasFile reports whether path is in the tracked file set.
func (idx *Index) HasFile(path string) bool {
	return slices.Contains(idx.Files, path)
}

// HasDirectory reports whether path is a tracked directory.
func (idx *Index) HasDirectory(path string) bool {
	_, ok := idx.Directories[path]
	return ok
}

// HasVersion reports whether name is in the version registry.
func (idx *Index) HasVersion(name string) bool {
	return slices.Contains(idx.Versions, name)
}

// DropVersion removes name from the version registry, preserving the
// registration order of the rest.
func (idx *Index) DropVersion(name string) {
	idx.Versions = slices.DeleteFunc(idx.Versions, func(v string) bool {
		return v == name
	})
}
