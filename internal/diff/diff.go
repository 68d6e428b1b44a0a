// Package diff computes per-file textual differences between two named
// versions, reading each side's captured file list from its metadata.
package diff

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/afero"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/pders01/snapvault/internal/repo"
)

// FileDiff is the comparison outcome for one file. Exactly one of three
// shapes: unchanged (Changed false), changed (Changed true, Text holds a
// unified diff), or failed (Err set, e.g. undecodable content). A failed
// file never aborts the rest of the comparison.
type FileDiff struct {
	Path    string
	Changed bool
	Text    string
	Err     error
}

// Compare diffs two versions file by file over the union of their
// captured file lists, in sorted order. A file missing on one side is
// treated as empty content. Sides are labeled "Version 1" and
// "Version 2"; the direction of the emitted text depends on argument
// order, but whether a file is reported changed does not.
func Compare(r *repo.Repository, version1, version2 string) ([]FileDiff, error) {
	files1, err := captured(r, version1)
	if err != nil {
		return nil, err
	}
	files2, err := captured(r, version2)
	if err != nil {
		return nil, err
	}

	union := mapset.NewSet(files1...)
	union.Append(files2...)
	paths := union.ToSlice()
	sort.Strings(paths)

	var out []FileDiff
	for _, p := range paths {
		out = append(out, compareFile(r, version1, version2, p))
	}
	return out, nil
}

func compareFile(r *repo.Repository, version1, version2, path string) FileDiff {
	content1, err := load(r, version1, path)
	if err != nil {
		return FileDiff{Path: path, Err: err}
	}
	content2, err := load(r, version2, path)
	if err != nil {
		return FileDiff{Path: path, Err: err}
	}

	if bytes.Equal(content1, content2) {
		return FileDiff{Path: path}
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(content1)),
		B:        difflib.SplitLines(string(content2)),
		FromFile: "Version 1",
		ToFile:   "Version 2",
	})
	if err != nil {
		return FileDiff{Path: path, Err: fmt.Errorf("diffing %s: %w", path, err)}
	}
	return FileDiff{Path: path, Changed: true, Text: text}
}

// load reads one file from a version's storage. A missing file is empty
// content, not an error; content that does not decode as text fails with
// ErrNotText for that file only.
func load(r *repo.Repository, version, path string) ([]byte, error) {
	full := filepath.Join(r.VersionPath(version), path)
	if ok, _ := afero.Exists(r.Fs, full); !ok {
		return nil, nil
	}
	data, err := afero.ReadFile(r.Fs, full)
	if err != nil {
		return nil, fmt.Errorf("reading %s from version %s: %w", path, version, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s in version %s", repo.ErrNotText, path, version)
	}
	return data, nil
}

// captured reads a version's captured file list from its metadata. It
// fails with ErrVersionNotFound when the metadata document is absent and
// ErrMalformedMetadata when the files field is missing.
func captured(r *repo.Repository, version string) ([]string, error) {
	data, err := afero.ReadFile(r.Fs, r.VersionMetadataPath(version))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", repo.ErrVersionNotFound, version)
	}

	var meta struct {
		Files *[]string `json:"files"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", repo.ErrMalformedMetadata, version, err)
	}
	if meta.Files == nil {
		return nil, fmt.Errorf("%w: version %s has no files field", repo.ErrMalformedMetadata, version)
	}
	return *meta.Files, nil
}
