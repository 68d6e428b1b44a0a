package repo_test

import (
	"errors"
	"testing"

	"github.com/spf13/afero"

	"github.com/pders01/snapvault/internal/repo"
	"github.com/pders01/snapvault/internal/testutil"
)

func TestOpenUninitialized(t *testing.T) {
	fsys := afero.NewMemMapFs()

	_, err := repo.Open(fsys, "/nowhere")
	if !errors.Is(err, repo.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestInitCreatesLayout(t *testing.T) {
	v := testutil.NewMemVault(t, "demo")

	for _, dir := range []string{
		v.Repo.VaultDir(),
		v.Repo.CommitsDir(),
		v.Repo.VersionsDir(),
		v.Repo.LatestDir(),
	} {
		ok, _ := afero.DirExists(v.Fs, dir)
		if !ok {
			t.Errorf("expected directory %s to exist", dir)
		}
	}

	data, err := afero.ReadFile(v.Fs, v.Repo.HistoryPath())
	if err != nil {
		t.Fatalf("history journal missing: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("expected empty journal, got %q", data)
	}
}

func TestInitTwice(t *testing.T) {
	v := testutil.NewMemVault(t, "demo")

	_, err := repo.Init(v.Fs, v.Path, "again")
	if !errors.Is(err, repo.ErrAlreadyInitialized) {
		t.Fatalf("expected ErrAlreadyInitialized, got %v", err)
	}
}

func TestOpenAfterInit(t *testing.T) {
	v := testutil.NewMemVault(t, "demo")

	r, err := repo.Open(v.Fs, v.Path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if r.Index.RepoName != "demo" {
		t.Errorf("expected repo name 'demo', got %q", r.Index.RepoName)
	}
	if len(r.Index.Files) != 0 || len(r.Index.Versions) != 0 {
		t.Errorf("expected empty index, got %+v", r.Index)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	v := testutil.NewMemVault(t, "demo")
	v.CreateFile("a.txt", "hello")
	v.Track("a.txt")

	reopened, err := repo.Open(v.Fs, v.Path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if !reopened.Index.HasFile("a.txt") {
		t.Errorf("tracked file not persisted, index: %+v", reopened.Index)
	}
}
