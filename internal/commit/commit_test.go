package commit_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/pders01/snapvault/internal/commit"
	"github.com/pders01/snapvault/internal/repo"
	"github.com/pders01/snapvault/internal/testutil"
)

func newManager(t *testing.T) (*testutil.TempVault, *commit.Manager) {
	t.Helper()
	v := testutil.NewMemVault(t, "demo")
	return v, &commit.Manager{Repo: v.Repo}
}

func TestNewIDDistinctWithinSameInstant(t *testing.T) {
	now := time.Now()
	id1 := commit.NewID(now)
	id2 := commit.NewID(now)

	if id1 == id2 {
		t.Errorf("two commits in the same instant share an id: %s", id1)
	}
	if !strings.HasPrefix(id1, now.Format("20060102150405")) {
		t.Errorf("id missing timestamp prefix: %s", id1)
	}
}

func TestNewIDOrderedAcrossTime(t *testing.T) {
	earlier := commit.NewID(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	later := commit.NewID(time.Date(2026, 1, 2, 3, 4, 6, 0, time.UTC))

	if !(earlier < later) {
		t.Errorf("ids not lexicographically time-ordered: %s vs %s", earlier, later)
	}
}

func TestCommit(t *testing.T) {
	v, mgr := newManager(t)
	v.CreateFile("a.txt", "hello")
	v.Track("a.txt")

	rec, res, err := mgr.Commit("first", "tester")
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	if rec.Message != "first" || rec.Author != "tester" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if len(res.Captured) != 1 {
		t.Errorf("expected 1 captured path, got %+v", res)
	}

	data, err := afero.ReadFile(v.Fs, filepath.Join(v.Repo.CommitPath(rec.CommitID), "a.txt"))
	if err != nil || string(data) != "hello" {
		t.Errorf("commit content wrong: %q, %v", data, err)
	}

	var history []string
	for h := range mgr.History() {
		history = append(history, h.CommitID)
	}
	if len(history) != 1 || history[0] != rec.CommitID {
		t.Errorf("journal does not hold the commit: %v", history)
	}
}

func TestRemoveKeepsJournal(t *testing.T) {
	v, mgr := newManager(t)
	v.CreateFile("a.txt", "hello")
	v.Track("a.txt")

	rec, _, err := mgr.Commit("first", "tester")
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if err := mgr.Remove(rec.CommitID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if ok, _ := afero.DirExists(v.Fs, v.Repo.CommitPath(rec.CommitID)); ok {
		t.Error("commit storage still present after remove")
	}

	count := 0
	for range mgr.History() {
		count++
	}
	if count != 1 {
		t.Errorf("journal shrank after remove: %d entries", count)
	}
}

func TestRemoveMissingCommit(t *testing.T) {
	_, mgr := newManager(t)

	err := mgr.Remove("19990101000000-deadbeef")
	if !errors.Is(err, repo.ErrCommitNotFound) {
		t.Fatalf("expected ErrCommitNotFound, got %v", err)
	}
}

func TestRemoveLatestRefused(t *testing.T) {
	_, mgr := newManager(t)

	if err := mgr.Remove("latest"); err == nil {
		t.Fatal("expected removing the latest pointer to fail")
	}
}

func TestClearPreservesLatest(t *testing.T) {
	v, mgr := newManager(t)
	v.CreateFile("a.txt", "hello")
	v.Track("a.txt")

	rec, _, err := mgr.Commit("first", "tester")
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if _, err := mgr.Push(""); err != nil {
		t.Fatalf("push failed: %v", err)
	}
	if err := mgr.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	if ok, _ := afero.DirExists(v.Fs, v.Repo.CommitPath(rec.CommitID)); ok {
		t.Error("commit storage survived clear")
	}
	if ok, _ := afero.Exists(v.Fs, filepath.Join(v.Repo.LatestDir(), "a.txt")); !ok {
		t.Error("latest pointer content lost by clear")
	}

	count := 0
	for range mgr.History() {
		count++
	}
	if count != 1 {
		t.Errorf("journal touched by clear: %d entries", count)
	}
}

func TestPushNothingToPush(t *testing.T) {
	_, mgr := newManager(t)

	_, err := mgr.Push("")
	if !errors.Is(err, repo.ErrNothingToPush) {
		t.Fatalf("expected ErrNothingToPush, got %v", err)
	}
}

func TestPushMissingCommit(t *testing.T) {
	v, mgr := newManager(t)
	v.CreateFile("a.txt", "hello")
	v.Track("a.txt")
	if _, _, err := mgr.Commit("first", "tester"); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	_, err := mgr.Push("19990101000000-deadbeef")
	if !errors.Is(err, repo.ErrCommitNotFound) {
		t.Fatalf("expected ErrCommitNotFound, got %v", err)
	}
}

func TestPushReplacesWholesale(t *testing.T) {
	v, mgr := newManager(t)
	v.CreateFile("a.txt", "hello")
	v.Track("a.txt")

	recA, _, err := mgr.Commit("with a", "tester")
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	// Second commit tracks only b.txt.
	if err := v.Repo.Remove("a.txt"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	v.CreateFile("b.txt", "world")
	v.Track("b.txt")

	recB, _, err := mgr.Commit("with b", "tester")
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	if _, err := mgr.Push(recA.CommitID); err != nil {
		t.Fatalf("push failed: %v", err)
	}
	if _, err := mgr.Push(recB.CommitID); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	// No residue from the first push.
	if ok, _ := afero.Exists(v.Fs, filepath.Join(v.Repo.LatestDir(), "a.txt")); ok {
		t.Error("latest holds residue from the previously pushed commit")
	}
	if ok, _ := afero.Exists(v.Fs, filepath.Join(v.Repo.LatestDir(), "b.txt")); !ok {
		t.Error("latest missing the pushed commit's content")
	}
}

func TestPushPicksNewestByDefault(t *testing.T) {
	v, mgr := newManager(t)
	v.CreateFile("a.txt", "one")
	v.Track("a.txt")
	if _, _, err := mgr.Commit("first", "tester"); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	v.CreateFile("a.txt", "two")
	if _, _, err := mgr.Commit("second", "tester"); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	pushed, err := mgr.Push("")
	if err != nil {
		t.Fatalf("push failed: %v", err)
	}

	var ids []string
	for entry := range mgr.List() {
		ids = append(ids, entry.ID)
	}
	if pushed != ids[len(ids)-1] {
		t.Errorf("expected newest commit %s pushed, got %s", ids[len(ids)-1], pushed)
	}
	data, _ := afero.ReadFile(v.Fs, filepath.Join(v.Repo.LatestDir(), "a.txt"))
	if string(data) != "two" {
		t.Errorf("latest holds %q, want content of the newest commit", data)
	}
}

func TestListExcludesLatest(t *testing.T) {
	v, mgr := newManager(t)
	v.CreateFile("a.txt", "hello")
	v.Track("a.txt")

	rec, _, err := mgr.Commit("first", "tester")
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if _, err := mgr.Push(""); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	for entry := range mgr.List() {
		if entry.ID == "latest" {
			t.Error("latest pointer listed as a commit")
		}
		if entry.ID == rec.CommitID && entry.Meta == nil {
			t.Error("commit metadata not loaded")
		}
	}
}
