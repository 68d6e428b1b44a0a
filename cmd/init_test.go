package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pders01/snapvault/internal/config"
)

// chtmp moves the test into a fresh temp directory.
func chtmp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(oldWd) })
	return dir
}

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(name, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

func TestInitCommand(t *testing.T) {
	dir := chtmp(t)

	initAuthor = "alice"
	initDescription = ""
	initMessage = ""

	if err := runInit(nil, []string{"myrepo"}); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	for _, p := range []string{
		".snapvault/repo.json",
		".snapvault/history.json",
		".snapvault/config.json",
		".snapvault/commits/latest",
		".snapvault/versions",
	} {
		if _, err := os.Stat(filepath.Join(dir, p)); err != nil {
			t.Errorf("expected %s to exist: %v", p, err)
		}
	}

	r, err := openRepo()
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if r.Index.RepoName != "myrepo" {
		t.Errorf("expected repo name 'myrepo', got %q", r.Index.RepoName)
	}

	cfg, err := loadConfig(r)
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}
	if cfg.DefaultAuthor() != "alice" {
		t.Errorf("expected author 'alice', got %q", cfg.DefaultAuthor())
	}
	if cfg.DefaultCommitMessage() != config.FallbackCommitMessage {
		t.Errorf("expected fallback message, got %q", cfg.DefaultCommitMessage())
	}
}

func TestInitCommandTwice(t *testing.T) {
	chtmp(t)

	initAuthor = ""
	initDescription = ""
	initMessage = ""

	if err := runInit(nil, []string{"myrepo"}); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := runInit(nil, []string{"again"}); err == nil {
		t.Fatal("expected second init to fail")
	}
}
