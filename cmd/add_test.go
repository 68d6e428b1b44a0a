package cmd

import (
	"testing"
)

func initRepo(t *testing.T) {
	t.Helper()

	initAuthor = "tester"
	initDescription = ""
	initMessage = ""
	if err := runInit(nil, []string{"testrepo"}); err != nil {
		t.Fatalf("init failed: %v", err)
	}
}

func TestAddCommand(t *testing.T) {
	chtmp(t)
	initRepo(t)
	writeFile(t, "a.txt", "hello")

	addRecursive = false
	if err := runAdd(nil, []string{"a.txt"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	r, err := openRepo()
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if !r.Index.HasFile("a.txt") {
		t.Error("a.txt not tracked after add")
	}

	// A second add is reported but not an error.
	if err := runAdd(nil, []string{"a.txt"}); err != nil {
		t.Errorf("re-add should not fail: %v", err)
	}
}

func TestAddCommandMissingPath(t *testing.T) {
	chtmp(t)
	initRepo(t)

	addRecursive = false
	if err := runAdd(nil, []string{"ghost.txt"}); err == nil {
		t.Fatal("expected add of missing path to fail")
	}
}

func TestAddCommandRecursiveDirectory(t *testing.T) {
	chtmp(t)
	initRepo(t)
	writeFile(t, "src/main.go", "package main\n")
	writeFile(t, "src/util/util.go", "package util\n")

	addRecursive = true
	if err := runAdd(nil, []string{"src"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	r, err := openRepo()
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if !r.Index.HasDirectory("src") {
		t.Fatal("src not tracked")
	}
	if len(r.Index.Directories["src"]) != 2 {
		t.Errorf("expected 2 captured files, got %v", r.Index.Directories["src"])
	}
}

func TestRemoveCommand(t *testing.T) {
	chtmp(t)
	initRepo(t)
	writeFile(t, "a.txt", "hello")

	addRecursive = false
	if err := runAdd(nil, []string{"a.txt"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := runRemove(nil, []string{"a.txt"}); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	r, err := openRepo()
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if r.Index.HasFile("a.txt") {
		t.Error("a.txt still tracked after remove")
	}

	if err := runRemove(nil, []string{"a.txt"}); err == nil {
		t.Fatal("expected removing an untracked path to fail")
	}
}
