package cmd

import "testing"

func TestStatusCommand(t *testing.T) {
	chtmp(t)
	initRepo(t)
	trackFile(t, "a.txt", "hello")

	statusJSON = false
	if err := runStatus(nil, nil); err != nil {
		t.Fatalf("status failed: %v", err)
	}

	statusJSON = true
	if err := runStatus(nil, nil); err != nil {
		t.Fatalf("status --json failed: %v", err)
	}
}

func TestStatusCommandOutsideRepo(t *testing.T) {
	chtmp(t)

	statusJSON = false
	if err := runStatus(nil, nil); err == nil {
		t.Fatal("expected status outside a repository to fail")
	}
}
