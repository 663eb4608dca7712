package vcs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestIsRepo(t *testing.T) {
	dir := t.TempDir()
	if IsRepo(dir) {
		t.Fatalf("empty dir reported as repo")
	}

	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if !IsRepo(dir) {
		t.Fatalf("dir with .git not reported as repo")
	}
}

func TestIsRepoAcceptsGitFile(t *testing.T) {
	dir := t.TempDir()
	gitFile := filepath.Join(dir, ".git")
	if err := os.WriteFile(gitFile, []byte("gitdir: ../elsewhere\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !IsRepo(dir) {
		t.Fatalf("worktree-style .git file not recognized")
	}
}

func TestSyncOutsideRepo(t *testing.T) {
	_, err := Sync(t.TempDir())
	if !errors.Is(err, ErrNotRepo) {
		t.Fatalf("Sync = %v, want ErrNotRepo", err)
	}
	if err.Error() != MsgNotRepoHint {
		t.Errorf("error text %q should match the status hint", err.Error())
	}
}
