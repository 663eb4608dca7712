// Package vcs syncs the note folder with its git repository.
package vcs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/notare-dev/notare/internal/logging"
)

// CommitMessage is used for every auto-generated commit.
const CommitMessage = "auto-sync from notare"

// Sync outcomes shown in the status bar.
const (
	MsgUpToDate    = "already up to date"
	MsgSynced      = "synced!"
	MsgLocalOnly   = "synced locally (no remote configured or no push needed)"
	MsgPushFailed  = "push failed"
	MsgAddFailed   = "git add failed"
	MsgNotRepoHint = "not a git repo (run 'git init' in folder)"
)

// Sentinel failures. Each message is the status line the user sees.
var (
	ErrNotRepo    = errors.New(MsgNotRepoHint)
	ErrAddFailed  = errors.New(MsgAddFailed)
	ErrPushFailed = errors.New(MsgPushFailed)
)

// IsRepo reports whether root carries a .git entry. Worktrees keep
// .git as a file, so any stat hit counts.
func IsRepo(root string) bool {
	_, err := os.Stat(filepath.Join(root, ".git"))
	return err == nil
}

// Sync stages, commits and pushes outstanding changes under root.
// It returns a one-line status for the UI; the error message doubles
// as that line when the sync fails.
//
// A missing upstream is not a failure: rev-list errors are read as
// "not ahead", which routes clean local-only repos to MsgLocalOnly.
func Sync(root string) (string, error) {
	logging.L().Info("git sync", zap.String("root", root))

	if !IsRepo(root) {
		return "", ErrNotRepo
	}

	statusOut, err := gitOutput(root, "status", "--porcelain")
	if err != nil {
		return "", fmt.Errorf("git status: %w", err)
	}
	hasChanges := len(bytes.TrimSpace(statusOut)) > 0

	aheadOut, _ := gitOutput(root, "rev-list", "HEAD@{u}..HEAD")
	isAhead := len(bytes.TrimSpace(aheadOut)) > 0

	if !hasChanges && !isAhead {
		return MsgUpToDate, nil
	}

	if hasChanges {
		if err := gitRun(root, "add", "."); err != nil {
			return "", ErrAddFailed
		}
		// Commit failures (nothing staged, missing identity) fall
		// through to the push check like any other no-op.
		_ = gitRun(root, "commit", "-m", CommitMessage)
	}

	aheadOut, _ = gitOutput(root, "rev-list", "HEAD@{u}..HEAD")
	if len(bytes.TrimSpace(aheadOut)) == 0 {
		return MsgLocalOnly, nil
	}

	if err := gitRun(root, "push"); err != nil {
		return "", ErrPushFailed
	}
	return MsgSynced, nil
}

func gitOutput(root string, args ...string) ([]byte, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logging.L().Debug("git exited nonzero",
				zap.Strings("args", args),
				zap.Int("code", exitErr.ExitCode()))
			return out, err
		}
		return nil, err
	}
	return out, nil
}

func gitRun(root string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = root
	return cmd.Run()
}
