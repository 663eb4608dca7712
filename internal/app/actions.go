package app

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/notare-dev/notare/internal/logging"
	"github.com/notare-dev/notare/internal/state"
	"github.com/notare-dev/notare/internal/vcs"
)

// settleDelay gives the input goroutine time to go quiet before the
// screen is taken down for a subprocess.
const settleDelay = 300 * time.Millisecond

// quit ends the session, syncing first when the config asks for it.
// Sync output goes to the plain terminal; the screen stays suspended
// because the process is about to exit.
func (a *Application) quit() {
	if a.cfg.AutoSync {
		a.session.Syncing = true
		a.bus.Pause()
		if err := a.screen.Suspend(); err == nil {
			fmt.Println("Auto-syncing with git before exit...")
			if _, err := vcs.Sync(a.session.Root); err != nil {
				logging.L().Error("auto-sync failed", zap.Error(err))
				fmt.Printf("Auto-sync failed: %v\n", err)
				time.Sleep(2 * time.Second)
			}
		}
	}
	a.session.ShouldQuit = true
}

// runSync hands the terminal back to the shell for the duration of the
// git call so credential prompts reach the user.
func (a *Application) runSync() {
	if a.session.Syncing {
		return
	}
	a.session.Syncing = true
	a.bus.Pause()
	time.Sleep(settleDelay)

	if err := a.screen.Suspend(); err != nil {
		a.bus.Resume()
		a.session.Syncing = false
		a.session.Status = fmt.Sprintf("Sync error: %v", err)
		return
	}

	fmt.Println("Syncing with git...")
	fmt.Printf("Repository path: %q\n", a.session.Root)
	fmt.Println("(If prompted for password, input will be hidden)")

	msg, err := vcs.Sync(a.session.Root)

	if resumeErr := a.screen.Resume(); resumeErr != nil {
		logging.L().Error("resume screen", zap.Error(resumeErr))
	}
	a.screen.Sync()
	a.bus.Resume()
	a.session.Syncing = false

	if err != nil {
		logging.L().Error("sync failed", zap.Error(err))
		a.session.Status = fmt.Sprintf("Sync error: %v", err)
		return
	}
	logging.L().Info("sync finished", zap.String("result", msg))
	a.session.Status = msg
}

// openEditor suspends the session while the editor owns the terminal,
// then rescans: the edit may have changed titles, tags or timestamps.
func (a *Application) openEditor(path string) {
	if len(a.editor) == 0 {
		a.session.Status = "Editor error: no editor found"
		return
	}

	a.bus.Pause()
	if err := a.screen.Suspend(); err != nil {
		a.bus.Resume()
		a.session.Status = fmt.Sprintf("Editor error: %v", err)
		return
	}

	args := append(append([]string(nil), a.editor[1:]...), path)
	cmd := exec.Command(a.editor[0], args...)
	cmd.Dir = a.session.Root
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	runErr := cmd.Run()

	if err := a.screen.Resume(); err != nil {
		logging.L().Error("resume screen", zap.Error(err))
	}
	a.screen.Sync()
	a.bus.Resume()

	if runErr != nil {
		logging.L().Error("editor failed", zap.String("path", path), zap.Error(runErr))
		a.session.Status = fmt.Sprintf("Editor error: %v", runErr)
	}
	a.apply(state.RescanAction{})
}

// copyContent puts the selected document's body on the clipboard. The
// body must already be resident; folders have none.
func (a *Application) copyContent() {
	if _, ok := a.session.SelectedEntry(); !ok {
		return
	}
	n, ok := a.session.SelectedNote()
	if !ok {
		a.session.Status = "Note content not loaded or item is folder."
		return
	}
	body, ok := a.cache.Body(n.Path)
	if !ok {
		a.session.Status = "Note content not loaded or item is folder."
		return
	}
	a.writeClipboard(body, "Content copied to clipboard.")
}

// copyPath puts the selected entry's absolute path on the clipboard.
// Folder paths are as copyable as document paths.
func (a *Application) copyPath() {
	entry, ok := a.session.SelectedEntry()
	if !ok {
		return
	}
	a.writeClipboard(entry.Path, "Path copied to clipboard.")
}

func (a *Application) writeClipboard(text, done string) {
	if clipboard.Unsupported {
		a.session.Status = "Clipboard unavailable."
		return
	}
	if err := clipboard.WriteAll(text); err != nil {
		logging.L().Warn("clipboard write", zap.Error(err))
		a.session.Status = fmt.Sprintf("Copy error: %v", err)
		return
	}
	a.session.Status = done
}
