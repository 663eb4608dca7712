package state

import "github.com/notare-dev/notare/internal/search"

// Action is the base interface for all intents produced by input
// translation and consumed by the controller.
type Action interface{}

// ===== NAVIGATION =====

type MoveDownAction struct{}
type MoveUpAction struct{}
type AscendAction struct{}
type OpenAction struct{} // folder: descend; document: open editor
type PreviewUpAction struct{}
type PreviewDownAction struct{}

// ===== MODE ENTRY =====

type StartCreateNoteAction struct{}
type StartCreateFolderAction struct{}
type StartRenameAction struct{}
type StartDeleteAction struct{}
type StartSearchAction struct {
	Scope search.Scope
}
type ToggleHelpAction struct{}

// ===== TEXT INPUT =====

type InputCharAction struct {
	Char rune
}
type InputBackspaceAction struct{}
type SubmitInputAction struct{} // also the delete confirmation
type CancelInputAction struct{}

// ===== SEARCH INPUT =====

type SearchCharAction struct {
	Char rune
}
type SearchBackspaceAction struct{}
type CommitSearchAction struct{}
type CancelSearchAction struct{}
type ClearFilterAction struct{}

// ===== SESSION =====

type CycleSortAction struct{}
type CycleThemeAction struct{}
type ToggleLogsAction struct{}
type RescanAction struct{}
type ResizeAction struct {
	Width  int
	Height int
}

// ===== CONTROLLER-LEVEL =====
//
// These are consumed by the application, not the reducer: they need
// the terminal, a subprocess or the clipboard.

type QuitAction struct{}
type SyncAction struct{}
type CopyContentAction struct{}
type CopyPathAction struct{}

// OpenEditorAction asks the controller to open path in the editor.
// The reducer dispatches it after a successful note creation.
type OpenEditorAction struct {
	Path string
}
