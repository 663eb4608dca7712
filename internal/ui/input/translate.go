// Package input maps terminal key presses to session actions.
package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/notare-dev/notare/internal/search"
	"github.com/notare-dev/notare/internal/state"
)

// Translate returns the action a key press triggers in the given mode,
// or nil when the key is unbound there. The same mode and key always
// yield the same action; callers decide what to do with it.
func Translate(mode state.Mode, ev *tcell.EventKey) state.Action {
	if ev.Key() == tcell.KeyCtrlC {
		return state.QuitAction{}
	}

	switch mode {
	case state.ModeBrowse:
		return translateBrowse(ev)
	case state.ModeInput:
		return translateTextEntry(ev)
	case state.ModeConfirmDelete:
		return translateConfirm(ev)
	case state.ModeSearch:
		return translateSearch(ev)
	case state.ModeHelp:
		return translateHelp(ev)
	}
	return nil
}

func translateBrowse(ev *tcell.EventKey) state.Action {
	switch ev.Key() {
	case tcell.KeyDown:
		return state.MoveDownAction{}
	case tcell.KeyUp:
		return state.MoveUpAction{}
	case tcell.KeyLeft:
		return state.AscendAction{}
	case tcell.KeyRight, tcell.KeyEnter:
		return state.OpenAction{}
	case tcell.KeyCtrlJ:
		return state.PreviewDownAction{}
	case tcell.KeyCtrlK:
		return state.PreviewUpAction{}
	case tcell.KeyCtrlR:
		return state.RescanAction{}
	case tcell.KeyEscape:
		return state.ClearFilterAction{}
	case tcell.KeyF12:
		return state.ToggleLogsAction{}

	case tcell.KeyRune:
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModShift != 0 {
			r = unicode.ToUpper(r)
		}
		switch r {
		case 'q':
			return state.QuitAction{}
		case 'j':
			return state.MoveDownAction{}
		case 'k':
			return state.MoveUpAction{}
		case 'h':
			return state.AscendAction{}
		case 'l':
			return state.OpenAction{}
		case 'n':
			return state.StartCreateNoteAction{}
		case 'N':
			return state.StartCreateFolderAction{}
		case 'r':
			return state.StartRenameAction{}
		case 'd':
			return state.StartDeleteAction{}
		case 'y':
			return state.CopyContentAction{}
		case 'Y':
			return state.CopyPathAction{}
		case 'g':
			return state.SyncAction{}
		case 's':
			return state.CycleSortAction{}
		case 't':
			return state.CycleThemeAction{}
		case '/':
			return state.StartSearchAction{Scope: search.ScopeTitle}
		case '#':
			return state.StartSearchAction{Scope: search.ScopeTag}
		case 'f':
			return state.StartSearchAction{Scope: search.ScopeContent}
		case '?':
			return state.ToggleHelpAction{}
		}
	}
	return nil
}

func translateTextEntry(ev *tcell.EventKey) state.Action {
	switch ev.Key() {
	case tcell.KeyEnter:
		return state.SubmitInputAction{}
	case tcell.KeyEscape:
		return state.CancelInputAction{}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return state.InputBackspaceAction{}
	case tcell.KeyRune:
		return state.InputCharAction{Char: ev.Rune()}
	}
	return nil
}

func translateConfirm(ev *tcell.EventKey) state.Action {
	switch ev.Key() {
	case tcell.KeyEscape:
		return state.CancelInputAction{}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'y', 'Y':
			return state.SubmitInputAction{}
		case 'n', 'N':
			return state.CancelInputAction{}
		}
	}
	return nil
}

func translateSearch(ev *tcell.EventKey) state.Action {
	switch ev.Key() {
	case tcell.KeyEnter:
		return state.CommitSearchAction{}
	case tcell.KeyEscape:
		return state.CancelSearchAction{}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return state.SearchBackspaceAction{}
	case tcell.KeyRune:
		return state.SearchCharAction{Char: ev.Rune()}
	}
	return nil
}

func translateHelp(ev *tcell.EventKey) state.Action {
	switch ev.Key() {
	case tcell.KeyEscape:
		return state.ToggleHelpAction{}
	case tcell.KeyRune:
		switch ev.Rune() {
		case '?', 'q':
			return state.ToggleHelpAction{}
		}
	}
	return nil
}
