// Package state holds the session model and the reducer that mutates
// it. All mutation happens on the single controller goroutine; nothing
// here is safe for concurrent use.
package state

import (
	"path"

	"github.com/notare-dev/notare/internal/note"
	"github.com/notare-dev/notare/internal/search"
)

// Mode is the current input interpretation.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeInput
	ModeConfirmDelete
	ModeSearch
	ModeHelp
)

// InputPurpose says what a committed text buffer is for.
type InputPurpose int

const (
	PurposeCreateNote InputPurpose = iota
	PurposeCreateFolder
	PurposeRename
)

// Status lines reused across the session.
const (
	StatusIdle    = " 'n' for new note, 'enter' to edit, 'g' to sync, 'd' to delete, '/' to search"
	StatusCleared = "press 'n' for new note, 'enter' to edit, 'g' to sync, 'd' to delete, '/' to search"
)

// ===== SESSION STATE =====

// SessionState is the single source of truth for one running session.
type SessionState struct {
	// Index
	Root     string
	AllNotes []note.Note  // every document under Root, current sort applied
	Tree     []note.Entry // folders and documents, folders first

	// Views
	Cursor  string       // root-relative folder the browse view shows, "" = root
	Items   []note.Entry // one level below Cursor
	Results []note.Note  // ranked search results

	// Search
	Query string
	Scope search.Scope

	// Selection & preview
	Selected      int // index into the active list, -1 = none
	PreviewScroll int

	// Mode machine
	Mode    Mode
	Purpose InputPurpose
	Input   string

	// Presentation
	Sort       note.SortMode
	Status     string
	ShowLogs   bool
	ThemeIndex int

	// Sync
	Syncing      bool
	SpinnerFrame int

	// Terminal
	Width  int
	Height int

	ShouldQuit bool

	dispatch func(Action)
}

// SetDispatch installs the hook the reducer uses to hand follow-up
// actions back to the controller (e.g. opening the editor after a
// create commits).
func (s *SessionState) SetDispatch(fn func(Action)) {
	s.dispatch = fn
}

// Dispatch forwards an action to the controller, if a hook is set.
func (s *SessionState) Dispatch(a Action) {
	if s.dispatch != nil {
		s.dispatch(a)
	}
}

// Searching reports whether the ranked result list is the active view.
// The browse listing is shown whenever the query is empty, even while
// the search prompt is open.
func (s *SessionState) Searching() bool {
	return s.Query != ""
}

// ActiveLen is the length of whichever list the selection indexes.
func (s *SessionState) ActiveLen() int {
	if s.Searching() {
		return len(s.Results)
	}
	return len(s.Items)
}

// SelectedEntry returns the selected row of the active view.
func (s *SessionState) SelectedEntry() (note.Entry, bool) {
	if s.Selected < 0 {
		return note.Entry{}, false
	}
	if s.Searching() {
		if s.Selected >= len(s.Results) {
			return note.Entry{}, false
		}
		n := s.Results[s.Selected]
		return note.Entry{Path: n.Path, Title: n.Title, Note: n}, true
	}
	if s.Selected >= len(s.Items) {
		return note.Entry{}, false
	}
	return s.Items[s.Selected], true
}

// SelectedNote returns the selected document. Folders report false.
func (s *SessionState) SelectedNote() (note.Note, bool) {
	entry, ok := s.SelectedEntry()
	if !ok || entry.IsDir {
		return note.Note{}, false
	}
	return entry.Note, true
}

// Tick advances time-driven presentation state.
func (s *SessionState) Tick() {
	if s.Syncing {
		s.SpinnerFrame = (s.SpinnerFrame + 1) % 4
	}
}

// resetSelection points the selection at the top of the active list,
// or clears it when the list is empty.
func (s *SessionState) resetSelection() {
	if s.ActiveLen() > 0 {
		s.Selected = 0
	} else {
		s.Selected = -1
	}
	s.PreviewScroll = 0
}

// clampSelection keeps the selection index valid after the active list
// shrank, preferring to stay in place.
func (s *SessionState) clampSelection() {
	n := s.ActiveLen()
	switch {
	case n == 0:
		s.Selected = -1
	case s.Selected < 0:
		s.Selected = 0
	case s.Selected >= n:
		s.Selected = n - 1
	}
}

// parentCursor returns the cursor one level up, "" at the root.
func parentCursor(cursor string) string {
	if cursor == "" {
		return ""
	}
	parent := path.Dir(cursor)
	if parent == "." || parent == "/" {
		return ""
	}
	return parent
}
