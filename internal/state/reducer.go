package state

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/notare-dev/notare/internal/cache"
	"github.com/notare-dev/notare/internal/config"
	"github.com/notare-dev/notare/internal/logging"
	"github.com/notare-dev/notare/internal/note"
	"github.com/notare-dev/notare/internal/search"
)

// Reducer applies actions to a SessionState. File operations and
// rescans happen here; anything needing the terminal, a subprocess or
// the clipboard is dispatched back to the controller instead.
type Reducer struct {
	cache *cache.Cache
	cfg   *config.Config
}

func NewReducer(c *cache.Cache, cfg *config.Config) *Reducer {
	return &Reducer{cache: c, cfg: cfg}
}

// NewSession scans root and builds the initial state: browse view at
// the root folder, first document selected and loaded.
func (r *Reducer) NewSession(root string) *SessionState {
	s := &SessionState{
		Root:     root,
		Selected: -1,
		Sort:     r.cfg.SortMode(),
		Status:   StatusIdle,
	}
	r.rescan(s)
	return s
}

func (r *Reducer) Reduce(s *SessionState, action Action) (*SessionState, error) {
	switch a := action.(type) {

	// ===== NAVIGATION =====

	case MoveDownAction:
		n := s.ActiveLen()
		if n == 0 {
			return s, nil
		}
		switch {
		case s.Selected < 0:
			s.Selected = 0
		case s.Selected >= n-1:
			s.Selected = 0
		default:
			s.Selected++
		}
		s.PreviewScroll = 0
		r.loadSelection(s)

	case MoveUpAction:
		n := s.ActiveLen()
		if n == 0 {
			return s, nil
		}
		switch {
		case s.Selected < 0:
			s.Selected = 0
		case s.Selected == 0:
			s.Selected = n - 1
		default:
			s.Selected--
		}
		s.PreviewScroll = 0
		r.loadSelection(s)

	case AscendAction:
		if s.Searching() || s.Cursor == "" {
			return s, nil
		}
		s.Cursor = parentCursor(s.Cursor)
		s.Items = note.ListDir(s.Tree, s.Root, s.Cursor, s.Sort)
		s.resetSelection()
		r.loadSelection(s)

	case OpenAction:
		entry, ok := s.SelectedEntry()
		if !ok {
			return s, nil
		}
		if !entry.IsDir {
			s.Dispatch(OpenEditorAction{Path: entry.Path})
			return s, nil
		}
		s.Cursor = entry.Title
		s.Items = note.ListDir(s.Tree, s.Root, s.Cursor, s.Sort)
		s.resetSelection()
		r.loadSelection(s)

	case PreviewDownAction:
		s.PreviewScroll++

	case PreviewUpAction:
		if s.PreviewScroll > 0 {
			s.PreviewScroll--
		}

	// ===== MODE ENTRY =====

	case StartCreateNoteAction:
		s.Mode = ModeInput
		s.Purpose = PurposeCreateNote
		s.Input = ""
		s.Status = "Enter filename: "

	case StartCreateFolderAction:
		s.Mode = ModeInput
		s.Purpose = PurposeCreateFolder
		s.Input = ""
		s.Status = "Enter folder name: "

	case StartRenameAction:
		entry, ok := s.SelectedEntry()
		if !ok {
			return s, nil
		}
		s.Mode = ModeInput
		s.Purpose = PurposeRename
		s.Input = renameSeed(entry)
		s.Status = "Rename item: "

	case StartDeleteAction:
		entry, ok := s.SelectedEntry()
		if !ok {
			return s, nil
		}
		s.Mode = ModeConfirmDelete
		s.Status = fmt.Sprintf("Delete '%s'? (y/n)", displayName(entry))

	case StartSearchAction:
		s.Mode = ModeSearch
		s.Scope = a.Scope
		s.Query = ""
		s.Results = nil
		s.Status = searchPrompt(a.Scope)

	case ToggleHelpAction:
		if s.Mode == ModeHelp {
			s.Mode = ModeBrowse
		} else {
			s.Mode = ModeHelp
		}

	// ===== TEXT INPUT =====

	case InputCharAction:
		s.Input += string(a.Char)

	case InputBackspaceAction:
		s.Input = dropLastRune(s.Input)

	case SubmitInputAction:
		switch s.Mode {
		case ModeInput:
			r.submitInput(s)
		case ModeConfirmDelete:
			r.confirmDelete(s)
		}

	case CancelInputAction:
		s.Mode = ModeBrowse
		s.Input = ""
		s.Status = "Cancelled."

	// ===== SEARCH INPUT =====

	case SearchCharAction:
		s.Query += string(a.Char)
		r.rank(s)
		s.resetSelection()
		r.loadSelection(s)
		s.Status = searchPrompt(s.Scope) + s.Query

	case SearchBackspaceAction:
		s.Query = dropLastRune(s.Query)
		r.rank(s)
		s.resetSelection()
		r.loadSelection(s)
		s.Status = searchPrompt(s.Scope) + s.Query

	case CommitSearchAction:
		s.Mode = ModeBrowse
		s.Status = "Filter active. Esc to clear."

	case CancelSearchAction:
		r.clearFilter(s)

	case ClearFilterAction:
		if s.Query == "" {
			return s, nil
		}
		r.clearFilter(s)

	// ===== SESSION =====

	case CycleSortAction:
		s.Sort = s.Sort.Next()
		note.SortNotes(s.AllNotes, s.Sort)
		s.Items = note.ListDir(s.Tree, s.Root, s.Cursor, s.Sort)
		if s.Searching() {
			r.rank(s)
		}
		s.PreviewScroll = 0
		r.loadSelection(s)
		r.cfg.SetSortMode(s.Sort)
		if err := r.cfg.Save(); err != nil {
			return s, fmt.Errorf("persist sort mode: %w", err)
		}

	case CycleThemeAction:
		s.ThemeIndex++

	case ToggleLogsAction:
		s.ShowLogs = !s.ShowLogs

	case RescanAction:
		r.rescan(s)

	case ResizeAction:
		s.Width = a.Width
		s.Height = a.Height
	}

	return s, nil
}

// ===== INTERNALS =====

// rescan rebuilds the index and both views from disk. Cached bodies
// are dropped since file content may have changed; the selection's
// body is reloaded afterwards. An active filter re-ranks and resets
// the selection; the browse view clamps it, and the cursor walks up
// to the nearest surviving ancestor when its folder disappeared.
func (r *Reducer) rescan(s *SessionState) {
	prev := ""
	if entry, ok := s.SelectedEntry(); ok {
		prev = entry.Path
	}

	s.AllNotes = note.Scan(s.Root)
	if s.Sort != note.SortModified {
		note.SortNotes(s.AllNotes, s.Sort)
	}
	s.Tree = note.ScanTree(s.Root)
	r.cache.Invalidate()

	for s.Cursor != "" && !treeHasFolder(s.Tree, s.Cursor) {
		s.Cursor = parentCursor(s.Cursor)
	}
	s.Items = note.ListDir(s.Tree, s.Root, s.Cursor, s.Sort)

	if s.Searching() {
		r.rank(s)
		s.resetSelection()
	} else {
		s.clampSelection()
	}

	if entry, ok := s.SelectedEntry(); !ok || entry.Path != prev {
		s.PreviewScroll = 0
	}
	r.loadSelection(s)
}

func (r *Reducer) rank(s *SessionState) {
	s.Results = search.Rank(s.AllNotes, s.Query, s.Scope, func(n note.Note) (string, error) {
		return r.cache.GetOrLoad(n)
	})
}

// loadSelection pins the selected document and makes its body
// resident so the preview can draw without I/O.
func (r *Reducer) loadSelection(s *SessionState) {
	n, ok := s.SelectedNote()
	if !ok {
		r.cache.Pin("")
		return
	}
	r.cache.Pin(n.Path)
	if _, err := r.cache.GetOrLoad(n); err != nil {
		logging.L().Warn("load note body", zap.String("path", n.Path), zap.Error(err))
	}
}

func (r *Reducer) clearFilter(s *SessionState) {
	s.Mode = ModeBrowse
	s.Query = ""
	s.Results = nil
	s.Status = StatusCleared
	s.resetSelection()
	r.loadSelection(s)
}

func (r *Reducer) submitInput(s *SessionState) {
	if strings.TrimSpace(s.Input) == "" {
		return
	}

	switch s.Purpose {
	case PurposeCreateNote:
		created, err := note.Create(r.cursorDir(s), s.Input)
		if err != nil {
			s.Status = fmt.Sprintf("Error: %v", err)
			return
		}
		s.Mode = ModeBrowse
		s.Input = ""
		s.Status = "Note created."
		r.rescan(s)
		r.selectPath(s, created)
		s.Dispatch(OpenEditorAction{Path: created})

	case PurposeCreateFolder:
		if _, err := note.CreateFolder(r.cursorDir(s), s.Input); err != nil {
			s.Status = fmt.Sprintf("Error: %v", err)
			return
		}
		s.Mode = ModeBrowse
		s.Input = ""
		s.Status = "Folder created."
		r.rescan(s)

	case PurposeRename:
		entry, ok := s.SelectedEntry()
		if !ok {
			s.Mode = ModeBrowse
			s.Input = ""
			return
		}
		renamed, err := note.Rename(entry.Path, s.Input, entry.IsDir)
		if err != nil {
			s.Status = fmt.Sprintf("Rename error: %v", err)
			return
		}
		s.Mode = ModeBrowse
		s.Input = ""
		s.Status = "Item renamed."
		r.rescan(s)
		r.selectPath(s, renamed)
	}
}

func (r *Reducer) confirmDelete(s *SessionState) {
	entry, ok := s.SelectedEntry()
	s.Mode = ModeBrowse
	if !ok {
		return
	}
	if err := note.Delete(entry.Path, entry.IsDir); err != nil {
		s.Status = fmt.Sprintf("Delete error: %v", err)
	} else {
		s.Status = "Item deleted."
	}
	r.rescan(s)
}

// cursorDir is the absolute directory new items land in.
func (r *Reducer) cursorDir(s *SessionState) string {
	return filepath.Join(s.Root, filepath.FromSlash(s.Cursor))
}

// selectPath moves the browse selection to the entry at path, if it is
// visible in the current listing.
func (r *Reducer) selectPath(s *SessionState, path string) {
	if s.Searching() {
		return
	}
	for i, entry := range s.Items {
		if entry.Path == path {
			s.Selected = i
			s.PreviewScroll = 0
			r.loadSelection(s)
			return
		}
	}
}

func treeHasFolder(tree []note.Entry, cursor string) bool {
	for _, entry := range tree {
		if entry.IsDir && entry.Title == cursor {
			return true
		}
	}
	return false
}

func renameSeed(entry note.Entry) string {
	if entry.IsDir {
		return path.Base(entry.Title)
	}
	return strings.TrimSuffix(filepath.Base(entry.Path), note.Extension)
}

func displayName(entry note.Entry) string {
	if entry.IsDir {
		return path.Base(entry.Title)
	}
	return entry.Title
}

func searchPrompt(scope search.Scope) string {
	switch scope {
	case search.ScopeTag:
		return "Tag search: "
	case search.ScopeContent:
		return "Content search: "
	default:
		return "Search: "
	}
}

func dropLastRune(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return string(runes[:len(runes)-1])
}
