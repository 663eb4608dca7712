package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/notare-dev/notare/internal/config"
	"github.com/notare-dev/notare/internal/logging"
	"github.com/notare-dev/notare/internal/note"
	"github.com/notare-dev/notare/internal/state"
)

type stubBodies map[string]string

func (m stubBodies) Body(path string) (string, bool) {
	body, ok := m[path]
	return body, ok
}

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(t *testing.T, screen tcell.SimulationScreen, y int) string {
	t.Helper()
	cells, w, h := screen.GetContents()
	if y < 0 || y >= h {
		t.Fatalf("row %d out of range (height %d)", y, h)
	}
	var b strings.Builder
	for x := 0; x < w; x++ {
		cell := cells[y*w+x]
		if len(cell.Runes) > 0 {
			b.WriteRune(cell.Runes[0])
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func screenText(t *testing.T, screen tcell.SimulationScreen) string {
	t.Helper()
	_, _, h := screen.GetContents()
	var b strings.Builder
	for y := 0; y < h; y++ {
		b.WriteString(rowText(t, screen, y))
		b.WriteByte('\n')
	}
	return b.String()
}

func browseState() *state.SessionState {
	return &state.SessionState{
		Root:   "/r",
		Cursor: "",
		Items: []note.Entry{
			{Path: "/r/work", Title: "work", IsDir: true},
			{Path: "/r/a.md", Title: "a", Note: note.Note{Path: "/r/a.md", Title: "a", Tags: []string{"ideas"}}},
		},
		Selected: 1,
		Mode:     state.ModeBrowse,
		Status:   state.StatusIdle,
	}
}

func TestRenderListPreviewAndStatus(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewRenderer(screen, config.Theme{})

	s := browseState()
	r.Render(s, stubBodies{"/r/a.md": "alpha body\nsecond line"})

	frame := screenText(t, screen)
	if !strings.Contains(frame, "work/") {
		t.Errorf("folder row missing:\n%s", frame)
	}
	if !strings.Contains(frame, "> a") {
		t.Errorf("selected row marker missing:\n%s", frame)
	}
	if !strings.Contains(frame, "#ideas") {
		t.Errorf("tag missing from list row:\n%s", frame)
	}
	if !strings.Contains(frame, "alpha body") {
		t.Errorf("preview body missing:\n%s", frame)
	}
	if !strings.Contains(rowText(t, screen, 23), state.StatusIdle[:20]) {
		t.Errorf("status row = %q", rowText(t, screen, 23))
	}
	if !strings.Contains(rowText(t, screen, 0), "notare") {
		t.Errorf("header row = %q", rowText(t, screen, 0))
	}
}

func TestPreviewFallsBackToLoading(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewRenderer(screen, config.Theme{})

	r.Render(browseState(), stubBodies{})

	if !strings.Contains(screenText(t, screen), "Loading...") {
		t.Error("missing Loading fallback for non-resident body")
	}
}

func TestPreviewHintWithoutSelection(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewRenderer(screen, config.Theme{})

	s := &state.SessionState{Selected: -1, Mode: state.ModeBrowse, Status: state.StatusIdle}
	r.Render(s, stubBodies{})

	if !strings.Contains(screenText(t, screen), "press 'n' to create a new note.") {
		t.Error("missing empty-selection hint")
	}
}

func TestPreviewScrollSkipsLines(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewRenderer(screen, config.Theme{})

	s := browseState()
	s.PreviewScroll = 1
	r.Render(s, stubBodies{"/r/a.md": "first line\nsecond line"})

	frame := screenText(t, screen)
	if strings.Contains(frame, "first line") {
		t.Errorf("scrolled-off line still visible:\n%s", frame)
	}
	if !strings.Contains(frame, "second line") {
		t.Errorf("line after scroll missing:\n%s", frame)
	}
}

func TestFolderSelectionShowsEmptyPreview(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewRenderer(screen, config.Theme{})

	s := browseState()
	s.Selected = 0 // the folder
	r.Render(s, stubBodies{})

	frame := screenText(t, screen)
	if strings.Contains(frame, "Loading...") {
		t.Errorf("folder selection rendered a body fallback:\n%s", frame)
	}
}

func TestStatusEchoesTypedInput(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewRenderer(screen, config.Theme{})

	s := browseState()
	s.Mode = state.ModeInput
	s.Status = "Enter filename: "
	s.Input = "memo"
	r.Render(s, stubBodies{})

	if !strings.Contains(rowText(t, screen, 23), "Enter filename: memo") {
		t.Errorf("status row = %q", rowText(t, screen, 23))
	}
}

func TestConfirmPromptUsesEmphasisColor(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewRenderer(screen, config.Theme{})

	s := browseState()
	s.Mode = state.ModeConfirmDelete
	s.Status = "Delete 'a'? (y/n)"
	r.Render(s, stubBodies{})

	cells, w, _ := screen.GetContents()
	fg, _, _ := cells[23*w].Style.Decompose()
	if fg != palettes[0].Bold {
		t.Errorf("confirm prompt foreground = %v, want emphasis color", fg)
	}
}

func TestSpinnerShownWhileSyncing(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewRenderer(screen, config.Theme{})

	s := browseState()
	s.Syncing = true
	s.SpinnerFrame = 2
	s.Status = "Syncing..."
	r.Render(s, stubBodies{})

	row := rowText(t, screen, 23)
	if !strings.HasPrefix(row, "- ") {
		t.Errorf("status row = %q, want spinner frame prefix", row)
	}
}

func TestSearchViewListsResults(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewRenderer(screen, config.Theme{})

	s := browseState()
	s.Query = "pl"
	s.Results = []note.Note{
		{Path: "/r/work/plan.md", Title: "work/plan"},
		{Path: "/r/plot.md", Title: "plot"},
	}
	s.Selected = 0
	r.Render(s, stubBodies{})

	frame := screenText(t, screen)
	if !strings.Contains(frame, "work/plan") {
		t.Errorf("result row missing:\n%s", frame)
	}
	if !strings.Contains(rowText(t, screen, 0), "2 matches") {
		t.Errorf("header summary = %q", rowText(t, screen, 0))
	}
}

func TestHelpOverlayCoversFrame(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewRenderer(screen, config.Theme{})

	s := browseState()
	s.Mode = state.ModeHelp
	r.Render(s, stubBodies{})

	frame := screenText(t, screen)
	for _, want := range []string{"Navigation", "New note", "Git sync", "? or Esc to close"} {
		if !strings.Contains(frame, want) {
			t.Errorf("help overlay missing %q:\n%s", want, frame)
		}
	}
	if strings.Contains(frame, "work/") {
		t.Error("list content visible under help overlay")
	}
}

func TestLogPaneShowsRecentLines(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewRenderer(screen, config.Theme{})

	logging.L().Info("watcher rescan complete")
	s := browseState()
	s.ShowLogs = true
	r.Render(s, stubBodies{})

	if !strings.Contains(screenText(t, screen), "watcher rescan complete") {
		t.Error("log pane missing recent line")
	}
}

func TestNarrowScreenDropsPreview(t *testing.T) {
	screen := newTestScreen(t, 30, 10)
	r := NewRenderer(screen, config.Theme{})

	m := r.computeLayout(30, 10, &state.SessionState{})
	if m.showPreview {
		t.Error("preview shown on a 30-column screen")
	}
	if m.listWidth != 30 {
		t.Errorf("listWidth = %d, want full width", m.listWidth)
	}
}

func TestWrapBodyBreaksAtSpaces(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewRenderer(screen, config.Theme{})

	lines := r.wrapBody("alpha beta gamma", 10)
	want := []string{"alpha beta", "gamma"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("lines = %q, want %q", lines, want)
		}
	}

	if got := r.wrapBody("", 10); len(got) != 1 || got[0] != "" {
		t.Errorf("empty body wrapped to %q", got)
	}
}

func TestPaletteOverridesAndWrapAround(t *testing.T) {
	p := PaletteFor(0, config.Theme{Accent: "#ffffff", Dim: "nonsense"})
	if p.Accent != tcell.NewRGBColor(255, 255, 255) {
		t.Errorf("Accent override not applied")
	}
	if p.Dim != palettes[0].Dim {
		t.Errorf("invalid override replaced the built-in color")
	}

	if got := PaletteFor(PaletteCount(), config.Theme{}); got.Name != palettes[0].Name {
		t.Errorf("index wrap: got %q, want %q", got.Name, palettes[0].Name)
	}
	if got := PaletteFor(1, config.Theme{}); got.Name != palettes[1].Name {
		t.Errorf("index 1: got %q", got.Name)
	}
}
