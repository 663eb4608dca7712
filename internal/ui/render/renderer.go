// Package render draws the session state onto a tcell screen: header,
// document list, preview, optional log pane, and the status line.
package render

import (
	"fmt"
	"path"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/notare-dev/notare/internal/config"
	"github.com/notare-dev/notare/internal/logging"
	"github.com/notare-dev/notare/internal/state"
	"github.com/notare-dev/notare/internal/textutil"
)

// BodySource supplies cached document bodies without loading anything.
type BodySource interface {
	Body(path string) (string, bool)
}

var spinnerFrames = [4]rune{'|', '/', '-', '\\'}

const emptyListHint = "press 'n' to create a new note."

// Renderer draws frames. It holds no session state; everything comes in
// through Render.
type Renderer struct {
	screen    tcell.Screen
	overrides config.Theme

	runeWidthCache   [128]int
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map
}

// NewRenderer creates a renderer for screen. Configured color overrides
// apply to every built-in palette.
func NewRenderer(screen tcell.Screen, overrides config.Theme) *Renderer {
	return &Renderer{
		screen:    screen,
		overrides: overrides,
	}
}

// Render draws one complete frame.
func (r *Renderer) Render(s *state.SessionState, bodies BodySource) {
	r.screen.Clear()

	w, h := r.screen.Size()
	pal := PaletteFor(s.ThemeIndex, r.overrides)
	m := r.computeLayout(w, h, s)

	r.drawHeader(s, pal, w)
	r.drawList(s, pal, m)
	if m.showPreview {
		r.drawPreview(s, pal, m, bodies)
	}
	if m.logRows > 0 {
		r.drawLogPane(pal, m, w)
	}
	r.drawStatus(s, pal, w, m.statusRow)

	if s.Mode == state.ModeHelp {
		r.drawHelpOverlay(pal, w, h)
	}

	r.screen.Show()
}

// drawHeader renders the top bar: application name, current folder, and
// a right-aligned listing summary.
func (r *Renderer) drawHeader(s *state.SessionState, pal Palette, w int) {
	base := tcell.StyleDefault
	nameStyle := base.Foreground(pal.Header).Bold(true)
	dimStyle := base.Foreground(pal.Dim)

	x := r.drawTextLine(1, 0, w-1, "notare", nameStyle)
	location := "/"
	if s.Cursor != "" {
		location = "/" + s.Cursor
	}
	if x < w-1 {
		x = r.drawTextLine(x+1, 0, w-x-1, r.truncateTextToWidth(location, w-x-1), dimStyle)
	}

	summary := r.headerSummary(s)
	sw := r.measureTextWidth(summary)
	if start := w - sw - 1; start > x+1 {
		r.drawTextLine(start, 0, sw, summary, dimStyle)
	}
}

func (r *Renderer) headerSummary(s *state.SessionState) string {
	if s.Searching() {
		n := len(s.Results)
		if n == 1 {
			return fmt.Sprintf("%s · 1 match", s.Scope)
		}
		return fmt.Sprintf("%s · %d matches", s.Scope, n)
	}
	n := len(s.Items)
	if n == 1 {
		return fmt.Sprintf("%s · 1 item", s.Sort)
	}
	return fmt.Sprintf("%s · %d items", s.Sort, n)
}

// drawList renders the left column: the browse listing, or the ranked
// results while a query is active. The window follows the selection.
func (r *Renderer) drawList(s *state.SessionState, pal Palette, m layoutMetrics) {
	rows := m.contentBottom - m.contentTop
	if rows <= 0 || m.listWidth <= 0 {
		return
	}

	total := s.ActiveLen()
	if total == 0 {
		return
	}

	first := 0
	if s.Selected >= rows {
		first = s.Selected - rows + 1
	}

	for i := first; i < total && i-first < rows; i++ {
		y := m.contentTop + (i - first)
		r.drawListRow(s, pal, m, i, y)
	}
}

func (r *Renderer) drawListRow(s *state.SessionState, pal Palette, m layoutMetrics, index, y int) {
	var (
		label  string
		tags   []string
		isDir  bool
		marker = "  "
	)

	if s.Searching() {
		n := s.Results[index]
		label = n.Title
		tags = n.Tags
	} else {
		entry := s.Items[index]
		isDir = entry.IsDir
		label = path.Base(entry.Title)
		if isDir {
			label += "/"
		} else {
			tags = entry.Note.Tags
		}
	}

	label = textutil.SanitizeTerminalText(label)

	base := tcell.StyleDefault
	style := base
	tagStyle := base.Foreground(pal.Dim)
	if isDir {
		style = base.Foreground(pal.Header)
	}
	if index == s.Selected {
		marker = "> "
		style = base.Foreground(pal.Selection).Reverse(true)
		tagStyle = style
		for x := 0; x < m.listWidth; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}

	x := r.drawTextLine(0, y, m.listWidth, marker, style)
	x = r.drawTextLine(x, y, m.listWidth-x, r.truncateTextToWidth(label, m.listWidth-x-1), style)

	for _, tag := range tags {
		text := " #" + textutil.SanitizeTerminalText(tag)
		remaining := m.listWidth - x - 1
		if r.measureTextWidth(text) > remaining {
			break
		}
		x = r.drawTextLine(x, y, remaining, text, tagStyle)
	}
}

// drawLogPane renders the most recent log lines above the status row.
func (r *Renderer) drawLogPane(pal Palette, m layoutMetrics, w int) {
	lines := logging.Lines()
	if len(lines) > m.logRows {
		lines = lines[len(lines)-m.logRows:]
	}

	style := tcell.StyleDefault.Foreground(pal.Dim)
	for i, line := range lines {
		text := textutil.SanitizeTerminalText(line)
		r.drawTextLine(0, m.logTop+i, w, r.truncateTextToWidth(text, w), style)
	}
}

// drawStatus renders the bottom line: spinner while syncing, then the
// status message, with typed input echoed after its prompt.
func (r *Renderer) drawStatus(s *state.SessionState, pal Palette, w, y int) {
	base := tcell.StyleDefault
	x := 0

	if s.Syncing {
		style := base.Foreground(pal.Accent)
		x = r.drawTextLine(x, y, w, string(spinnerFrames[s.SpinnerFrame%len(spinnerFrames)])+" ", style)
	}

	text := s.Status
	if s.Mode == state.ModeInput {
		text += s.Input
	}
	style := base
	if s.Mode == state.ModeConfirmDelete {
		style = base.Foreground(pal.Bold)
	}
	text = textutil.SanitizeTerminalText(text)
	r.drawTextLine(x, y, w-x, r.truncateTextToWidth(text, w-x), style)
}
