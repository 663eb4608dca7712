package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{
		title: "Navigation",
		entries: []helpEntry{
			{keys: "j/k or ↑/↓", desc: "Move selection"},
			{keys: "l, → or ↵", desc: "Open note / enter folder"},
			{keys: "h or ←", desc: "Parent folder"},
			{keys: "Ctrl+j / Ctrl+k", desc: "Scroll preview"},
		},
	},
	{
		title: "Notes",
		entries: []helpEntry{
			{keys: "n", desc: "New note"},
			{keys: "N", desc: "New folder"},
			{keys: "r", desc: "Rename"},
			{keys: "d", desc: "Delete"},
			{keys: "y / Y", desc: "Copy content / path"},
		},
	},
	{
		title: "Search",
		entries: []helpEntry{
			{keys: "/", desc: "Search titles"},
			{keys: "#", desc: "Search tags"},
			{keys: "f", desc: "Search content"},
			{keys: "Esc", desc: "Clear filter"},
		},
	},
	{
		title: "Session",
		entries: []helpEntry{
			{keys: "g", desc: "Git sync"},
			{keys: "s", desc: "Cycle sort order"},
			{keys: "t", desc: "Cycle theme"},
			{keys: "Ctrl+r", desc: "Rescan folder"},
			{keys: "F12", desc: "Toggle log pane"},
			{keys: "q", desc: "Quit"},
		},
	},
}

func buildHelpLines() []string {
	lines := make([]string, 0, 32)
	for i, section := range helpSections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, fmt.Sprintf("  %-16s %s", entry.keys, entry.desc))
		}
	}
	return lines
}

func (r *Renderer) drawHelpOverlay(pal Palette, w, h int) {
	base := tcell.StyleDefault
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.screen.SetContent(x, y, ' ', nil, base)
		}
	}

	title := " help "
	titleStyle := base.Foreground(pal.Header).Bold(true)
	start := 0
	if tw := r.measureTextWidth(title); w > tw {
		start = (w - tw) / 2
	}
	r.drawTextLine(start, 0, w-start, title, titleStyle)

	row := 2
	for _, line := range buildHelpLines() {
		if row >= h-1 {
			break
		}
		style := base
		if line != "" && line[0] != ' ' {
			style = base.Foreground(pal.Accent)
		}
		r.drawTextLine(2, row, w-4, r.truncateTextToWidth(line, w-4), style)
		row++
	}

	footer := "? or Esc to close"
	r.drawTextLine(0, h-1, w, r.truncateTextToWidth(footer, w), base.Foreground(pal.Dim))
}
