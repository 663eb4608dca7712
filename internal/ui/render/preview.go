package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/notare-dev/notare/internal/state"
	"github.com/notare-dev/notare/internal/textutil"
)

const loadingText = "Loading..."

// drawPreview renders the selected document's body in the right column,
// soft-wrapped to the pane width and offset by the preview scroll. With
// nothing selected it shows a hint; folders show an empty pane.
func (r *Renderer) drawPreview(s *state.SessionState, pal Palette, m layoutMetrics, bodies BodySource) {
	rows := m.contentBottom - m.contentTop
	if rows <= 0 || m.previewWidth <= 1 {
		return
	}
	width := m.previewWidth - 1 // left padding column

	base := tcell.StyleDefault
	entry, ok := s.SelectedEntry()
	if !ok {
		hint := r.truncateTextToWidth(emptyListHint, width)
		r.drawTextLine(m.previewStart+1, m.contentTop, width, hint, base.Foreground(pal.Dim))
		return
	}
	if entry.IsDir {
		return
	}

	body, resident := bodies.Body(entry.Path)
	if !resident {
		r.drawTextLine(m.previewStart+1, m.contentTop, width, loadingText, base.Foreground(pal.Dim))
		return
	}

	lines := r.wrapBody(body, width)
	start := s.PreviewScroll
	if start > len(lines) {
		start = len(lines)
	}

	for i := 0; i < rows && start+i < len(lines); i++ {
		r.drawTextLine(m.previewStart+1, m.contentTop+i, width, lines[start+i], base)
	}
}

// wrapBody splits a document body into display lines no wider than
// width. Wrapped continuations drop their leading spaces.
func (r *Renderer) wrapBody(body string, width int) []string {
	if width <= 0 {
		return nil
	}

	var out []string
	for _, raw := range strings.Split(body, "\n") {
		line := textutil.ExpandTabs(textutil.SanitizeTerminalText(raw), textutil.DefaultTabWidth)
		if line == "" {
			out = append(out, "")
			continue
		}
		for line != "" {
			head, rest := r.splitAtWidth(line, width)
			out = append(out, head)
			line = strings.TrimLeft(rest, " ")
		}
	}
	return out
}

// splitAtWidth cuts text into a head of at most width display columns
// and the remainder. It prefers breaking at a space near the cut.
func (r *Renderer) splitAtWidth(text string, width int) (string, string) {
	if r.measureTextWidth(text) <= width {
		return text, ""
	}

	runes := []rune(text)
	cut := 0
	cols := 0
	for i, ru := range runes {
		rw := r.cachedRuneWidth(ru)
		if rw < 0 {
			rw = 0
		}
		if cols+rw > width {
			break
		}
		cols += rw
		cut = i + 1
	}
	if cut == 0 {
		cut = 1 // always make progress, even past a too-wide rune
	}
	if cut >= len(runes) {
		return text, ""
	}

	// a space right at the cut is a clean break
	if runes[cut] == ' ' {
		return string(runes[:cut]), string(runes[cut:])
	}
	// otherwise back up to the last space inside the head
	for i := cut - 1; i > 0; i-- {
		if runes[i] == ' ' {
			return string(runes[:i]), string(runes[i+1:])
		}
	}
	return string(runes[:cut]), string(runes[cut:])
}
