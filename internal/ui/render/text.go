package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// cachedRuneWidth memoizes display widths: a fixed array for ASCII and
// a sync.Map for everything else. The array stores width+1 so a zero
// slot means "not measured yet".
func (r *Renderer) cachedRuneWidth(ru rune) int {
	if ru < 128 {
		r.runeWidthCacheMu.RLock()
		width := r.runeWidthCache[ru]
		r.runeWidthCacheMu.RUnlock()

		if width == 0 && ru != 0 {
			actual := runewidth.RuneWidth(ru)
			if actual < 0 {
				actual = 0
			}
			r.runeWidthCacheMu.Lock()
			r.runeWidthCache[ru] = actual + 1
			r.runeWidthCacheMu.Unlock()
			return actual
		}
		return width - 1
	}

	if cached, ok := r.runeWidthWide.Load(ru); ok {
		return cached.(int)
	}
	width := runewidth.RuneWidth(ru)
	if width < 0 {
		width = 0
	}
	r.runeWidthWide.Store(ru, width)
	return width
}

func (r *Renderer) measureTextWidth(text string) int {
	width := 0
	for _, ru := range text {
		if rw := r.cachedRuneWidth(ru); rw > 0 {
			width += rw
		}
	}
	return width
}

// truncateTextToWidth fits text into maxWidth display columns, ending
// with an ellipsis when anything was cut.
func (r *Renderer) truncateTextToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if r.measureTextWidth(text) <= maxWidth {
		return text
	}

	const ellipsis = '…'
	ellipsisWidth := r.cachedRuneWidth(ellipsis)
	if ellipsisWidth <= 0 {
		ellipsisWidth = 1
	}
	if maxWidth <= ellipsisWidth {
		return string(ellipsis)
	}

	available := maxWidth - ellipsisWidth
	var b strings.Builder
	width := 0
	for _, ru := range text {
		rw := r.cachedRuneWidth(ru)
		if rw < 0 {
			rw = 0
		}
		if width+rw > available {
			break
		}
		b.WriteRune(ru)
		width += rw
	}
	b.WriteRune(ellipsis)
	return b.String()
}

// drawTextLine draws text starting at (startX, y), clipped to maxWidth
// columns, and returns the next free column. Zero-width runes ride
// along with the cell before them.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	if maxWidth <= 0 {
		return startX
	}

	x := startX
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		if x-startX >= maxWidth {
			break
		}

		mainc := runes[i]
		i++
		var combc []rune
		for i < len(runes) && r.cachedRuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}

		r.screen.SetContent(x, y, mainc, combc, style)
		if w := r.cachedRuneWidth(mainc); w > 0 {
			x += w
		}
	}
	return x
}
