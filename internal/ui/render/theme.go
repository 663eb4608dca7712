package render

import (
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/notare-dev/notare/internal/config"
)

// Palette is the set of colors one theme paints the interface with.
type Palette struct {
	Name      string
	Accent    tcell.Color // document titles, panel titles
	Selection tcell.Color // selected row
	Header    tcell.Color // folders, top bar
	Dim       tcell.Color // tags, log lines, secondary text
	Bold      tcell.Color // destructive prompts
}

// palettes are the built-in themes 't' cycles through. The first one is
// the default.
var palettes = []Palette{
	{
		Name:      "lagoon",
		Accent:    tcell.NewRGBColor(137, 220, 235),
		Selection: tcell.NewRGBColor(187, 154, 247),
		Header:    tcell.NewRGBColor(137, 180, 250),
		Dim:       tcell.NewRGBColor(108, 112, 134),
		Bold:      tcell.NewRGBColor(243, 139, 168),
	},
	{
		Name:      "rose",
		Accent:    tcell.NewRGBColor(235, 188, 186),
		Selection: tcell.NewRGBColor(196, 167, 231),
		Header:    tcell.NewRGBColor(156, 207, 216),
		Dim:       tcell.NewRGBColor(110, 106, 134),
		Bold:      tcell.NewRGBColor(235, 111, 146),
	},
	{
		Name:      "grove",
		Accent:    tcell.NewRGBColor(142, 192, 124),
		Selection: tcell.NewRGBColor(211, 134, 155),
		Header:    tcell.NewRGBColor(131, 165, 152),
		Dim:       tcell.NewRGBColor(146, 131, 116),
		Bold:      tcell.NewRGBColor(251, 73, 52),
	},
}

// PaletteCount is the number of built-in themes.
func PaletteCount() int {
	return len(palettes)
}

// PaletteFor returns the built-in palette at index, with any configured
// color overrides applied on top. Indexes wrap so callers can increment
// forever.
func PaletteFor(index int, overrides config.Theme) Palette {
	if index < 0 {
		index = 0
	}
	p := palettes[index%len(palettes)]
	p.Accent = parseHex(overrides.Accent, p.Accent)
	p.Selection = parseHex(overrides.Selection, p.Selection)
	p.Header = parseHex(overrides.Header, p.Header)
	p.Dim = parseHex(overrides.Dim, p.Dim)
	p.Bold = parseHex(overrides.Bold, p.Bold)
	return p
}

// parseHex reads a "#rrggbb" string. Anything else keeps the fallback.
func parseHex(s string, fallback tcell.Color) tcell.Color {
	if len(s) != 7 || s[0] != '#' {
		return fallback
	}
	r, err1 := strconv.ParseUint(s[1:3], 16, 8)
	g, err2 := strconv.ParseUint(s[3:5], 16, 8)
	b, err3 := strconv.ParseUint(s[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return fallback
	}
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
