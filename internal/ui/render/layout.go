package render

import "github.com/notare-dev/notare/internal/state"

type layoutMetrics struct {
	listWidth    int
	previewStart int
	previewWidth int
	showPreview  bool

	contentTop    int // first row below the header
	contentBottom int // exclusive; log pane and status live below
	logTop        int
	logRows       int
	statusRow     int
}

const (
	listWidthRatio  = 0.30
	minListWidth    = 16
	minPreviewWidth = 20
	logPaneRatio    = 0.30
	minLogRows      = 3
)

// computeLayout splits the screen into the list column, the preview
// column, an optional log pane, and the status row. On narrow screens
// the preview gives way to the list.
func (r *Renderer) computeLayout(w, h int, s *state.SessionState) layoutMetrics {
	if w < 0 {
		w = 0
	}
	if h < 2 {
		h = 2
	}

	m := layoutMetrics{
		contentTop: 1,
		statusRow:  h - 1,
	}
	m.contentBottom = m.statusRow

	if s.ShowLogs {
		rows := int(float64(h-2)*logPaneRatio + 0.5)
		if rows < minLogRows {
			rows = minLogRows
		}
		if rows > h-2-minLogRows {
			rows = h - 2 - minLogRows
		}
		if rows > 0 {
			m.logRows = rows
			m.contentBottom = m.statusRow - rows
			m.logTop = m.contentBottom
		}
	}

	list := int(float64(w)*listWidthRatio + 0.5)
	if list < minListWidth {
		list = minListWidth
	}
	if list > w {
		list = w
	}

	// one separator column between the panes
	if w-list-1 >= minPreviewWidth {
		m.listWidth = list
		m.previewStart = list + 1
		m.previewWidth = w - m.previewStart
		m.showPreview = true
	} else {
		m.listWidth = w
		m.previewStart = w
	}

	return m
}
