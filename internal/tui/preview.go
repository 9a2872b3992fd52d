package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"odcview/internal/display"
)

// refreshPreview rescales the raster to a w x h cell area. Each cell shows
// two stacked pixels, so the thumbnail is w x 2h pixels.
func (m *Model) refreshPreview(w, h int) {
	if m.rgba == nil || w <= 0 || h <= 0 {
		return
	}
	t, err := display.Thumbnail(m.rgba, w, h*2)
	if err != nil {
		m.thumb = nil
		m.status = "preview: " + err.Error()
		return
	}
	m.thumb = t
}

// renderPreview draws the thumbnail with upper half blocks: foreground is
// the top pixel, background the bottom one.
func (m Model) renderPreview() string {
	if m.thumb == nil {
		return dimStyle.Render("no preview")
	}
	b := m.thumb.Bounds()
	rows := make([]string, 0, (b.Dy()+1)/2)
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		sb.Reset()
		for x := b.Min.X; x < b.Max.X; x++ {
			st := lipgloss.NewStyle().Foreground(cellColor(m.thumb.NRGBAAt(x, y)))
			if y+1 < b.Max.Y {
				st = st.Background(cellColor(m.thumb.NRGBAAt(x, y+1)))
			}
			sb.WriteString(st.Render("▀"))
		}
		rows = append(rows, sb.String())
	}
	return strings.Join(rows, "\n")
}
