package tui

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var previewBg, _ = colorful.Hex(string(panelBg))

// cellColor blends a non-premultiplied pixel over the panel background.
func cellColor(c color.NRGBA) lipgloss.Color {
	fg := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	return lipgloss.Color(previewBg.BlendRgb(fg, float64(c.A)/255).Clamped().Hex())
}
