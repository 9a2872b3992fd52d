package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	headerHeight = 1
	footerHeight = 2
)

// frame is the screen layout shared by View and mouse handling.
type frame struct {
	contentW, contentH int
	mapX, mapY         int
	mapW, mapH         int
}

func (m Model) frame() frame {
	f := frame{
		contentW: max(10, m.width),
		contentH: max(4, m.height-headerHeight-footerHeight),
		mapY:     headerHeight,
	}
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth + 1
	}
	f.mapX = sw
	f.mapW = max(10, f.contentW-sw-1)
	f.mapH = f.contentH
	return f
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	f := m.frame()

	title := " odcview ─ dataset footprints "
	if m.showPreview {
		title = " odcview ─ raster preview "
	}
	header := lipgloss.NewStyle().Width(f.contentW).Render(titleStyle.Render(title))

	var mapView string
	switch {
	case m.showPreview:
		mapView = lipgloss.Place(f.mapW, f.mapH, lipgloss.Center, lipgloss.Center, m.renderPreview())
	case m.showAttrs:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		boxW := min(f.mapW, max(32, colW))
		m.tbl.SetWidth(boxW - 4)
		m.tbl.SetHeight(min(f.mapH-2, 20))
		mapView = lipgloss.Place(f.mapW, f.mapH, lipgloss.Center, lipgloss.Center, boxStyle.Width(boxW).Render(m.tbl.View()))
	case m.pasteMode:
		m.ta.SetWidth(f.mapW)
		m.ta.SetHeight(min(f.mapH, 12))
		mapView = lipgloss.NewStyle().Width(f.mapW).Height(f.mapH).Render(m.ta.View())
	default:
		mapView = lipgloss.NewStyle().Width(f.mapW).Height(f.mapH).Render(m.renderMap(f.mapW, f.mapH))
	}

	popup := ""
	if m.inspectPopup != "" && !m.showAttrs && !m.showPreview {
		box := boxStyle.MaxWidth(max(20, min(56, f.contentW/2))).Render(m.inspectPopup)
		popup = lipgloss.Place(f.contentW, lipgloss.Height(box), lipgloss.Left, lipgloss.Top, box)
	}

	body := mapView
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, f.contentH-2)
		sidebar := lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	status := dimStyle.Render(" " + m.status + " ")
	coords := ""
	if m.hoverHasGeo && !m.showPreview {
		coords = dimStyle.Render(fmt.Sprintf("  lon=%.5f lat=%.5f  ", m.hoverLon, m.hoverLat))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, m.renderHelp())
	spacer := max(0, f.contentW-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacer+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(f.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, popup, body, footer)
	return appStyle.Width(f.contentW).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"0 reset",
		"Tab datasets",
		"Enter select",
		"p paste",
		"a table",
		"i inspect",
		"f fill",
	}
	if m.rgba != nil {
		keys = append(keys, "v preview")
	}
	keys = append(keys, "h help", "q quit")
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
