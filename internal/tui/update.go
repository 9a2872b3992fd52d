package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"odcview/internal/geom"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		f := m.frame()
		m.mapW, m.mapH = f.mapW, f.mapH
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, f.contentH-2)
		}
		m.refreshPreview(f.mapW, f.mapH)
	case tea.KeyMsg:
		// filtering in the sidebar owns the keyboard
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if m.showAttrs {
			switch msg.String() {
			case "esc", "a":
				m.showAttrs = false
				return m, nil
			case "enter":
				m.selectDataset(m.tbl.Cursor())
				m.showAttrs = false
				return m, nil
			case "ctrl+c", "q":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "f":
			m.showFill = !m.showFill
			m.status = fmt.Sprintf("fill: %v", m.showFill)
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "0":
			m.zoom = 1.0
			m.offsetX, m.offsetY = 0, 0
			m.status = "view reset"
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.l.SetSize(sidebarWidth-2, m.frame().contentH-2)
			}
			f := m.frame()
			m.mapW, m.mapH = f.mapW, f.mapH
			m.refreshPreview(f.mapW, f.mapH)
			return m, nil
		case "p":
			m.pasteMode = true
			m.showPreview = false
			m.ta.SetValue("")
			m.ta.Focus()
			m.status = "paste mode"
			return m, nil
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = true
			m.refreshAttrs()
		case "v":
			if m.rgba != nil {
				m.showPreview = !m.showPreview
			}
		case "esc":
			m.inspectPopup = ""
		case "i":
			m.inspect()
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(datasetItem); ok {
					m.selectDataset(it.index)
				}
				return m, nil
			}
		case "up":
			m.offsetY--
		case "down":
			m.offsetY++
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	case tea.MouseMsg:
		m.hover(msg.X, msg.Y)
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updatePaste handles keys while the WKT textarea is focused. Enter adds
// the pasted polygon as a new footprint.
func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = datasetStatus(len(m.docs))
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		ext, err := geom.ParseExtentWKT(w, geom.EPSG4326)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		m.pasted++
		d := &geom.Doc{ID: fmt.Sprintf("pasted-%d", m.pasted), CRS: ext.CRS, Geom: ext.Geom}
		if err := m.addDataset(d); err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		m.selectDataset(len(m.docs) - 1)
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// inspect describes the selected dataset, or the one owning the vertex
// closest to the viewport centre.
func (m *Model) inspect() {
	w, h := max(m.mapW, 8), max(m.mapH, 4)
	_, _, ll, ds, ok := m.nearestVertex(w, h*2, w, h)
	if !ok {
		m.inspectPopup = "no footprint nearby"
		m.status = m.inspectPopup
		return
	}
	if m.selected >= 0 {
		ds = m.selected
	}
	d := m.docs[ds]
	b := d.Extent().Bound()
	meta := []string{
		"id: " + d.ID,
		"product: " + d.Product,
		"crs: " + d.CRS.String(),
		fmt.Sprintf("bounds: [%.2f, %.2f, %.2f, %.2f]", b.Min[0], b.Min[1], b.Max[0], b.Max[1]),
		fmt.Sprintf("polygons: %d", len(m.footprints[ds])),
		fmt.Sprintf("nearest vertex: lon=%.6f lat=%.6f", ll[0], ll[1]),
	}
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect (esc closes)"
}

// hover tracks the mouse over the map and snaps the marker to the
// nearest footprint vertex.
func (m *Model) hover(x, y int) {
	f := m.frame()
	if m.showPreview || x < f.mapX || x >= f.mapX+f.mapW || y < f.mapY || y >= f.mapY+f.mapH {
		m.hovering = false
		m.hoverHasGeo = false
		return
	}
	cx, cy := x-f.mapX, y-f.mapY
	m.hoverLon, m.hoverLat, m.hoverHasGeo = m.cellToLonLat(cx, cy, f.mapW, f.mapH)
	vx, vy, _, _, ok := m.nearestVertex(cx*2, cy*4, f.mapW, f.mapH)
	m.hovering = ok
	m.hoverMicX, m.hoverMicY = vx, vy
}
