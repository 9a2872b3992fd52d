package tui

import (
	"sort"
	"strings"
)

// cellToLonLat converts a map cell coordinate back to lon/lat using bbox, zoom, and pan.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	if !m.hasExtent() || w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	lon := m.bbox.MinX + nx*(m.bbox.MaxX-m.bbox.MinX)
	lat := m.bbox.MinY + ny*(m.bbox.MaxY-m.bbox.MinY)
	return lon, lat, true
}

func (m Model) hasExtent() bool {
	return m.bbox.MaxX > m.bbox.MinX && m.bbox.MaxY > m.bbox.MinY
}

// renderMap draws every footprint as braille outlines (and fills when
// enabled). The selected dataset is drawn in the accent colour on top.
func (m Model) renderMap(w, h int) string {
	base := newBrailleBuf(w, h)
	sel := newBrailleBuf(w, h)
	for i, polys := range m.footprints {
		buf := base
		if i == m.selected {
			buf = sel
		}
		for _, poly := range polys {
			m.drawPolygon(buf, poly, w, h)
		}
	}

	hx, hy := -1, -1
	if m.hovering {
		hx, hy = m.hoverMicX/2, m.hoverMicY/4
	}
	lines := make([]string, h)
	var sb strings.Builder
	for y := 0; y < h; y++ {
		sb.Reset()
		for x := 0; x < w; x++ {
			switch {
			case x == hx && y == hy:
				sb.WriteString(hoverStyle.Render("◯"))
			case sel.m[y][x] != 0:
				sel.m[y][x] |= base.m[y][x]
				sb.WriteString(highlightStyle.Render(string(sel.cell(x, y))))
			default:
				sb.WriteRune(base.cell(x, y))
			}
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// drawPolygon fills the outer ring with an even-odd scanline (holes are
// outlined only) and then draws every ring edge.
func (m Model) drawPolygon(buf *brailleBuf, poly polygon, w, h int) {
	var rings [][][2]int
	for _, ring := range poly {
		var sm [][2]int
		for _, p := range ring {
			mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
			if !ok {
				continue
			}
			sm = append(sm, [2]int{mx, my})
		}
		if len(sm) >= 3 {
			rings = append(rings, sm)
		}
	}
	if len(rings) == 0 {
		return
	}
	if m.showFill {
		outer := rings[0]
		for yMic := 0; yMic < h*4; yMic++ {
			var xs []int
			for i := range outer {
				a, b := outer[i], outer[(i+1)%len(outer)]
				if a[1] == b[1] {
					continue
				}
				if (yMic >= a[1] && yMic < b[1]) || (yMic >= b[1] && yMic < a[1]) {
					t := float64(yMic-a[1]) / float64(b[1]-a[1])
					xs = append(xs, int(float64(a[0])+t*float64(b[0]-a[0])))
				}
			}
			sort.Ints(xs)
			for i := 0; i+1 < len(xs); i += 2 {
				buf.fillSpan(xs[i], xs[i+1], yMic)
			}
		}
	}
	for _, r := range rings {
		buf.ring(r)
	}
}

// screenXYMicro maps lon/lat into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(lon, lat float64, w, h int) (int, int, bool) {
	if !m.hasExtent() {
		return 0, 0, false
	}
	nx := (lon - m.bbox.MinX) / (m.bbox.MaxX - m.bbox.MinX)
	ny := (lat - m.bbox.MinY) / (m.bbox.MaxY - m.bbox.MinY)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	sx := int(zx*float64(w*2-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(h*4-1)) + m.offsetY*4
	return sx, sy, true
}

// nearestVertex returns the footprint vertex closest to micro-grid point
// (mx, my), with the dataset it belongs to.
func (m Model) nearestVertex(mx, my, w, h int) (vx, vy int, lonlat [2]float64, ds int, ok bool) {
	best := -1
	for i, polys := range m.footprints {
		for _, poly := range polys {
			for _, ring := range poly {
				for _, p := range ring {
					sx, sy, in := m.screenXYMicro(p[0], p[1], w, h)
					if !in {
						continue
					}
					dx, dy := sx-mx, sy-my
					if d := dx*dx + dy*dy; best < 0 || d < best {
						best = d
						vx, vy, lonlat, ds = sx, sy, p, i
					}
				}
			}
		}
	}
	return vx, vy, lonlat, ds, best >= 0
}
