package tui

type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

// dot bits of a braille cell indexed by [column][row]
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= brailleBits[mx%2][my%4]
}

// fillSpan sets micro-pixels x0..x1 inclusive on micro row my.
func (b *brailleBuf) fillSpan(x0, x1, my int) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	x1 = min(x1, b.w*2-1)
	for x := max(0, x0); x <= x1; x++ {
		b.setPixel(x, my)
	}
}

// ring draws a closed ring of micro-grid vertices.
func (b *brailleBuf) ring(r [][2]int) {
	for i := range r {
		a, c := r[i], r[(i+1)%len(r)]
		b.drawLineMicro(a[0], a[1], c[0], c[1])
	}
}

// cell returns the glyph for cell (x, y), a blank when unset.
func (b *brailleBuf) cell(x, y int) rune {
	if b.m[y][x] == 0 {
		return ' '
	}
	return rune(0x2800 + int(b.m[y][x]))
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}
