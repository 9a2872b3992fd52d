package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"odcview/internal/geom"
	"odcview/internal/xr"
)

func boxDoc(id string, minX, minY, maxX, maxY float64) *geom.Doc {
	e := geom.BoxExtent(minX, minY, maxX, maxY, geom.EPSG4326)
	return &geom.Doc{ID: id, Product: "ls8", CRS: e.CRS, Geom: e.Geom}
}

func sized(t *testing.T, m Model, w, h int) Model {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return next.(Model)
}

func key(m Model, k tea.KeyMsg) Model {
	next, _ := m.Update(k)
	return next.(Model)
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestNewWithDatasets(t *testing.T) {
	m, err := NewWithDatasets([]*geom.Doc{
		boxDoc("a", 140, -36, 141, -35),
		boxDoc("b", 142, -34, 143, -33),
	})
	if err != nil {
		t.Fatal(err)
	}
	if m.status != "2 datasets" {
		t.Errorf("status = %q", m.status)
	}
	if len(m.footprints) != 2 || len(m.docs) != 2 {
		t.Fatalf("footprints = %d, docs = %d", len(m.footprints), len(m.docs))
	}
	want := geom.BBox{MinX: 140, MinY: -36, MaxX: 143, MaxY: -33}
	if m.bbox != want {
		t.Errorf("bbox = %+v, want %+v", m.bbox, want)
	}
	if n := len(m.l.Items()); n != 2 {
		t.Errorf("sidebar items = %d, want 2", n)
	}
}

func TestNewWithDatasetsUnsupportedCRS(t *testing.T) {
	d := boxDoc("x", 0, 0, 1, 1)
	d.CRS = geom.CRS{EPSG: 2193}
	if _, err := NewWithDatasets([]*geom.Doc{d}); err == nil {
		t.Fatal("expected error for unsupported crs")
	}
}

func TestDatasetStatus(t *testing.T) {
	if s := datasetStatus(1); s != "1 dataset" {
		t.Errorf("datasetStatus(1) = %q", s)
	}
	if s := datasetStatus(0); s != "0 datasets" {
		t.Errorf("datasetStatus(0) = %q", s)
	}
}

func TestRenderMapDrawsFootprint(t *testing.T) {
	m, err := NewWithDatasets([]*geom.Doc{boxDoc("a", 0, 0, 10, 10), boxDoc("b", 5, 5, 20, 20)})
	if err != nil {
		t.Fatal(err)
	}
	m.selectDataset(1)
	out := m.renderMap(30, 10)
	if got := len(strings.Split(out, "\n")); got != 10 {
		t.Errorf("rendered %d rows, want 10", got)
	}
	dots := 0
	for _, r := range out {
		if r > 0x2800 && r <= 0x28FF {
			dots++
		}
	}
	if dots == 0 {
		t.Error("no braille cells rendered")
	}
}

func TestSelectDataset(t *testing.T) {
	m, err := NewWithDatasets([]*geom.Doc{boxDoc("first", 1, 2, 3, 4)})
	if err != nil {
		t.Fatal(err)
	}
	m.selectDataset(5)
	if m.selected != -1 {
		t.Errorf("out of range selection changed selected to %d", m.selected)
	}
	m.selectDataset(0)
	if m.selected != 0 {
		t.Fatalf("selected = %d", m.selected)
	}
	if !strings.HasPrefix(m.status, "first") || !strings.Contains(m.status, "1.0000, 2.0000, 3.0000, 4.0000") {
		t.Errorf("status = %q", m.status)
	}
}

func TestPasteAddsFootprint(t *testing.T) {
	m := sized(t, New(), 80, 24)
	m = key(m, runes("p"))
	if !m.pasteMode {
		t.Fatal("p did not enter paste mode")
	}
	m.ta.SetValue("POLYGON((0 0, 4 0, 4 2, 0 2, 0 0))")
	m = key(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.pasteMode {
		t.Error("still in paste mode after enter")
	}
	if len(m.docs) != 1 || m.docs[0].ID != "pasted-1" {
		t.Fatalf("docs = %+v", m.docs)
	}
	if m.selected != 0 {
		t.Errorf("selected = %d, want 0", m.selected)
	}
	if m.bbox.MaxX != 4 || m.bbox.MaxY != 2 {
		t.Errorf("bbox = %+v", m.bbox)
	}
}

func TestPasteRejectsBadWKT(t *testing.T) {
	m := key(sized(t, New(), 80, 24), runes("p"))
	m.ta.SetValue("LINESTRING(0 0, 1 1)")
	m = key(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.pasteMode {
		t.Error("left paste mode on error")
	}
	if !strings.HasPrefix(m.status, "wkt error") {
		t.Errorf("status = %q", m.status)
	}
}

func TestAttrsTable(t *testing.T) {
	m, err := NewWithDatasets([]*geom.Doc{boxDoc("a", 0, 0, 1, 1), boxDoc("b", 1, 1, 2, 2)})
	if err != nil {
		t.Fatal(err)
	}
	m = key(m, runes("a"))
	if !m.showAttrs {
		t.Fatal("a did not open the table")
	}
	rows := m.tbl.Rows()
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[1][1] != "b" || rows[1][3] != "EPSG:4326" {
		t.Errorf("row = %v", rows[1])
	}
	m = key(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showAttrs {
		t.Error("esc did not close the table")
	}
}

func TestAttrsTableEmpty(t *testing.T) {
	m := key(New(), runes("a"))
	if m.showAttrs {
		t.Error("table shown with no datasets")
	}
}

func TestZoomKeys(t *testing.T) {
	m := New()
	m = key(m, runes("+"))
	if m.zoom <= 1 {
		t.Errorf("zoom = %v after +", m.zoom)
	}
	m = key(m, runes("0"))
	if m.zoom != 1 || m.offsetX != 0 || m.offsetY != 0 {
		t.Errorf("reset left zoom=%v offset=(%d,%d)", m.zoom, m.offsetX, m.offsetY)
	}
}

func TestCellToLonLat(t *testing.T) {
	m, err := NewWithDatasets([]*geom.Doc{boxDoc("a", 0, 0, 10, 10)})
	if err != nil {
		t.Fatal(err)
	}
	lon, lat, ok := m.cellToLonLat(0, 10, 11, 11)
	if !ok || lon != 0 || lat != 0 {
		t.Errorf("bottom-left = (%v, %v, %v)", lon, lat, ok)
	}
	lon, lat, _ = m.cellToLonLat(10, 0, 11, 11)
	if lon != 10 || lat != 10 {
		t.Errorf("top-right = (%v, %v)", lon, lat)
	}
	if _, _, ok := New().cellToLonLat(1, 1, 10, 10); ok {
		t.Error("empty model reported a location")
	}
}

func TestPreview(t *testing.T) {
	a, err := xr.New(xr.Uint8, []string{"y", "x", "band"}, []int{4, 8, 4})
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			for c := 0; c < 4; c++ {
				if err := a.Set(255, y, x, c); err != nil {
					t.Fatal(err)
				}
			}
		}
	}
	m := sized(t, NewWithImage(a), 40, 12)
	if m.thumb == nil {
		t.Fatalf("no thumbnail, status %q", m.status)
	}
	b := m.thumb.Bounds()
	if b.Dx() <= b.Dy() {
		t.Errorf("thumbnail %v lost the 2:1 aspect", b)
	}
	if !strings.Contains(m.renderPreview(), "▀") {
		t.Error("preview has no half blocks")
	}
	m = key(m, runes("v"))
	if m.showPreview {
		t.Error("v did not toggle preview off")
	}
}
