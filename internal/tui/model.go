package tui

import (
	"image"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"odcview/internal/geom"
	"odcview/internal/xr"
)

// polygon is a list of rings, outer first, in lon/lat.
type polygon = [][][2]float64

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// Dataset sidebar
	l        list.Model
	docs     []*geom.Doc
	selected int // index into docs, -1 for none

	// Footprints in EPSG:4326, one polygon set per dataset
	footprints [][]polygon
	bbox       geom.BBox

	// last rendered map size (for inspect)
	mapW int
	mapH int

	// paste mode
	pasteMode bool
	ta        textarea.Model
	pasted    int

	// polygon interiors
	showFill bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// dataset table
	showAttrs bool
	tbl       table.Model

	// raster preview
	rgba        *xr.DataArray
	showPreview bool
	thumb       *image.NRGBA
}

func New() Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		status:      "odcview ready",
		selected:    -1,
		showFill:    true,
	}
	d := list.NewDefaultDelegate()
	d.ShowDescription = true
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Datasets"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste a footprint as WKT (POLYGON or MULTIPOLYGON, EPSG:4326 unless SRID=...;). Enter adds it; Esc cancels."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	return m
}

// NewWithDatasets opens the viewer on the footprints of docs.
func NewWithDatasets(docs []*geom.Doc) (Model, error) {
	m := New()
	for _, d := range docs {
		if err := m.addDataset(d); err != nil {
			return Model{}, err
		}
	}
	m.status = datasetStatus(len(m.docs))
	return m, nil
}

// NewWithImage opens the viewer in preview mode on an RGBA array
// (a display.ToRGBA result).
func NewWithImage(rgba *xr.DataArray) Model {
	m := New()
	m.rgba = rgba
	m.showPreview = true
	m.status = "preview " + rgba.String()
	return m
}

func (m Model) Init() tea.Cmd { return nil }
