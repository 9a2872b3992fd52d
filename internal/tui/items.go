package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/mattn/go-runewidth"

	"odcview/internal/geom"
)

const sidebarWidth = 28

type datasetItem struct {
	title, desc string
	index       int
}

func (d datasetItem) Title() string       { return d.title }
func (d datasetItem) Description() string { return d.desc }
func (d datasetItem) FilterValue() string { return d.title }

func datasetStatus(n int) string {
	if n == 1 {
		return "1 dataset"
	}
	return fmt.Sprintf("%d datasets", n)
}

// addDataset reprojects d to lon/lat and appends its footprint.
func (m *Model) addDataset(d *geom.Doc) error {
	fc, err := geom.ShowDatasets([]geom.Dataset{d})
	if err != nil {
		return err
	}
	data, err := geom.FromCollection(fc)
	if err != nil {
		return fmt.Errorf("dataset %s: %w", d.ID, err)
	}
	if len(m.footprints) == 0 {
		m.bbox = data.BBox
	} else {
		m.bbox.Extend([2]float64{data.BBox.MinX, data.BBox.MinY})
		m.bbox.Extend([2]float64{data.BBox.MaxX, data.BBox.MaxY})
	}
	m.footprints = append(m.footprints, data.Polygons)
	m.docs = append(m.docs, d)
	m.refreshItems()
	return nil
}

func (m *Model) refreshItems() {
	items := make([]list.Item, 0, len(m.docs))
	w := sidebarWidth - 4
	for i, d := range m.docs {
		id := d.ID
		if id == "" {
			id = fmt.Sprintf("dataset %d", i+1)
		}
		desc := d.CRS.String()
		if d.Product != "" {
			desc = d.Product + " " + desc
		}
		items = append(items, datasetItem{
			title: runewidth.Truncate(id, w, "…"),
			desc:  runewidth.Truncate(desc, w, "…"),
			index: i,
		})
	}
	m.l.SetItems(items)
}

// selectDataset highlights dataset i and reports its lon/lat bounds.
func (m *Model) selectDataset(i int) {
	if i < 0 || i >= len(m.docs) {
		return
	}
	m.selected = i
	var bb geom.BBox
	first := true
	for _, poly := range m.footprints[i] {
		for _, ring := range poly {
			for _, p := range ring {
				if first {
					bb = geom.BBox{MinX: p[0], MinY: p[1], MaxX: p[0], MaxY: p[1]}
					first = false
				} else {
					bb.Extend(p)
				}
			}
		}
	}
	m.status = fmt.Sprintf("%s  [%.4f, %.4f, %.4f, %.4f]", m.docs[i].ID, bb.MinX, bb.MinY, bb.MaxX, bb.MaxY)
}
