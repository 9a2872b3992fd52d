package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"
	"github.com/mattn/go-runewidth"

	"odcview/internal/geom"
)

// refreshAttrs rebuilds the dataset table.
func (m *Model) refreshAttrs() {
	if len(m.docs) == 0 {
		m.showAttrs = false
		m.status = "no datasets loaded"
		return
	}
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "id", Width: 24},
		{Title: "product", Width: 14},
		{Title: "crs", Width: 11},
		{Title: "bounds (lon/lat)", Width: 36},
	}
	rows := make([]table.Row, 0, len(m.docs))
	for i, d := range m.docs {
		b := d.Extent().Bound()
		if ll, err := d.Extent().ToCRS(geom.EPSG4326); err == nil {
			b = ll.Bound()
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			runewidth.Truncate(d.ID, cols[1].Width, "…"),
			runewidth.Truncate(d.Product, cols[2].Width, "…"),
			d.CRS.String(),
			fmt.Sprintf("%.3f %.3f %.3f %.3f", b.Min[0], b.Min[1], b.Max[0], b.Max[1]),
		})
	}
	// clear rows first so the table never sees rows wider than its columns
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
}
