package geom

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Doc is the spatial part of a dataset metadata document. Both the eo3
// layout (top-level "crs" and "geometry") and the older
// "grid_spatial.projection" layout are understood.
type Doc struct {
	ID      string
	Product string
	CRS     CRS
	Geom    orb.Geometry
}

func (d *Doc) Extent() Extent    { return Extent{Geom: d.Geom, CRS: d.CRS} }
func (d *Doc) DatasetID() string { return d.ID }

type xy struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type rawDoc struct {
	ID      string          `json:"id"`
	Product json.RawMessage `json:"product"`
	CRS     string          `json:"crs"`
	Geom    json.RawMessage `json:"geometry"`
	Grid    struct {
		Projection struct {
			SpatialReference string          `json:"spatial_reference"`
			ValidData        json.RawMessage `json:"valid_data"`
			GeoRefPoints     map[string]xy   `json:"geo_ref_points"`
		} `json:"projection"`
	} `json:"grid_spatial"`
}

// ParseDoc decodes one dataset document.
func ParseDoc(data []byte) (*Doc, error) {
	var raw rawDoc
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	d := &Doc{ID: raw.ID, Product: productName(raw.Product)}

	proj := raw.Grid.Projection
	crs := raw.CRS
	if crs == "" {
		crs = proj.SpatialReference
	}
	if crs == "" {
		return nil, fmt.Errorf("dataset %s: no crs", d.ID)
	}
	c, err := ParseCRS(crs)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", d.ID, err)
	}
	d.CRS = c

	for _, g := range []json.RawMessage{raw.Geom, proj.ValidData} {
		if len(g) == 0 || bytes.Equal(g, []byte("null")) {
			continue
		}
		geo, err := geojson.UnmarshalGeometry(g)
		if err != nil {
			return nil, fmt.Errorf("dataset %s: geometry: %w", d.ID, err)
		}
		d.Geom = geo.Geometry()
		return d, nil
	}

	pts := proj.GeoRefPoints
	corners := []string{"ul", "ur", "lr", "ll"}
	ring := make(orb.Ring, 0, 5)
	for _, k := range corners {
		p, ok := pts[k]
		if !ok {
			return nil, fmt.Errorf("dataset %s: no geometry and geo_ref_points lacks %q", d.ID, k)
		}
		ring = append(ring, orb.Point{p.X, p.Y})
	}
	d.Geom = orb.Polygon{append(ring, ring[0])}
	return d, nil
}

// product is either a bare name or {"name": ...}
func productName(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var p struct {
		Name string `json:"name"`
	}
	if json.Unmarshal(raw, &p) == nil {
		return p.Name
	}
	return ""
}

// LoadDocs reads a file holding one dataset document, a JSON array of
// them, or GeoJSON footprints (as written by ShowDatasets).
func LoadDocs(path string) ([]*Doc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty dataset file")
	}
	if data[0] != '[' {
		var head struct {
			Type string `json:"type"`
		}
		if json.Unmarshal(data, &head) == nil && head.Type != "" {
			fc, err := ParseCollection(data)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			return DocsFromCollection(fc)
		}
		d, err := ParseDoc(data)
		if err != nil {
			return nil, err
		}
		return []*Doc{d}, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	docs := make([]*Doc, 0, len(items))
	for i, it := range items {
		d, err := ParseDoc(it)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", path, i, err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// Datasets widens docs to the Dataset interface.
func Datasets(docs []*Doc) []Dataset {
	out := make([]Dataset, len(docs))
	for i, d := range docs {
		out[i] = d
	}
	return out
}
