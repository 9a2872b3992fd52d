package geom

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FromCollection flattens a feature collection into render Data
// (points, lines, polygons) and computes the bbox over every vertex.
func FromCollection(fc *geojson.FeatureCollection) (Data, error) {
	var d Data
	first := true
	addPt := func(pt [2]float64) {
		if first {
			d.BBox = BBox{MinX: pt[0], MinY: pt[1], MaxX: pt[0], MaxY: pt[1]}
			first = false
		} else {
			d.BBox.Extend(pt)
		}
	}
	ring := func(ls []orb.Point) [][2]float64 {
		out := make([][2]float64, len(ls))
		for i, p := range ls {
			out[i] = p
			addPt(p)
		}
		return out
	}
	addPoly := func(p orb.Polygon) {
		poly := make([][][2]float64, 0, len(p))
		for _, r := range p {
			poly = append(poly, ring(r))
		}
		d.Polygons = append(d.Polygons, poly)
	}
	var walkGeom func(g orb.Geometry)
	walkGeom = func(g orb.Geometry) {
		switch g := g.(type) {
		case orb.Point:
			addPt(g)
			d.Points = append(d.Points, g)
		case orb.MultiPoint:
			for _, p := range g {
				walkGeom(p)
			}
		case orb.LineString:
			d.Lines = append(d.Lines, ring(g))
		case orb.MultiLineString:
			for _, ls := range g {
				d.Lines = append(d.Lines, ring(ls))
			}
		case orb.Ring:
			addPoly(orb.Polygon{g})
		case orb.Polygon:
			addPoly(g)
		case orb.MultiPolygon:
			for _, p := range g {
				addPoly(p)
			}
		case orb.Bound:
			addPoly(g.ToPolygon())
		case orb.Collection:
			for _, c := range g {
				walkGeom(c)
			}
		}
	}
	for _, f := range fc.Features {
		if f != nil && f.Geometry != nil {
			walkGeom(f.Geometry)
		}
	}
	if d.Empty() {
		return Data{}, errors.New("no geometries found")
	}
	return d, nil
}

// ParseCollection reads GeoJSON (FeatureCollection, Feature or a bare
// geometry) into a feature collection.
func ParseCollection(data []byte) (*geojson.FeatureCollection, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case "":
		return nil, errors.New("invalid geojson: missing type")
	case "FeatureCollection":
		return geojson.UnmarshalFeatureCollection(data)
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, err
		}
		return geojson.NewFeatureCollection().Append(f), nil
	}
	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, err
	}
	return geojson.NewFeatureCollection().Append(geojson.NewFeature(g.Geometry())), nil
}

// DocsFromCollection turns the Polygon and MultiPolygon features of fc into
// EPSG:4326 dataset documents, so ShowDatasets output can be read back. The
// "id" and "product" properties are kept when present.
func DocsFromCollection(fc *geojson.FeatureCollection) ([]*Doc, error) {
	var docs []*Doc
	for i, f := range fc.Features {
		if f == nil {
			continue
		}
		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			continue
		}
		id := f.Properties.MustString("id", "")
		if id == "" {
			id = fmt.Sprintf("feature-%d", i+1)
		}
		docs = append(docs, &Doc{
			ID:      id,
			Product: f.Properties.MustString("product", ""),
			CRS:     EPSG4326,
			Geom:    f.Geometry,
		})
	}
	if len(docs) == 0 {
		return nil, errors.New("no polygon features found")
	}
	return docs, nil
}
