package geom

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// Extent is a footprint geometry (Polygon or MultiPolygon) in a CRS.
type Extent struct {
	Geom orb.Geometry
	CRS  CRS
}

// Dataset is anything with a spatial footprint.
type Dataset interface {
	Extent() Extent
}

// ToCRS reprojects e into dst. Vertices are projected one by one through
// WGS84 longitude/latitude; edges are not densified.
func (e Extent) ToCRS(dst CRS) (Extent, error) {
	if e.Geom == nil {
		return Extent{}, fmt.Errorf("geom: empty extent")
	}
	if e.CRS == dst {
		return Extent{Geom: orb.Clone(e.Geom), CRS: dst}, nil
	}
	toLL, err := e.CRS.toWGS84()
	if err != nil {
		return Extent{}, err
	}
	fromLL, err := dst.fromWGS84()
	if err != nil {
		return Extent{}, err
	}
	proj := func(p orb.Point) orb.Point { return fromLL(toLL(p)) }
	return Extent{Geom: project.Geometry(orb.Clone(e.Geom), proj), CRS: dst}, nil
}

// Bound returns the bounding box of the extent in its own CRS.
func (e Extent) Bound() orb.Bound {
	if e.Geom == nil {
		return orb.Bound{}
	}
	return e.Geom.Bound()
}

// BoxExtent builds a rectangular extent.
func BoxExtent(minX, minY, maxX, maxY float64, crs CRS) Extent {
	ring := orb.Ring{
		{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY},
	}
	return Extent{Geom: orb.Polygon{ring}, CRS: crs}
}
