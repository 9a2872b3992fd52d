package geom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// ParseExtentWKT parses a POLYGON or MULTIPOLYGON footprint. An EWKT
// "SRID=<code>;" prefix overrides crs. Open rings are closed.
func ParseExtentWKT(s string, crs CRS) (Extent, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Extent{}, errors.New("empty wkt")
	}
	if head, rest, ok := strings.Cut(s, ";"); ok && strings.HasPrefix(strings.ToUpper(head), "SRID=") {
		c, err := ParseCRS(head[len("SRID="):])
		if err != nil {
			return Extent{}, err
		}
		crs, s = c, strings.TrimSpace(rest)
	}
	g, err := wkt.Unmarshal(strings.ToUpper(s))
	if err != nil {
		return Extent{}, fmt.Errorf("wkt: %w", err)
	}
	switch g := g.(type) {
	case orb.Polygon:
		poly, err := closeRings(g)
		if err != nil {
			return Extent{}, err
		}
		return Extent{Geom: poly, CRS: crs}, nil
	case orb.MultiPolygon:
		if len(g) == 0 {
			return Extent{}, errors.New("wkt multipolygon: empty")
		}
		mp := make(orb.MultiPolygon, 0, len(g))
		for _, p := range g {
			poly, err := closeRings(p)
			if err != nil {
				return Extent{}, err
			}
			mp = append(mp, poly)
		}
		return Extent{Geom: mp, CRS: crs}, nil
	}
	return Extent{}, fmt.Errorf("unsupported wkt type %s", g.GeoJSONType())
}

// closeRings checks every ring has at least 3 coordinates and closes
// open ones.
func closeRings(p orb.Polygon) (orb.Polygon, error) {
	if len(p) == 0 {
		return nil, errors.New("wkt polygon: empty")
	}
	out := make(orb.Polygon, 0, len(p))
	for _, r := range p {
		if len(r) < 3 {
			return nil, errors.New("wkt polygon: ring needs at least 3 coordinates")
		}
		if !r.Closed() {
			r = append(r, r[0])
		}
		out = append(out, r)
	}
	return out, nil
}
