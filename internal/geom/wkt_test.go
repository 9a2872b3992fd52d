package geom

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestParseExtentWKTPolygon(t *testing.T) {
	ext, err := ParseExtentWKT("POLYGON ((0 0, 10 0, 10 10, 0 10), (2 2, 3 2, 3 3, 2 2))", EPSG4326)
	if err != nil {
		t.Fatal(err)
	}
	poly, ok := ext.Geom.(orb.Polygon)
	if !ok || len(poly) != 2 {
		t.Fatalf("geom = %#v", ext.Geom)
	}
	if len(poly[0]) != 5 || !poly[0].Closed() {
		t.Errorf("outer ring not closed: %v", poly[0])
	}
	if ext.CRS != EPSG4326 {
		t.Errorf("crs = %v", ext.CRS)
	}
}

func TestParseExtentWKTMulti(t *testing.T) {
	ext, err := ParseExtentWKT("SRID=32755;MULTIPOLYGON(((0 0,1 0,1 1,0 0)), ((5 5, 6 5, 6 6, 5 5)))", EPSG4326)
	if err != nil {
		t.Fatal(err)
	}
	mp, ok := ext.Geom.(orb.MultiPolygon)
	if !ok || len(mp) != 2 {
		t.Fatalf("geom = %#v", ext.Geom)
	}
	if ext.CRS.EPSG != 32755 {
		t.Errorf("crs = %v, want EPSG:32755", ext.CRS)
	}
}

func TestParseExtentWKTErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"POINT (1 2)",
		"POLYGON (0 0, 1 1)",
		"POLYGON ((0 0, 1 1))",
		"SRID=abc;POLYGON ((0 0, 1 0, 1 1))",
		"POLYGON ((0 0, 10 0, 10 1O, 5 12, 0 10))",
		"POLYGON ((0 0, 10 0, 10, 0 10))",
	} {
		if _, err := ParseExtentWKT(in, EPSG4326); err == nil {
			t.Errorf("ParseExtentWKT(%q) succeeded", in)
		}
	}
}

func TestParseExtentWKTLowerCase(t *testing.T) {
	ext, err := ParseExtentWKT("polygon((0 0, 2 0, 2 2))", EPSG4326)
	if err != nil {
		t.Fatal(err)
	}
	poly := ext.Geom.(orb.Polygon)
	if len(poly[0]) != 4 || !poly[0].Closed() {
		t.Errorf("ring = %v, want closed with 4 points", poly[0])
	}
}
