package geom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

var ErrUnsupportedCRS = errors.New("geom: unsupported crs")

// CRS identifies a coordinate reference system by EPSG code.
type CRS struct {
	EPSG int
}

var (
	EPSG4326 = CRS{EPSG: 4326} // WGS84 longitude/latitude
	EPSG3857 = CRS{EPSG: 3857} // web mercator
)

// ParseCRS accepts "EPSG:32655", "epsg:4326" or a bare code.
func ParseCRS(s string) (CRS, error) {
	code := strings.TrimSpace(s)
	if i := strings.LastIndex(code, ":"); i >= 0 {
		if !strings.EqualFold(strings.TrimSpace(code[:i]), "epsg") {
			return CRS{}, fmt.Errorf("%w: %q", ErrUnsupportedCRS, s)
		}
		code = strings.TrimSpace(code[i+1:])
	}
	n, err := strconv.Atoi(code)
	if err != nil || n <= 0 {
		return CRS{}, fmt.Errorf("%w: %q", ErrUnsupportedCRS, s)
	}
	return CRS{EPSG: n}, nil
}

func (c CRS) String() string { return fmt.Sprintf("EPSG:%d", c.EPSG) }

// IsZero reports whether c is unset.
func (c CRS) IsZero() bool { return c.EPSG == 0 }

// UTM returns the zone and hemisphere of a WGS84 UTM crs.
func (c CRS) UTM() (zone int, north bool, ok bool) {
	switch {
	case c.EPSG >= 32601 && c.EPSG <= 32660:
		return c.EPSG - 32600, true, true
	case c.EPSG >= 32701 && c.EPSG <= 32760:
		return c.EPSG - 32700, false, true
	}
	return 0, false, false
}

// toWGS84 returns the projection from c into EPSG:4326.
func (c CRS) toWGS84() (orb.Projection, error) {
	if c == EPSG4326 {
		return func(p orb.Point) orb.Point { return p }, nil
	}
	if c == EPSG3857 {
		return project.Mercator.ToWGS84, nil
	}
	if zone, north, ok := c.UTM(); ok {
		return func(p orb.Point) orb.Point {
			lon, lat := utmToLonLat(p[0], p[1], zone, north)
			return orb.Point{lon, lat}
		}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedCRS, c)
}

// fromWGS84 returns the projection from EPSG:4326 into c.
func (c CRS) fromWGS84() (orb.Projection, error) {
	if c == EPSG4326 {
		return func(p orb.Point) orb.Point { return p }, nil
	}
	if c == EPSG3857 {
		return project.WGS84.ToMercator, nil
	}
	if zone, north, ok := c.UTM(); ok {
		return func(p orb.Point) orb.Point {
			e, n := lonLatToUTM(p[0], p[1], zone, north)
			return orb.Point{e, n}
		}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedCRS, c)
}
