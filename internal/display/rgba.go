package display

import (
	"fmt"
	"math"

	"odcview/internal/xr"
)

type rgbaConfig struct {
	clamp    float64
	hasClamp bool
	bands    [3]string
}

// RGBAOption configures ToRGBA.
type RGBAOption func(*rgbaConfig)

// WithClamp sets the intensity mapped to 255. Without it the largest value
// across the three bands is used.
func WithClamp(v float64) RGBAOption {
	return func(c *rgbaConfig) {
		c.clamp, c.hasClamp = v, true
	}
}

// WithBands selects the variables used for red, green and blue.
func WithBands(r, g, b string) RGBAOption {
	return func(c *rgbaConfig) {
		c.bands = [3]string{r, g, b}
	}
}

// BandLabels are the band coordinate labels of a ToRGBA result.
var BandLabels = []string{"r", "g", "b", "a"}

// ToRGBA composites three bands of ds into a uint8 array with a trailing
// "band" dimension holding r, g, b, a. Alpha is 0 where the red band holds
// its no-data value and 255 elsewhere.
func ToRGBA(ds *xr.Dataset, opts ...RGBAOption) (*xr.DataArray, error) {
	cfg := rgbaConfig{bands: [3]string{"red", "green", "blue"}}
	for _, o := range opts {
		o(&cfg)
	}

	var src [3]*xr.DataArray
	for i, name := range cfg.bands {
		a, ok := ds.Var(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingBand, name)
		}
		src[i] = a
	}
	r := src[0]
	for _, a := range src[1:] {
		if !r.SameShape(a) {
			return nil, fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, r.Shape, a.Shape)
		}
	}

	clamp := cfg.clamp
	if !cfg.hasClamp {
		clamp = math.Inf(-1)
		for _, a := range src {
			for _, v := range a.Values {
				if v > clamp {
					clamp = v
				}
			}
		}
	}
	if !(clamp > 0) || math.IsInf(clamp, 1) {
		return nil, fmt.Errorf("%w: got %v", ErrZeroClamp, clamp)
	}

	dims := append(append([]string(nil), r.Dims...), "band")
	shape := append(append([]int(nil), r.Shape...), 4)
	out, err := xr.New(xr.Uint8, dims, shape)
	if err != nil {
		return nil, err
	}
	out.Name = "rgba"

	nodata, hasNoData := r.NoData()
	isNoData := func(v float64) bool {
		if !hasNoData {
			return false
		}
		if math.IsNaN(nodata) {
			return math.IsNaN(v)
		}
		return v == nodata
	}

	for i := range r.Values {
		px := out.Values[i*4 : i*4+4]
		for c, a := range src {
			px[c] = scaleToByte(a.Values[i], clamp)
		}
		if !isNoData(r.Values[i]) {
			px[3] = 255
		}
	}

	for name, c := range ds.CopyCoords() {
		if _, ok := out.Sizes()[c.Dim]; ok {
			if err := out.SetCoord(name, c); err != nil {
				return nil, err
			}
		}
	}
	for name, c := range r.Coords {
		if _, ok := out.Coords[name]; !ok {
			if err := out.SetCoord(name, c); err != nil {
				return nil, err
			}
		}
	}
	if err := out.SetCoord("band", xr.Coord{Labels: append([]string(nil), BandLabels...)}); err != nil {
		return nil, err
	}

	Logger().Debug("display: composited rgba", "bands", cfg.bands, "clamp", clamp, "shape", out.Shape)
	return out, nil
}

// scaleToByte clips v to [0, clamp], truncates it and rescales to 0..255
// with floor division.
func scaleToByte(v, clamp float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v > clamp {
		v = clamp
	}
	return math.Floor(math.Trunc(v) * 255 / clamp)
}
