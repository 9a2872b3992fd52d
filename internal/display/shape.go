package display

import (
	"fmt"
	"sort"
	"strings"
)

// Sized is anything that can report its dimension lengths by name.
// Both *xr.DataArray and *xr.Dataset satisfy it.
type Sized interface {
	Sizes() map[string]int
}

// spatial dimension naming conventions, (height, width), in priority order
var imageDims = [...][2]string{
	{"y", "x"},
	{"latitude", "longitude"},
}

// ImageShape returns the (height, width) of d.
func ImageShape(d Sized) (h, w int, err error) {
	sizes := d.Sizes()
	for _, names := range imageDims {
		hh, okH := sizes[names[0]]
		ww, okW := sizes[names[1]]
		if okH && okW {
			return hh, ww, nil
		}
	}
	dims := make([]string, 0, len(sizes))
	for k := range sizes {
		dims = append(dims, k)
	}
	sort.Strings(dims)
	return 0, 0, fmt.Errorf("%w: %s", ErrUnknownDims, strings.Join(dims, " "))
}

// ImageAspect returns width/height of d.
func ImageAspect(d Sized) (float64, error) {
	h, w, err := ImageShape(d)
	if err != nil {
		return 0, err
	}
	return float64(w) / float64(h), nil
}
