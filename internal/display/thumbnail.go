package display

import (
	"fmt"
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"odcview/internal/xr"
)

// FitSize returns the largest (w, h) inside maxW x maxH with the given
// width/height aspect. Both results are at least 1.
func FitSize(aspect float64, maxW, maxH int) (int, int) {
	if maxW < 1 || maxH < 1 || !(aspect > 0) || math.IsInf(aspect, 0) {
		return max(maxW, 1), max(maxH, 1)
	}
	w := maxW
	h := int(math.Round(float64(w) / aspect))
	if h > maxH {
		h = maxH
		w = int(math.Round(float64(h) * aspect))
	}
	return max(w, 1), max(h, 1)
}

// Thumbnail scales an image array (usually a ToRGBA result) to fit inside
// maxW x maxH while keeping its aspect.
func Thumbnail(a *xr.DataArray, maxW, maxH int) (*image.NRGBA, error) {
	h, w, err := ImageShape(a)
	if err != nil {
		return nil, err
	}
	if a.NDim() < 2 || a.Shape[0] != h || a.Shape[1] != w {
		return nil, fmt.Errorf("%w: spatial dims must lead, got %v", ErrUnsupportedRank, a.Dims)
	}
	aspect, err := ImageAspect(a)
	if err != nil {
		return nil, err
	}
	src, err := ToImage(a)
	if err != nil {
		return nil, err
	}
	tw, th := FitSize(aspect, maxW, maxH)
	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	Logger().Debug("display: thumbnail", "from", [2]int{w, h}, "to", [2]int{tw, th})
	return dst, nil
}
