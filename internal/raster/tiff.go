// Package raster loads image rasters from disk into labelled datasets.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/tiff"

	"odcview/internal/display"
	"odcview/internal/xr"
)

// NoData is the sentinel attached to every loaded band.
const NoData = 0

// LoadTIFF reads a TIFF file into a dataset with red, green and blue
// variables (and alpha when the image carries transparency) on (y, x).
func LoadTIFF(path string) (*xr.Dataset, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("raster: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	ds, err := DecodeTIFF(f)
	if err != nil {
		return nil, fmt.Errorf("raster: %s: %w", path, err)
	}
	return ds, nil
}

// LoadTIFFs loads every path in order, calling cbk(n, len(paths)) after
// each file. cbk may be nil.
func LoadTIFFs(paths []string, cbk func(n, total int)) ([]*xr.Dataset, error) {
	out := make([]*xr.Dataset, 0, len(paths))
	for i, p := range paths {
		ds, err := LoadTIFF(p)
		if err != nil {
			return nil, err
		}
		out = append(out, ds)
		if cbk != nil {
			cbk(i+1, len(paths))
		}
	}
	return out, nil
}

// DecodeTIFF decodes a TIFF stream. 16-bit sources give uint16 bands,
// everything else uint8. Grayscale images fill all three colour bands.
func DecodeTIFF(r io.Reader) (*xr.Dataset, error) {
	img, err := tiff.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode tiff: %w", err)
	}
	return FromImage(img)
}

// FromImage converts any decoded image into a dataset.
func FromImage(img image.Image) (*xr.Dataset, error) {
	b := img.Bounds()
	h, w := b.Dy(), b.Dx()
	dtype, shift := xr.Uint8, uint(8)
	switch img.(type) {
	case *image.Gray16, *image.RGBA64, *image.NRGBA64:
		dtype, shift = xr.Uint16, 0
	}
	gray := false
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		gray = true
	}
	withAlpha := false
	if o, ok := img.(interface{ Opaque() bool }); ok && !gray {
		withAlpha = !o.Opaque()
	}

	names := []string{"red", "green", "blue"}
	if withAlpha {
		names = append(names, "alpha")
	}
	bands := make([]*xr.DataArray, len(names))
	for i, name := range names {
		a, err := xr.New(dtype, []string{"y", "x"}, []int{h, w})
		if err != nil {
			return nil, err
		}
		a.Name = name
		a.SetNoData(NoData)
		bands[i] = a
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA64Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
			off := y*w + x
			samples := [4]uint16{c.R, c.G, c.B, c.A}
			for i, a := range bands {
				a.Values[off] = float64(samples[i] >> shift)
			}
		}
	}

	ds := xr.NewDataset()
	for _, a := range bands {
		if err := ds.Add(a); err != nil {
			return nil, err
		}
	}
	ys := make([]float64, h)
	for i := range ys {
		ys[i] = float64(i)
	}
	xs := make([]float64, w)
	for i := range xs {
		xs[i] = float64(i)
	}
	if err := ds.SetCoord("y", xr.Coord{Values: ys}); err != nil {
		return nil, err
	}
	if err := ds.SetCoord("x", xr.Coord{Values: xs}); err != nil {
		return nil, err
	}
	display.Logger().Debug("raster: decoded image", "width", w, "height", h, "dtype", dtype.String(), "alpha", withAlpha)
	return ds, nil
}
