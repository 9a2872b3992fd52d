package display

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"odcview/internal/xr"
)

// Mode is a PNG colour layout.
type Mode uint8

const (
	ModeAuto Mode = iota
	ModeL         // grayscale
	ModeLA        // grayscale + alpha
	ModeRGB
	ModeRGBA
)

func (m Mode) String() string {
	switch m {
	case ModeL:
		return "L"
	case ModeLA:
		return "LA"
	case ModeRGB:
		return "RGB"
	case ModeRGBA:
		return "RGBA"
	}
	return "auto"
}

// Channels returns the number of samples per pixel for m.
func (m Mode) Channels() int {
	switch m {
	case ModeL:
		return 1
	case ModeLA:
		return 2
	case ModeRGB:
		return 3
	case ModeRGBA:
		return 4
	}
	return 0
}

type modeKey struct{ ndim, channels int }

// InferMode picks the image mode for an array of the given rank and
// trailing channel count (0 for 2-D arrays). Unlisted layouts fail.
func InferMode(ndim, channels int) (Mode, error) {
	switch (modeKey{ndim, channels}) {
	case modeKey{2, 0}, modeKey{2, 1}, modeKey{3, 1}:
		return ModeL, nil
	case modeKey{3, 2}:
		return ModeLA, nil
	case modeKey{3, 3}:
		return ModeRGB, nil
	case modeKey{3, 4}:
		return ModeRGBA, nil
	}
	return ModeAuto, fmt.Errorf("%w: %d dims with %d channels", ErrUnknownMode, ndim, channels)
}

// layout returns height, width and channel count (0 for 2-D) of a.
func layout(a *xr.DataArray) (h, w, nc int) {
	switch a.NDim() {
	case 2:
		return a.Shape[0], a.Shape[1], 0
	case 3:
		return a.Shape[0], a.Shape[1], a.Shape[2]
	}
	return 0, 0, -1
}

// EncodePNG writes a channels-last uint8 or uint16 array as PNG. ModeAuto
// infers the mode from the array layout; an explicit mode must agree with
// the channel count. uint16 input produces a 16-bit PNG.
func EncodePNG(a *xr.DataArray, mode Mode) ([]byte, error) {
	if a.DType != xr.Uint8 && a.DType != xr.Uint16 {
		return nil, fmt.Errorf("%w: %s, want uint8 or uint16", ErrUnsupportedDType, a.DType)
	}
	h, w, nc := layout(a)
	if mode == ModeAuto {
		var err error
		if mode, err = InferMode(a.NDim(), nc); err != nil {
			return nil, err
		}
	} else if c := channelCount(a, nc); a.NDim() < 2 || a.NDim() > 3 || c != mode.Channels() {
		return nil, fmt.Errorf("%w: mode %s needs %d channels, array has %d", ErrUnknownMode, mode, mode.Channels(), c)
	}
	stride := max(nc, 1)
	img := newImage(mode, w, h, a.DType == xr.Uint16, func(x, y, c int) float64 {
		return a.DType.Cast(a.Values[(y*w+x)*stride+c])
	})
	return encode(img)
}

// channelCount is the sample count per pixel: 1 for 2-D arrays, the band
// length (possibly 0) otherwise.
func channelCount(a *xr.DataArray, nc int) int {
	if a.NDim() == 2 {
		return 1
	}
	return nc
}

// ToPNGData encodes a uint8 array of shape (h, w) or (h, w, bands) as PNG.
// Bands are reordered to band-sequential and written through an in-memory
// raster.
func ToPNGData(im *xr.DataArray) ([]byte, error) {
	if im.DType != xr.Uint8 {
		return nil, fmt.Errorf("%w: only uint8 images are supported, got %s", ErrUnsupportedDType, im.DType)
	}
	var h, w, nc int
	switch im.NDim() {
	case 3:
		h, w, nc = im.Shape[0], im.Shape[1], im.Shape[2]
	case 2:
		h, w, nc = im.Shape[0], im.Shape[1], 1
	default:
		return nil, fmt.Errorf("%w: expect 2 or 3 dimensional array, got %d", ErrUnsupportedRank, im.NDim())
	}

	bands := make([][]uint8, nc)
	for b := range bands {
		band := make([]uint8, h*w)
		for i := range band {
			band[i] = uint8(xr.Uint8.Cast(im.Values[i*nc+b]))
		}
		bands[b] = band
	}

	mem, err := openMemRaster(rasterOptions{Width: w, Height: h, Count: nc})
	if err != nil {
		return nil, err
	}
	if err := mem.Write(bands); err != nil {
		return nil, err
	}
	return mem.Read()
}

type rasterOptions struct {
	Width, Height, Count int
}

// memRaster is a write-once, band-sequential uint8 raster encoded to PNG
// when read. It carries no georeferencing.
type memRaster struct {
	opts  rasterOptions
	bands [][]uint8
}

func openMemRaster(opts rasterOptions) (*memRaster, error) {
	if opts.Count < 1 || opts.Count > 4 {
		return nil, fmt.Errorf("%w: png raster supports 1 to 4 bands, got %d", ErrUnknownMode, opts.Count)
	}
	return &memRaster{opts: opts}, nil
}

func (m *memRaster) Write(bands [][]uint8) error {
	if len(bands) != m.opts.Count {
		return fmt.Errorf("display: raster write: %d bands, opened with %d", len(bands), m.opts.Count)
	}
	for i, b := range bands {
		if len(b) != m.opts.Width*m.opts.Height {
			return fmt.Errorf("display: raster write: band %d has %d pixels, want %d", i, len(b), m.opts.Width*m.opts.Height)
		}
	}
	m.bands = bands
	return nil
}

func (m *memRaster) Read() ([]byte, error) {
	if m.bands == nil {
		return nil, fmt.Errorf("display: raster read before write")
	}
	Logger().Debug("display: raster is not georeferenced, writing plain png",
		"width", m.opts.Width, "height", m.opts.Height, "count", m.opts.Count)
	mode, _ := InferMode(3, m.opts.Count)
	w := m.opts.Width
	img := newImage(mode, w, m.opts.Height, false, func(x, y, c int) float64 {
		return float64(m.bands[c][y*w+x])
	})
	return encode(img)
}

// newImage builds an image of the given mode from a sample accessor.
// Gray+alpha has no PNG-native Go type, so it is stored as NRGBA with equal
// colour channels.
func newImage(mode Mode, w, h int, deep bool, sample func(x, y, c int) float64) image.Image {
	r := image.Rect(0, 0, w, h)
	if mode == ModeL {
		if deep {
			img := image.NewGray16(r)
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					img.SetGray16(x, y, color.Gray16{Y: uint16(sample(x, y, 0))})
				}
			}
			return img
		}
		img := image.NewGray(r)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.SetGray(x, y, color.Gray{Y: uint8(sample(x, y, 0))})
			}
		}
		return img
	}

	rgba := func(x, y int) (cr, cg, cb, ca float64) {
		switch mode {
		case ModeLA:
			g := sample(x, y, 0)
			return g, g, g, sample(x, y, 1)
		case ModeRGB:
			return sample(x, y, 0), sample(x, y, 1), sample(x, y, 2), -1
		}
		return sample(x, y, 0), sample(x, y, 1), sample(x, y, 2), sample(x, y, 3)
	}
	if deep {
		img := image.NewNRGBA64(r)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				cr, cg, cb, ca := rgba(x, y)
				if ca < 0 {
					ca = 0xffff
				}
				img.SetNRGBA64(x, y, color.NRGBA64{R: uint16(cr), G: uint16(cg), B: uint16(cb), A: uint16(ca)})
			}
		}
		return img
	}
	img := image.NewNRGBA(r)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cr, cg, cb, ca := rgba(x, y)
			if ca < 0 {
				ca = 0xff
			}
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(cr), G: uint8(cg), B: uint8(cb), A: uint8(ca)})
		}
	}
	return img
}

func encode(img image.Image) ([]byte, error) {
	var bb bytes.Buffer
	if err := png.Encode(&bb, img); err != nil {
		return nil, fmt.Errorf("display: encode png: %w", err)
	}
	return bb.Bytes(), nil
}

// ToImage converts a uint8 array of shape (h, w) or (h, w, 1..4) into an
// image, inferring the mode like EncodePNG.
func ToImage(a *xr.DataArray) (image.Image, error) {
	if a.DType != xr.Uint8 {
		return nil, fmt.Errorf("%w: %s, want uint8", ErrUnsupportedDType, a.DType)
	}
	h, w, nc := layout(a)
	mode, err := InferMode(a.NDim(), nc)
	if err != nil {
		return nil, err
	}
	stride := max(nc, 1)
	return newImage(mode, w, h, false, func(x, y, c int) float64 {
		return a.Values[(y*w+x)*stride+c]
	}), nil
}
