// Package display converts labelled rasters into things a terminal or a
// notebook can show: RGBA composites, PNG bytes, data URIs and thumbnails.
package display

import "errors"

var (
	// ErrUnknownDims is returned when no supported pair of spatial
	// dimension names is present.
	ErrUnknownDims = errors.New("display: can't determine shape from dimension names")

	// ErrUnsupportedDType is returned for arrays of the wrong element type.
	ErrUnsupportedDType = errors.New("display: unsupported dtype")

	// ErrUnsupportedRank is returned for arrays that are not 2 or 3 dimensional.
	ErrUnsupportedRank = errors.New("display: unsupported number of dimensions")

	// ErrUnknownMode is returned when no image mode fits the array layout.
	ErrUnknownMode = errors.New("display: can't figure out image mode")

	// ErrMissingBand is returned when a requested band is not in the dataset.
	ErrMissingBand = errors.New("display: missing band")

	// ErrShapeMismatch is returned when composited bands differ in shape.
	ErrShapeMismatch = errors.New("display: band shapes differ")

	// ErrZeroClamp is returned when the clamp ceiling is not positive.
	ErrZeroClamp = errors.New("display: clamp must be positive")
)
