// Package xr holds labelled n-dimensional arrays: named dimensions, a
// dtype, coordinates and a per-array no-data sentinel.
package xr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrShape     = errors.New("xr: invalid shape")
	ErrIndex     = errors.New("xr: index out of range")
	ErrDimExists = errors.New("xr: dimension size conflict")
)

// Coord labels one dimension. Numeric coordinates use Values, categorical
// ones (e.g. band names) use Labels.
type Coord struct {
	Dim    string
	Values []float64
	Labels []string
}

// Len returns the number of entries along the coordinate.
func (c Coord) Len() int {
	if c.Labels != nil {
		return len(c.Labels)
	}
	return len(c.Values)
}

func (c Coord) clone() Coord {
	out := Coord{Dim: c.Dim}
	if c.Values != nil {
		out.Values = append([]float64(nil), c.Values...)
	}
	if c.Labels != nil {
		out.Labels = append([]string(nil), c.Labels...)
	}
	return out
}

// DataArray is a row-major n-d array with named dimensions.
type DataArray struct {
	Name   string
	Dims   []string
	Shape  []int
	DType  DType
	Values []float64
	Coords map[string]Coord

	nodata    float64
	hasNoData bool
}

// New allocates a zero-filled array.
func New(dtype DType, dims []string, shape []int) (*DataArray, error) {
	n, err := checkShape(dims, shape)
	if err != nil {
		return nil, err
	}
	return &DataArray{
		Dims:   append([]string(nil), dims...),
		Shape:  append([]int(nil), shape...),
		DType:  dtype,
		Values: make([]float64, n),
		Coords: map[string]Coord{},
	}, nil
}

// FromValues wraps values (row-major) in an array. The slice is not copied.
// A nil dims slice names the dimensions dim_0, dim_1, ...
func FromValues(dtype DType, dims []string, shape []int, values []float64) (*DataArray, error) {
	if dims == nil {
		dims = make([]string, len(shape))
		for i := range dims {
			dims[i] = fmt.Sprintf("dim_%d", i)
		}
	}
	n, err := checkShape(dims, shape)
	if err != nil {
		return nil, err
	}
	if len(values) != n {
		return nil, fmt.Errorf("%w: %d values for shape %v", ErrShape, len(values), shape)
	}
	return &DataArray{
		Dims:   append([]string(nil), dims...),
		Shape:  append([]int(nil), shape...),
		DType:  dtype,
		Values: values,
		Coords: map[string]Coord{},
	}, nil
}

func checkShape(dims []string, shape []int) (int, error) {
	if len(dims) != len(shape) {
		return 0, fmt.Errorf("%w: %d dims for %d axes", ErrShape, len(dims), len(shape))
	}
	seen := make(map[string]bool, len(dims))
	n := 1
	for i, s := range shape {
		if s < 0 {
			return 0, fmt.Errorf("%w: negative size %d on %q", ErrShape, s, dims[i])
		}
		if seen[dims[i]] {
			return 0, fmt.Errorf("%w: repeated dimension %q", ErrShape, dims[i])
		}
		seen[dims[i]] = true
		n *= s
	}
	return n, nil
}

// NDim returns the number of dimensions.
func (a *DataArray) NDim() int { return len(a.Shape) }

// Len returns the total number of elements.
func (a *DataArray) Len() int { return len(a.Values) }

// Sizes maps each dimension name to its length.
func (a *DataArray) Sizes() map[string]int {
	out := make(map[string]int, len(a.Dims))
	for i, d := range a.Dims {
		out[d] = a.Shape[i]
	}
	return out
}

// SameShape reports whether b has the same dims and shape as a.
func (a *DataArray) SameShape(b *DataArray) bool {
	if len(a.Shape) != len(b.Shape) {
		return false
	}
	for i := range a.Shape {
		if a.Shape[i] != b.Shape[i] || a.Dims[i] != b.Dims[i] {
			return false
		}
	}
	return true
}

// Offset converts a multi-index to the flat position in Values.
func (a *DataArray) Offset(idx ...int) (int, error) {
	if len(idx) != len(a.Shape) {
		return 0, fmt.Errorf("%w: %d indices for %d dims", ErrIndex, len(idx), len(a.Shape))
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= a.Shape[i] {
			return 0, fmt.Errorf("%w: %d on %q (size %d)", ErrIndex, v, a.Dims[i], a.Shape[i])
		}
		off = off*a.Shape[i] + v
	}
	return off, nil
}

// At returns the element at idx. It panics on a bad index like a slice would.
func (a *DataArray) At(idx ...int) float64 {
	off, err := a.Offset(idx...)
	if err != nil {
		panic(err)
	}
	return a.Values[off]
}

// Set stores v at idx after casting it to the array dtype.
func (a *DataArray) Set(v float64, idx ...int) error {
	off, err := a.Offset(idx...)
	if err != nil {
		return err
	}
	a.Values[off] = a.DType.Cast(v)
	return nil
}

// SetNoData records the no-data sentinel for the array.
func (a *DataArray) SetNoData(v float64) {
	a.nodata, a.hasNoData = v, true
}

// NoData returns the no-data sentinel, if any.
func (a *DataArray) NoData() (float64, bool) {
	return a.nodata, a.hasNoData
}

// SetCoord attaches a coordinate to one of the array dimensions.
func (a *DataArray) SetCoord(name string, c Coord) error {
	if c.Dim == "" {
		c.Dim = name
	}
	size, ok := a.Sizes()[c.Dim]
	if !ok {
		return fmt.Errorf("xr: coordinate %q on unknown dimension %q", name, c.Dim)
	}
	if c.Len() != size {
		return fmt.Errorf("%w: coordinate %q has %d entries, %q has %d", ErrDimExists, name, c.Len(), c.Dim, size)
	}
	if a.Coords == nil {
		a.Coords = map[string]Coord{}
	}
	a.Coords[name] = c
	return nil
}

func (a *DataArray) String() string {
	parts := make([]string, len(a.Dims))
	for i, d := range a.Dims {
		parts[i] = fmt.Sprintf("%s: %d", d, a.Shape[i])
	}
	return fmt.Sprintf("<xr.DataArray %q (%s) %s>", a.Name, strings.Join(parts, ", "), a.DType)
}
