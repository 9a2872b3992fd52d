package xr

import "math"

// DType is the element type of a DataArray. Values are always held as
// float64; the dtype records what the source raster stored and bounds Set.
type DType uint8

const (
	Uint8 DType = iota
	Uint16
	Int16
	Int32
	Float32
	Float64
)

var dtypeNames = [...]string{
	Uint8:   "uint8",
	Uint16:  "uint16",
	Int16:   "int16",
	Int32:   "int32",
	Float32: "float32",
	Float64: "float64",
}

func (d DType) String() string {
	if int(d) < len(dtypeNames) {
		return dtypeNames[d]
	}
	return "unknown"
}

// IsInteger reports whether d is one of the integer types.
func (d DType) IsInteger() bool {
	return d <= Int32
}

// Range returns the representable range of d.
func (d DType) Range() (lo, hi float64) {
	switch d {
	case Uint8:
		return 0, math.MaxUint8
	case Uint16:
		return 0, math.MaxUint16
	case Int16:
		return math.MinInt16, math.MaxInt16
	case Int32:
		return math.MinInt32, math.MaxInt32
	case Float32:
		return -math.MaxFloat32, math.MaxFloat32
	}
	return math.Inf(-1), math.Inf(1)
}

// Cast converts v to a value representable by d. Integer types truncate
// toward zero and saturate at their bounds; NaN becomes 0 for them.
func (d DType) Cast(v float64) float64 {
	if !d.IsInteger() {
		if d == Float32 {
			return float64(float32(v))
		}
		return v
	}
	if math.IsNaN(v) {
		return 0
	}
	lo, hi := d.Range()
	v = math.Trunc(v)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
