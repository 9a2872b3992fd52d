package xr

import (
	"errors"
	"math"
	"testing"
)

func TestCast(t *testing.T) {
	tests := []struct {
		dt   DType
		in   float64
		want float64
	}{
		{Uint8, 12.9, 12},
		{Uint8, -4, 0},
		{Uint8, 300, 255},
		{Uint8, math.NaN(), 0},
		{Int16, -40000, math.MinInt16},
		{Uint16, 70000, math.MaxUint16},
		{Float64, 1.25, 1.25},
	}
	for _, tt := range tests {
		if got := tt.dt.Cast(tt.in); got != tt.want {
			t.Errorf("%s.Cast(%v) = %v, want %v", tt.dt, tt.in, got, tt.want)
		}
	}
}

func TestDataArrayIndexing(t *testing.T) {
	a, err := New(Uint16, []string{"y", "x"}, []int{2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Set(7, 1, 2); err != nil {
		t.Fatal(err)
	}
	if got := a.Values[5]; got != 7 {
		t.Errorf("Values[5] = %v, want 7", got)
	}
	if got := a.At(1, 2); got != 7 {
		t.Errorf("At(1, 2) = %v, want 7", got)
	}
	if err := a.Set(1, 2, 0); !errors.Is(err, ErrIndex) {
		t.Errorf("Set out of range err = %v, want ErrIndex", err)
	}
	sizes := a.Sizes()
	if sizes["y"] != 2 || sizes["x"] != 3 {
		t.Errorf("Sizes = %v", sizes)
	}
}

func TestFromValuesShapeMismatch(t *testing.T) {
	if _, err := FromValues(Uint8, nil, []int{2, 2}, []float64{1, 2, 3}); !errors.Is(err, ErrShape) {
		t.Errorf("err = %v, want ErrShape", err)
	}
	a, err := FromValues(Uint8, nil, []int{1, 2}, []float64{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if a.Dims[0] != "dim_0" || a.Dims[1] != "dim_1" {
		t.Errorf("default dims = %v", a.Dims)
	}
}

func TestNewRejectsRepeatedDims(t *testing.T) {
	if _, err := New(Uint8, []string{"x", "x"}, []int{1, 1}); !errors.Is(err, ErrShape) {
		t.Errorf("err = %v, want ErrShape", err)
	}
}

func TestNoData(t *testing.T) {
	a, _ := New(Int16, []string{"x"}, []int{1})
	if _, ok := a.NoData(); ok {
		t.Error("fresh array reports a no-data value")
	}
	a.SetNoData(-999)
	if v, ok := a.NoData(); !ok || v != -999 {
		t.Errorf("NoData = %v, %v", v, ok)
	}
}

func TestDatasetSizes(t *testing.T) {
	ds := NewDataset()
	r, _ := New(Uint16, []string{"y", "x"}, []int{4, 5})
	r.Name = "red"
	g, _ := New(Uint16, []string{"y", "x"}, []int{4, 6})
	g.Name = "green"
	if err := ds.Add(r); err != nil {
		t.Fatal(err)
	}
	if err := ds.Add(g); !errors.Is(err, ErrDimExists) {
		t.Errorf("Add conflicting err = %v, want ErrDimExists", err)
	}
	if err := ds.SetCoord("x", Coord{Values: []float64{0, 1, 2, 3, 4}}); err != nil {
		t.Fatal(err)
	}
	if err := ds.SetCoord("y", Coord{Values: []float64{0}}); !errors.Is(err, ErrDimExists) {
		t.Errorf("SetCoord short err = %v, want ErrDimExists", err)
	}
	if got := ds.Names(); len(got) != 1 || got[0] != "red" {
		t.Errorf("Names = %v", got)
	}
	c := ds.CopyCoords()
	c["x"].Values[0] = 42
	if ds.Coords["x"].Values[0] != 0 {
		t.Error("CopyCoords shares storage with the dataset")
	}
}
