package xr

import (
	"fmt"
	"sort"
	"strings"
)

// Dataset is a set of named arrays sharing dimensions and coordinates.
type Dataset struct {
	vars   map[string]*DataArray
	names  []string
	sizes  map[string]int
	Coords map[string]Coord
}

func NewDataset() *Dataset {
	return &Dataset{
		vars:   map[string]*DataArray{},
		sizes:  map[string]int{},
		Coords: map[string]Coord{},
	}
}

// Add inserts a as a data variable under a.Name. Dimensions already known
// to the dataset must agree in size.
func (d *Dataset) Add(a *DataArray) error {
	if a.Name == "" {
		return fmt.Errorf("xr: data variable needs a name")
	}
	for dim, n := range a.Sizes() {
		if have, ok := d.sizes[dim]; ok && have != n {
			return fmt.Errorf("%w: %q is %d in dataset, %d in %q", ErrDimExists, dim, have, n, a.Name)
		}
	}
	for dim, n := range a.Sizes() {
		d.sizes[dim] = n
	}
	if _, ok := d.vars[a.Name]; !ok {
		d.names = append(d.names, a.Name)
	}
	d.vars[a.Name] = a
	return nil
}

// Var looks up a data variable.
func (d *Dataset) Var(name string) (*DataArray, bool) {
	a, ok := d.vars[name]
	return a, ok
}

// Names lists the data variables in insertion order.
func (d *Dataset) Names() []string {
	return append([]string(nil), d.names...)
}

// Sizes maps each dimension of the dataset to its length.
func (d *Dataset) Sizes() map[string]int {
	out := make(map[string]int, len(d.sizes))
	for k, v := range d.sizes {
		out[k] = v
	}
	return out
}

// SetCoord attaches a coordinate shared by all variables.
func (d *Dataset) SetCoord(name string, c Coord) error {
	if c.Dim == "" {
		c.Dim = name
	}
	n, ok := d.sizes[c.Dim]
	if ok && n != c.Len() {
		return fmt.Errorf("%w: coordinate %q has %d entries, %q has %d", ErrDimExists, name, c.Len(), c.Dim, n)
	}
	if !ok {
		d.sizes[c.Dim] = c.Len()
	}
	d.Coords[name] = c
	return nil
}

// CopyCoords returns a deep copy of the dataset coordinates.
func (d *Dataset) CopyCoords() map[string]Coord {
	out := make(map[string]Coord, len(d.Coords))
	for k, c := range d.Coords {
		out[k] = c.clone()
	}
	return out
}

func (d *Dataset) String() string {
	dims := make([]string, 0, len(d.sizes))
	for k, v := range d.sizes {
		dims = append(dims, fmt.Sprintf("%s: %d", k, v))
	}
	sort.Strings(dims)
	return fmt.Sprintf("<xr.Dataset (%s) vars=%s>", strings.Join(dims, ", "), strings.Join(d.names, ","))
}
