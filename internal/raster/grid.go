// Package raster holds the dense 2D grid type band arithmetic operates on.
// Grids carry a validity mask alongside the values; every operation
// propagates masks and returns a new grid, inputs are never written to.
package raster

import (
	"errors"
	"fmt"
	"math"
)

// ErrShapeMismatch is returned when two grids of different dimensions are
// combined element-wise or stacked.
var ErrShapeMismatch = errors.New("grid shape mismatch")

// Grid is a row-major 2D float64 grid with a per-cell validity mask.
// A masked cell holds no meaningful value.
type Grid struct {
	rows, cols int
	data       []float64
	mask       []bool
}

// New returns an all-valid zero grid of the given dimensions.
func New(rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("raster: invalid grid dimensions %dx%d", rows, cols))
	}
	return &Grid{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
		mask: make([]bool, rows*cols),
	}
}

// FromValues builds a grid from row-major values. len(values) must equal
// rows*cols.
func FromValues(rows, cols int, values []float64) (*Grid, error) {
	if len(values) != rows*cols {
		return nil, fmt.Errorf("raster: got %d values for a %dx%d grid", len(values), rows, cols)
	}
	g := New(rows, cols)
	copy(g.data, values)
	return g, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// At returns the value at (row, col). The value of a masked cell is
// unspecified; check Masked first.
func (g *Grid) At(row, col int) float64 {
	return g.data[row*g.cols+col]
}

func (g *Grid) Masked(row, col int) bool {
	return g.mask[row*g.cols+col]
}

func (g *Grid) Set(row, col int, v float64) {
	i := row*g.cols + col
	g.data[i] = v
	g.mask[i] = false
}

func (g *Grid) SetMasked(row, col int) {
	g.mask[row*g.cols+col] = true
}

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	out := New(g.rows, g.cols)
	copy(out.data, g.data)
	copy(out.mask, g.mask)
	return out
}

func (g *Grid) sameShape(o *Grid) bool {
	return g.rows == o.rows && g.cols == o.cols
}

// Sub returns a − b element-wise. Cells masked in either input are masked
// in the result.
func Sub(a, b *Grid) (*Grid, error) {
	if !a.sameShape(b) {
		return nil, fmt.Errorf("%w: %dx%d vs %dx%d", ErrShapeMismatch, a.rows, a.cols, b.rows, b.cols)
	}
	out := New(a.rows, a.cols)
	for i := range out.data {
		out.data[i] = a.data[i] - b.data[i]
		out.mask[i] = a.mask[i] || b.mask[i]
	}
	return out, nil
}

// Div returns a / b element-wise. Cells masked in either input are masked
// in the result, as are cells where the quotient is not finite.
func Div(a, b *Grid) (*Grid, error) {
	if !a.sameShape(b) {
		return nil, fmt.Errorf("%w: %dx%d vs %dx%d", ErrShapeMismatch, a.rows, a.cols, b.rows, b.cols)
	}
	out := New(a.rows, a.cols)
	for i := range out.data {
		q := a.data[i] / b.data[i]
		out.data[i] = q
		out.mask[i] = a.mask[i] || b.mask[i] || math.IsInf(q, 0) || math.IsNaN(q)
	}
	return out, nil
}

// MaskOutside returns a copy with every cell whose value falls outside
// [lo, hi] masked. The bounds themselves are retained.
func (g *Grid) MaskOutside(lo, hi float64) *Grid {
	out := g.Clone()
	for i, v := range out.data {
		if v < lo || v > hi {
			out.mask[i] = true
		}
	}
	return out
}
