package raster

import "fmt"

// Stack is a C×H×W grid stack, band axis first. Band order matches the
// order the grids were stacked in.
type Stack struct {
	bands      int
	rows, cols int
	data       []float64
	mask       []bool
}

// StackGrids copies equal-shape grids into a new stack, preserving input
// order and per-cell masks.
func StackGrids(grids ...*Grid) (*Stack, error) {
	if len(grids) == 0 {
		return nil, fmt.Errorf("raster: nothing to stack")
	}
	first := grids[0]
	for _, g := range grids[1:] {
		if !first.sameShape(g) {
			return nil, fmt.Errorf("%w: %dx%d vs %dx%d", ErrShapeMismatch, first.rows, first.cols, g.rows, g.cols)
		}
	}
	plane := first.rows * first.cols
	s := &Stack{
		bands: len(grids),
		rows:  first.rows,
		cols:  first.cols,
		data:  make([]float64, len(grids)*plane),
		mask:  make([]bool, len(grids)*plane),
	}
	for b, g := range grids {
		copy(s.data[b*plane:(b+1)*plane], g.data)
		copy(s.mask[b*plane:(b+1)*plane], g.mask)
	}
	return s, nil
}

func (s *Stack) Bands() int { return s.bands }
func (s *Stack) Rows() int  { return s.rows }
func (s *Stack) Cols() int  { return s.cols }

func (s *Stack) At(band, row, col int) float64 {
	return s.data[band*s.rows*s.cols+row*s.cols+col]
}

func (s *Stack) Masked(band, row, col int) bool {
	return s.mask[band*s.rows*s.cols+row*s.cols+col]
}

// Band returns a copy of one plane as a standalone grid.
func (s *Stack) Band(band int) *Grid {
	plane := s.rows * s.cols
	g := New(s.rows, s.cols)
	copy(g.data, s.data[band*plane:(band+1)*plane])
	copy(g.mask, s.mask[band*plane:(band+1)*plane])
	return g
}
