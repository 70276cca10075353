package raster

import (
	"errors"
	"testing"
)

func mustGrid(t *testing.T, rows, cols int, values []float64) *Grid {
	t.Helper()
	g, err := FromValues(rows, cols, values)
	if err != nil {
		t.Fatalf("FromValues: %v", err)
	}
	return g
}

func TestSub_PropagatesMasks(t *testing.T) {
	a := mustGrid(t, 2, 2, []float64{10, 20, 30, 40})
	b := mustGrid(t, 2, 2, []float64{1, 2, 3, 4})
	a.SetMasked(0, 1)
	b.SetMasked(1, 0)

	got, err := Sub(a, b)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if got.At(0, 0) != 9 || got.At(1, 1) != 36 {
		t.Fatalf("unexpected values: %v %v", got.At(0, 0), got.At(1, 1))
	}
	if !got.Masked(0, 1) || !got.Masked(1, 0) {
		t.Fatalf("expected masks from both operands to propagate")
	}
	if got.Masked(0, 0) || got.Masked(1, 1) {
		t.Fatalf("valid cells should stay valid")
	}
}

func TestSub_ShapeMismatch(t *testing.T) {
	a := mustGrid(t, 2, 2, []float64{1, 2, 3, 4})
	b := mustGrid(t, 1, 4, []float64{1, 2, 3, 4})
	if _, err := Sub(a, b); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestDiv_MasksNonFinite(t *testing.T) {
	a := mustGrid(t, 1, 3, []float64{10, 5, 0})
	b := mustGrid(t, 1, 3, []float64{2, 0, 0})

	got, err := Div(a, b)
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	if got.At(0, 0) != 5 {
		t.Fatalf("10/2 = %v", got.At(0, 0))
	}
	if !got.Masked(0, 1) || !got.Masked(0, 2) {
		t.Fatalf("division by zero should produce masked cells")
	}
}

func TestMaskOutside_InclusiveBounds(t *testing.T) {
	g := mustGrid(t, 1, 5, []float64{0.034, 0.035, 0.5, 1.0, 1.001})
	got := g.MaskOutside(0.035, 1.0)

	want := []bool{true, false, false, false, true}
	for i, w := range want {
		if got.Masked(0, i) != w {
			t.Fatalf("cell %d: masked=%v, want %v", i, got.Masked(0, i), w)
		}
	}
	// the receiver is untouched
	if g.Masked(0, 0) || g.Masked(0, 4) {
		t.Fatalf("MaskOutside must not mutate its receiver")
	}
}

func TestStackGrids_OrderAndShape(t *testing.T) {
	r := mustGrid(t, 2, 3, []float64{1, 1, 1, 1, 1, 1})
	g := mustGrid(t, 2, 3, []float64{2, 2, 2, 2, 2, 2})
	b := mustGrid(t, 2, 3, []float64{3, 3, 3, 3, 3, 3})
	g.SetMasked(1, 2)

	s, err := StackGrids(r, g, b)
	if err != nil {
		t.Fatalf("StackGrids: %v", err)
	}
	if s.Bands() != 3 || s.Rows() != 2 || s.Cols() != 3 {
		t.Fatalf("unexpected shape: %dx%dx%d", s.Bands(), s.Rows(), s.Cols())
	}
	if s.At(0, 0, 0) != 1 || s.At(1, 0, 0) != 2 || s.At(2, 0, 0) != 3 {
		t.Fatalf("band order not preserved")
	}
	if !s.Masked(1, 1, 2) || s.Masked(0, 1, 2) || s.Masked(2, 1, 2) {
		t.Fatalf("masks must stay with their band")
	}
}

func TestStackGrids_ShapeMismatch(t *testing.T) {
	a := mustGrid(t, 2, 2, []float64{1, 2, 3, 4})
	b := mustGrid(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	if _, err := StackGrids(a, b); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
}
