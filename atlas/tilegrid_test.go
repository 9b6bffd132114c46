package atlas

import (
	"testing"

	"badc0de.net/pkg/gridpack/ttesting"
)

func TestTileGridFits(t *testing.T) {
	g := NewTileGrid(4)

	if !g.Fits(0, 0, 2, 2) {
		t.Errorf("empty grid: want 2x2 to fit at (0, 0)")
	}
	if g.Fits(0, 3, 2, 1) {
		t.Errorf("want 2x1 at col 3 of a 4 column grid to not fit")
	}
	if g.Fits(0, 0, 5, 1) {
		t.Errorf("want 5x1 to not fit in a 4 column grid")
	}
	if g.Fits(-1, 0, 1, 1) || g.Fits(0, -1, 1, 1) {
		t.Errorf("want negative positions to not fit")
	}

	g.Mark(0, 0, 2, 2)
	if g.Fits(1, 1, 1, 1) {
		t.Errorf("want (1, 1) to be occupied after marking 2x2 at (0, 0)")
	}
	if !g.Fits(0, 2, 2, 2) {
		t.Errorf("want 2x2 to fit at (0, 2)")
	}
	if !g.Fits(2, 0, 1, 1) {
		t.Errorf("want (2, 0) free; rows must grow on demand")
	}
}

func TestTileGridFirstFit(t *testing.T) {
	g := NewTileGrid(3)
	g.Mark(0, 0, 1, 1)
	g.Mark(0, 2, 1, 1)

	row, col, ok := g.FirstFit(1, 1)
	if !ok {
		t.Fatalf("want 1x1 to be placeable")
	}
	ttesting.AssertEqualInt(t, "row", row, 0)
	ttesting.AssertEqualInt(t, "col", col, 1)

	row, col, ok = g.FirstFit(2, 2)
	if !ok {
		t.Fatalf("want 2x2 to be placeable")
	}
	ttesting.AssertEqualInt(t, "2x2 row", row, 1)
	ttesting.AssertEqualInt(t, "2x2 col", col, 0)

	if _, _, ok := g.FirstFit(4, 1); ok {
		t.Errorf("want 4x1 to be unplaceable in a 3 column grid")
	}
}

func TestTileGridFirstFitSkipsNarrowGaps(t *testing.T) {
	g := NewTileGrid(4)
	g.Mark(0, 1, 1, 2)

	// (0, 0) is free but only one tile wide; the first fit for a 2x2
	// block is past the marked column.
	row, col, ok := g.FirstFit(2, 2)
	if !ok {
		t.Fatalf("want 2x2 to be placeable")
	}
	ttesting.AssertEqualInt(t, "row", row, 0)
	ttesting.AssertEqualInt(t, "col", col, 2)
}
