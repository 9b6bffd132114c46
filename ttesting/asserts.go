package ttesting

import (
	"testing"
)

func AssertEqualInt(t *testing.T, name string, got, want int) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualString(t *testing.T, name string, got, want string) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %q; want %q", got, want)
		}
	})
}

// RectsOverlap reports whether two tile rectangles, each given as top
// row, left column, width and height in tiles, share at least one
// tile.
func RectsOverlap(r0, c0, w0, h0, r1, c1, w1, h1 int) bool {
	return r0 < r1+h1 && r1 < r0+h0 && c0 < c1+w1 && c1 < c0+w0
}

func AssertNoOverlap(t *testing.T, name string, r0, c0, w0, h0, r1, c1, w1, h1 int) {
	t.Run(name, func(t *testing.T) {
		if RectsOverlap(r0, c0, w0, h0, r1, c1, w1, h1) {
			t.Errorf("rectangles overlap: (%d,%d %dx%d) and (%d,%d %dx%d)", r0, c0, w0, h0, r1, c1, w1, h1)
		}
	})
}
