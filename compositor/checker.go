package compositor

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/bradfitz/iter"
)

var (
	checkerLight = color.RGBA{0xC8, 0xC8, 0xC8, 0xFF}
	checkerDark  = color.RGBA{0x96, 0x96, 0x96, 0xFF}
)

// Checkerboard returns a gray checkerboard of the passed bounds, with
// squares of cell by cell pixels. It is the conventional backdrop for
// previewing images with transparency.
func Checkerboard(bounds image.Rectangle, cell int) *image.RGBA {
	if cell < 1 {
		cell = 1
	}
	img := image.NewRGBA(bounds)
	for y := range iter.N(bounds.Dy()) {
		for x := range iter.N(bounds.Dx()) {
			if ((x/cell)+(y/cell))%2 == 0 {
				img.SetRGBA(bounds.Min.X+x, bounds.Min.Y+y, checkerLight)
			} else {
				img.SetRGBA(bounds.Min.X+x, bounds.Min.Y+y, checkerDark)
			}
		}
	}
	return img
}

// WithBackdrop composites img over a checkerboard of the same bounds.
func WithBackdrop(img image.Image, cell int) *image.RGBA {
	out := Checkerboard(img.Bounds(), cell)
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Over)
	return out
}
