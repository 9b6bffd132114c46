// Package compositor paints planned sprite placements into a single
// spritesheet image.
//
// It renders each sprite's color matrix at 1:1 scale into the sheet at
// its planned pixel offset, leaving every unclaimed pixel transparent.
// It also carries the image-level helpers around the sheet: integer
// upscaling for export, checkerboard backdrops for previewing
// transparency, and atomic PNG writes.
package compositor

import (
	"image"
	"image/draw"

	"badc0de.net/pkg/gridpack/sprite"
)

// Placed is one sprite together with its planned top-left tile
// coordinate.
type Placed struct {
	Sprite *sprite.Sprite
	Row    int
	Col    int
}

// CompositeAtlas allocates a fully transparent sheet of columns by
// rows tiles and blits every placed sprite into it at its tile
// offset. A sheet is never smaller than one tile, so an empty
// placement list yields a single transparent tile.
func CompositeAtlas(placed []Placed, tileW, tileH, columns, rows int) *image.RGBA {
	if columns < 1 {
		columns = 1
	}
	if rows < 1 {
		rows = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, columns*tileW, rows*tileH))

	for _, p := range placed {
		frame := p.Sprite.Image()
		dst := image.Rect(
			p.Col*tileW, p.Row*tileH,
			p.Col*tileW+p.Sprite.Width, p.Row*tileH+p.Sprite.Height)
		draw.Draw(img, dst, frame, image.ZP, draw.Src)
	}

	return img
}
