package sprite

import (
	"image"
	"image/color"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Sprite is a fully resolved sprite: its name (the base name of the
// directory it was read from), its dimensions, and its color matrix.
// Pixels[row][col] with alpha 0 means the pixel is transparent.
type Sprite struct {
	Name   string
	Width  int
	Height int
	Pixels [][]color.RGBA
}

// Load reads the sprite stored in the passed directory: grid.txt is
// required, palette.txt is optional.
func Load(dir string) (*Sprite, error) {
	name := filepath.Base(filepath.Clean(dir))

	g, err := LoadGrid(filepath.Join(dir, GridFileName))
	if err != nil {
		return nil, errors.Wrapf(err, "loading sprite %s", name)
	}
	p, err := LoadPalette(filepath.Join(dir, PaletteFileName))
	if err != nil {
		return nil, errors.Wrapf(err, "loading sprite %s", name)
	}
	px, err := g.Resolve(p)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving colors of sprite %s", name)
	}

	glog.V(3).Infof("loaded sprite %q: %dx%d px, %d palette entries", name, g.Width, g.Height, p.Len())

	return &Sprite{
		Name:   name,
		Width:  g.Width,
		Height: g.Height,
		Pixels: px,
	}, nil
}

// Image renders the sprite's color matrix into a fresh RGBA image at
// 1:1 scale. Transparent cells stay at the zero pixel value.
func (s *Sprite) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	for y, row := range s.Pixels {
		for x, c := range row {
			if c.A == 0 {
				continue
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
