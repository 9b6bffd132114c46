package sprite

// This file contains code directly related to reading the
// grid.txt format.

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// GridFileName is the name of the grid file inside a sprite directory.
// A directory without one is not a sprite.
const GridFileName = "grid.txt"

// PaletteFileName is the name of the optional palette file inside a
// sprite directory.
const PaletteFileName = "palette.txt"

// Grid is the raw cell matrix of a single sprite, one string value per
// cell, exactly as stored in grid.txt. Width and Height are in cells;
// rendered at 1:1 scale, they are also the sprite's pixel dimensions.
type Grid struct {
	Width  int
	Height int
	Cells  [][]string
}

// ReadGrid reads the grid.txt format from the passed reader.
//
// One row per line, cells separated by whitespace. All rows must have
// the same number of cells as the first one. Blank lines and empty
// files are malformed.
func ReadGrid(r io.Reader) (*Grid, error) {
	var cells [][]string

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			return nil, fmt.Errorf("line %d: unexpected blank line", lineNum)
		}
		cells = append(cells, strings.Fields(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading grid")
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("grid is empty")
	}

	width := len(cells[0])
	for i, row := range cells {
		if len(row) != width {
			return nil, fmt.Errorf("line %d: expected %d values (matching row 1), got %d", i+1, width, len(row))
		}
	}

	return &Grid{Width: width, Height: len(cells), Cells: cells}, nil
}

// LoadGrid reads a grid from the file at the passed path.
func LoadGrid(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening grid file %s", path)
	}
	defer f.Close()

	g, err := ReadGrid(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading grid file %s", path)
	}
	return g, nil
}

// Resolve converts the raw cell matrix to colors using the passed
// palette. Cells that resolve to the zero color.RGBA are transparent.
func (g *Grid) Resolve(p Palette) ([][]color.RGBA, error) {
	px := make([][]color.RGBA, g.Height)
	for r, row := range g.Cells {
		px[r] = make([]color.RGBA, g.Width)
		for c, val := range row {
			col, err := p.Resolve(val)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %v", r, c, err)
			}
			px[r][c] = col
		}
	}
	return px, nil
}
