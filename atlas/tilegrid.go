package atlas

// This file contains the occupancy grid used while planning
// placements. The grid is rebuilt from scratch on every run and never
// persisted.

// TileGrid is a boolean occupancy map over a fixed number of columns.
// Rows grow on demand; the sheet is unbounded downward.
type TileGrid struct {
	columns int
	cells   [][]bool
}

// NewTileGrid returns an empty grid that is columns tiles wide.
// columns must be at least 1.
func NewTileGrid(columns int) *TileGrid {
	return &TileGrid{columns: columns}
}

// Columns returns the fixed width of the grid in tiles.
func (g *TileGrid) Columns() int {
	return g.columns
}

// Rows returns the number of rows allocated so far. Rows appear as a
// side effect of Fits, Mark and FirstFit probing downward.
func (g *TileGrid) Rows() int {
	return len(g.cells)
}

func (g *TileGrid) ensureRows(n int) {
	for len(g.cells) < n {
		g.cells = append(g.cells, make([]bool, g.columns))
	}
}

// Fits reports whether a tilesX by tilesY block with its top-left
// corner at (row, col) lies within the columns and covers only free
// cells.
func (g *TileGrid) Fits(row, col, tilesX, tilesY int) bool {
	if col < 0 || row < 0 {
		return false
	}
	if col+tilesX > g.columns {
		return false
	}
	g.ensureRows(row + tilesY)
	for r := row; r < row+tilesY; r++ {
		for c := col; c < col+tilesX; c++ {
			if g.cells[r][c] {
				return false
			}
		}
	}
	return true
}

// Mark claims the tilesX by tilesY block with its top-left corner at
// (row, col).
func (g *TileGrid) Mark(row, col, tilesX, tilesY int) {
	g.ensureRows(row + tilesY)
	for r := row; r < row+tilesY; r++ {
		for c := col; c < col+tilesX; c++ {
			g.cells[r][c] = true
		}
	}
}

// FirstFit scans tile positions in row-major order (row 0 downward,
// within a row column 0 rightward) and returns the first position
// where a tilesX by tilesY block fits. ok is false when no position
// can ever fit, that is when tilesX exceeds the column count.
func (g *TileGrid) FirstFit(tilesX, tilesY int) (row, col int, ok bool) {
	if tilesX > g.columns {
		return 0, 0, false
	}
	for row = 0; ; row++ {
		g.ensureRows(row + tilesY)
		for col = 0; col <= g.columns-tilesX; col++ {
			if g.Fits(row, col, tilesX, tilesY) {
				return row, col, true
			}
		}
	}
}
