package atlas

import (
	"fmt"
	"sort"

	"github.com/golang/glog"
)

// Request asks the planner for a position for one sprite.
type Request struct {
	Name   string
	TilesX int
	TilesY int
}

// Position is a planned top-left tile coordinate.
type Position struct {
	Row int
	Col int
}

// Skip records a sprite left out of the sheet, with a human-readable
// reason. Skips never abort a run; they reduce the input set.
type Skip struct {
	Name   string
	Reason string
}

func (s Skip) String() string {
	return fmt.Sprintf("skipping %q: %s", s.Name, s.Reason)
}

// Plan computes the final tile position of every request.
//
// Unless reorder is set, requests whose name appears in the prior
// index keep their stored position, provided the stored span still
// matches the request and the rectangle is usable; their rectangles
// are claimed first. Everything else is placed by scanning the
// occupancy grid in row-major order for the first free block, in
// name order so that runs over identical inputs are reproducible.
//
// A request wider than the column count cannot ever be placed and is
// returned as a skip.
func Plan(reqs []Request, prior *Index, columns int, reorder bool) (map[string]Position, []Skip) {
	grid := NewTileGrid(columns)
	positions := make(map[string]Position, len(reqs))

	var unplaced []Request
	var skips []Skip

	if prior != nil && !reorder {
		for _, req := range reqs {
			old, ok := prior.Sprites[req.Name]
			if !ok {
				unplaced = append(unplaced, req)
				continue
			}
			if old.TilesX != req.TilesX || old.TilesY != req.TilesY {
				glog.V(2).Infof("sprite %q span changed from %dx%d to %dx%d tiles, replacing it", req.Name, old.TilesX, old.TilesY, req.TilesX, req.TilesY)
				unplaced = append(unplaced, req)
				continue
			}
			if !grid.Fits(old.Row, old.Col, req.TilesX, req.TilesY) {
				glog.Warningf("sprite %q no longer fits at its stored position (%d, %d), replacing it", req.Name, old.Row, old.Col)
				unplaced = append(unplaced, req)
				continue
			}
			grid.Mark(old.Row, old.Col, req.TilesX, req.TilesY)
			positions[req.Name] = Position{Row: old.Row, Col: old.Col}
		}
	} else {
		unplaced = append(unplaced, reqs...)
	}

	sort.SliceStable(unplaced, func(i, j int) bool {
		return unplaced[i].Name < unplaced[j].Name
	})

	for _, req := range unplaced {
		row, col, ok := grid.FirstFit(req.TilesX, req.TilesY)
		if !ok {
			skips = append(skips, Skip{
				Name:   req.Name,
				Reason: fmt.Sprintf("%d tiles wide, wider than the %d column sheet", req.TilesX, columns),
			})
			continue
		}
		grid.Mark(row, col, req.TilesX, req.TilesY)
		positions[req.Name] = Position{Row: row, Col: col}
	}

	return positions, skips
}
