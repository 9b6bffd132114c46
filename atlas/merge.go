package atlas

// MergeIndex produces the new index document from the planned
// positions. Geometry always comes from the current run; semantic
// metadata and unknown fields are carried forward from the prior
// index for sprites that already existed there, and default to empty
// for new ones. Sprites present only in the prior index are dropped,
// which is how deleted sprite directories leave the sheet.
//
// The second return value counts sprites whose semantic fields are
// all empty, so callers can hint at unfinished metadata.
func MergeIndex(prior *Index, resolved []Resolved, positions map[string]Position, ts TileSize, columns int) (*Index, int) {
	ix := &Index{
		TileSize: ts,
		Columns:  columns,
		Sprites:  map[string]*Placement{},
	}

	empty := 0
	for _, r := range resolved {
		pos, ok := positions[r.Sprite.Name]
		if !ok {
			continue
		}
		pl := &Placement{
			Row:    pos.Row,
			Col:    pos.Col,
			TilesX: r.TilesX,
			TilesY: r.TilesY,
			Tags:   []string{},
		}
		if prior != nil {
			if old, ok := prior.Sprites[r.Sprite.Name]; ok {
				pl.Description = old.Description
				if old.Tags != nil {
					pl.Tags = old.Tags
				}
				pl.TileType = old.TileType
				pl.Extra = old.Extra
			}
		}
		if pl.Description == "" && len(pl.Tags) == 0 && pl.TileType == "" {
			empty++
		}
		ix.Sprites[r.Sprite.Name] = pl
	}

	return ix, empty
}
