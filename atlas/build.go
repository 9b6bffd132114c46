package atlas

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/gridpack/compositor"
)

// DefaultAtlasName is the file name of the sheet bitmap unless the
// caller picks another.
const DefaultAtlasName = "atlas.png"

// DefaultIndexName is the file name of the index document unless the
// caller picks another.
const DefaultIndexName = "index.json"

// Params configures one packing run.
type Params struct {
	// SpriteDirs are the sprite directories to pack, in discovery
	// order.
	SpriteDirs []string

	// TileSize fixes the tile size explicitly. The zero value selects
	// auto-detection: the prior index, then the first loaded sprite.
	TileSize TileSize

	// Columns fixes the sheet width in tiles. Zero selects the prior
	// index's count, or a square-ish sheet computed from the total
	// tile area. Negative values are a configuration error.
	Columns int

	// Reorder discards all prior placements and repacks from scratch.
	// Semantic metadata is still carried over.
	Reorder bool

	// Prior is the index document from the previous run, or nil on a
	// first run.
	Prior *Index
}

// Result is the outcome of one packing run, ready to be written.
type Result struct {
	Index   *Index
	Image   *image.RGBA
	Rows    int
	Skipped []Skip

	// EmptyMetadata counts packed sprites whose description, tags and
	// tile_type are all still empty.
	EmptyMetadata int
}

// Build runs one packing pass: load sprites, fix the tile size,
// validate, plan placements, merge the index and composite the sheet.
// Nothing is written to disk; pair it with WriteArtifacts.
//
// Per-sprite failures (unreadable sprite, size not a multiple of the
// tile size, sprite wider than the sheet) are reported in
// Result.Skipped and logged; they never fail the run. An error here
// means the run as a whole cannot produce output.
func Build(ctx context.Context, p Params) (*Result, error) {
	if p.Columns < 0 {
		return nil, fmt.Errorf("column count must be positive, got %d", p.Columns)
	}

	// Prior placements and sheet geometry are ignored under reorder,
	// but the prior document still feeds metadata into the merge.
	layoutPrior := p.Prior
	if p.Reorder {
		layoutPrior = nil
	}

	sprites, skips, err := LoadSprites(ctx, p.SpriteDirs)
	if err != nil {
		return nil, err
	}

	ts := p.TileSize
	if ts.IsZero() && layoutPrior != nil {
		ts = layoutPrior.TileSize
		glog.V(2).Infof("tile size %s taken from prior index", ts)
	}

	resolved, sizeSkips, ts, err := ResolveSprites(sprites, ts)
	if err != nil {
		return nil, err
	}
	skips = append(skips, sizeSkips...)

	columns := pickColumns(p.Columns, layoutPrior, resolved)

	reqs := make([]Request, 0, len(resolved))
	for _, r := range resolved {
		reqs = append(reqs, Request{Name: r.Sprite.Name, TilesX: r.TilesX, TilesY: r.TilesY})
	}
	positions, planSkips := Plan(reqs, p.Prior, columns, p.Reorder)
	skips = append(skips, planSkips...)

	ix, empty := MergeIndex(p.Prior, resolved, positions, ts, columns)

	rows := 0
	placed := make([]compositor.Placed, 0, len(resolved))
	for _, r := range resolved {
		pos, ok := positions[r.Sprite.Name]
		if !ok {
			continue
		}
		if pos.Row+r.TilesY > rows {
			rows = pos.Row + r.TilesY
		}
		placed = append(placed, compositor.Placed{Sprite: r.Sprite, Row: pos.Row, Col: pos.Col})
	}
	if rows < 1 {
		rows = 1
	}

	img := compositor.CompositeAtlas(placed, ts.W, ts.H, columns, rows)

	for _, s := range skips {
		glog.Warning(s.String())
	}
	glog.V(1).Infof("packed %d sprites into a %dx%d tile sheet (%d skipped)", len(ix.Sprites), columns, rows, len(skips))

	return &Result{
		Index:         ix,
		Image:         img,
		Rows:          rows,
		Skipped:       skips,
		EmptyMetadata: empty,
	}, nil
}

// pickColumns decides the sheet width in tiles: an explicit count
// wins, then the prior index's count, then ceil(sqrt(total tile
// area)), widened if needed so the widest sprite can fit at all.
func pickColumns(explicit int, prior *Index, resolved []Resolved) int {
	if explicit > 0 {
		return explicit
	}
	if prior != nil {
		if prior.Columns > 0 {
			return prior.Columns
		}
		glog.Warningf("prior index has a column count of %d, recomputing", prior.Columns)
	}

	units := 0
	widest := 1
	for _, r := range resolved {
		units += r.TilesX * r.TilesY
		if r.TilesX > widest {
			widest = r.TilesX
		}
	}
	columns := int(math.Ceil(math.Sqrt(float64(units))))
	if columns < 1 {
		columns = 1
	}
	if columns < widest {
		columns = widest
	}
	return columns
}

// WriteArtifacts writes the sheet bitmap and the index document under
// dir. Both files are fully staged as temporary files first and then
// renamed into place, so an interrupted run replaces both or neither
// and never leaves partial output.
func WriteArtifacts(dir, atlasName, indexName string, img image.Image, ix *Index) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "creating output directory %s", dir)
	}

	af, err := os.CreateTemp(dir, atlasName+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "creating temporary atlas file")
	}
	defer os.Remove(af.Name())
	if err := png.Encode(af, img); err != nil {
		af.Close()
		return errors.Wrapf(err, "encoding atlas %s", atlasName)
	}
	if err := af.Chmod(0644); err != nil {
		af.Close()
		return errors.Wrap(err, "setting atlas file mode")
	}
	if err := af.Close(); err != nil {
		return errors.Wrap(err, "closing temporary atlas file")
	}

	inf, err := os.CreateTemp(dir, indexName+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "creating temporary index file")
	}
	defer os.Remove(inf.Name())
	if err := ix.Write(inf); err != nil {
		inf.Close()
		return err
	}
	if err := inf.Chmod(0644); err != nil {
		inf.Close()
		return errors.Wrap(err, "setting index file mode")
	}
	if err := inf.Close(); err != nil {
		return errors.Wrap(err, "closing temporary index file")
	}

	if err := os.Rename(af.Name(), filepath.Join(dir, atlasName)); err != nil {
		return errors.Wrapf(err, "replacing %s", atlasName)
	}
	if err := os.Rename(inf.Name(), filepath.Join(dir, indexName)); err != nil {
		return errors.Wrapf(err, "replacing %s", indexName)
	}
	return nil
}
