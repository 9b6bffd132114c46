package atlas

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"badc0de.net/pkg/gridpack/sprite"
)

// Resolved is a sprite that passed validation against the tile size,
// together with its tile span.
type Resolved struct {
	Sprite *sprite.Sprite
	TilesX int
	TilesY int
}

// LoadSprites reads every sprite directory concurrently. Results come
// back in input order; a directory that fails to load becomes a skip,
// not an error. The returned error is only ever the context's.
func LoadSprites(ctx context.Context, dirs []string) ([]*sprite.Sprite, []Skip, error) {
	loaded := make([]*sprite.Sprite, len(dirs))
	failed := make([]*Skip, len(dirs))

	g, ctx := errgroup.WithContext(ctx)
	for i, dir := range dirs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := sprite.Load(dir)
			if err != nil {
				failed[i] = &Skip{
					Name:   filepath.Base(filepath.Clean(dir)),
					Reason: err.Error(),
				}
				return nil
			}
			loaded[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var sprites []*sprite.Sprite
	var skips []Skip
	for i := range dirs {
		if failed[i] != nil {
			skips = append(skips, *failed[i])
			continue
		}
		sprites = append(sprites, loaded[i])
	}
	return sprites, skips, nil
}

// ResolveSprites validates sprites against the tile size and computes
// tile spans. A zero ts asks for auto-detection: the first sprite in
// input order fixes the tile size for the whole run, and every sprite
// is then validated against that fixed value. Sprites whose pixel
// dimensions are not an exact multiple of the tile size become skips.
func ResolveSprites(sprites []*sprite.Sprite, ts TileSize) ([]Resolved, []Skip, TileSize, error) {
	if ts.IsZero() {
		if len(sprites) == 0 {
			return nil, nil, ts, fmt.Errorf("no tile size determinable: no sprite loaded and no explicit size given")
		}
		ts = TileSize{W: sprites[0].Width, H: sprites[0].Height}
		glog.V(2).Infof("tile size auto-detected from sprite %q: %s", sprites[0].Name, ts)
	}

	var resolved []Resolved
	var skips []Skip
	for _, s := range sprites {
		if s.Width%ts.W != 0 || s.Height%ts.H != 0 {
			skips = append(skips, Skip{
				Name:   s.Name,
				Reason: fmt.Sprintf("grid %dx%d is not a multiple of tile size %s", s.Width, s.Height, ts),
			})
			continue
		}
		resolved = append(resolved, Resolved{
			Sprite: s,
			TilesX: s.Width / ts.W,
			TilesY: s.Height / ts.H,
		})
	}
	return resolved, skips, ts, nil
}
