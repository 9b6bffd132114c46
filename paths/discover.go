// Package paths locates the sprite directories a packing run reads.
//
// Callers either name directories explicitly or give include/exclude
// glob patterns; either way the result is an ordered list of
// directories with unique base names, each holding a grid.txt.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/gridpack/sprite"
)

// Discover expands the passed include and exclude glob patterns, or
// validates explicitly named directories, into the ordered list of
// sprite directories for one packing run.
//
// Explicit directories and glob patterns are mutually exclusive. In
// glob mode, matches that are not directories or have no grid.txt are
// quietly ignored, and the result is ordered by directory base name.
// Explicit directories are kept in the order given, and each must be
// a directory holding a grid.txt.
//
// Two discovered directories with the same base name would collide in
// the index, so the first in discovery order wins and the loser is
// dropped with a warning.
func Discover(include, exclude, explicit []string) ([]string, error) {
	if len(explicit) > 0 && len(include) > 0 {
		return nil, fmt.Errorf("cannot combine positional sprite directories with -include/-exclude")
	}

	if len(explicit) > 0 {
		for _, dir := range explicit {
			fi, err := os.Stat(dir)
			if err != nil {
				return nil, errors.Wrapf(err, "sprite directory %s", dir)
			}
			if !fi.IsDir() {
				return nil, fmt.Errorf("not a directory: %s", dir)
			}
			if !hasGrid(dir) {
				return nil, fmt.Errorf("no %s in %s; not a sprite directory", sprite.GridFileName, dir)
			}
		}
		return dedupeNames(explicit), nil
	}

	if len(include) == 0 {
		return nil, fmt.Errorf("no sprite directories given; pass directories as arguments or use -include GLOB")
	}

	matched := map[string]bool{}
	for _, pattern := range include {
		ms, err := filepath.Glob(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "include pattern %q", pattern)
		}
		for _, m := range ms {
			fi, err := os.Stat(m)
			if err != nil || !fi.IsDir() {
				continue
			}
			if !hasGrid(m) {
				glog.V(2).Infof("ignoring %s: no %s", m, sprite.GridFileName)
				continue
			}
			abs, err := filepath.Abs(m)
			if err != nil {
				return nil, errors.Wrapf(err, "resolving %s", m)
			}
			matched[abs] = true
		}
	}

	for _, pattern := range exclude {
		ms, err := filepath.Glob(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "exclude pattern %q", pattern)
		}
		for _, m := range ms {
			abs, err := filepath.Abs(m)
			if err != nil {
				continue
			}
			delete(matched, abs)
		}
	}

	if len(matched) == 0 {
		return nil, fmt.Errorf("no sprite directories matched; pass directories as arguments or use -include GLOB")
	}

	dirs := make([]string, 0, len(matched))
	for dir := range matched {
		dirs = append(dirs, dir)
	}
	sort.Slice(dirs, func(i, j int) bool {
		ni, nj := filepath.Base(dirs[i]), filepath.Base(dirs[j])
		if ni != nj {
			return ni < nj
		}
		return dirs[i] < dirs[j]
	})

	return dedupeNames(dirs), nil
}

func hasGrid(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, sprite.GridFileName))
	return err == nil
}

// dedupeNames drops directories whose base name was already taken by
// an earlier one. The same directory named twice is dropped quietly;
// distinct directories sharing a base name draw a warning.
func dedupeNames(dirs []string) []string {
	seen := map[string]string{}
	var out []string
	for _, dir := range dirs {
		cleaned := filepath.Clean(dir)
		name := filepath.Base(cleaned)
		if prev, ok := seen[name]; ok {
			if prev != cleaned {
				glog.Warningf("sprite name %q appears more than once (%s and %s); keeping the first", name, prev, cleaned)
			}
			continue
		}
		seen[name] = cleaned
		out = append(out, dir)
	}
	return out
}
