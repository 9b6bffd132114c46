package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"badc0de.net/pkg/flagutil/v1"

	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"

	"badc0de.net/pkg/gridpack/atlas"
	"badc0de.net/pkg/gridpack/compositor"
	"badc0de.net/pkg/gridpack/config"
	"badc0de.net/pkg/gridpack/imageprint"
	"badc0de.net/pkg/gridpack/paths"
)

var (
	outDir     = flag.String("out", "", "output directory for the sheet and index (required)")
	tileSize   = flag.String("tile_size", "", "tile size as WIDTHxHEIGHT, e.g. 32x32; default is the prior index's size, else the first sprite's")
	columns    = flag.Int("columns", 0, "fixed column count for the sheet; unset picks the prior index's count, else computes one")
	reorder    = flag.Bool("reorder", false, "discard prior placements and repack from scratch")
	atlasName  = flag.String("atlas_name", atlas.DefaultAtlasName, "file name of the sheet image")
	indexName  = flag.String("index_name", atlas.DefaultIndexName, "file name of the index document")
	configPath = flag.String("config", "", "gridpack.yaml with per-project defaults; empty reads ./gridpack.yaml when present")
	scalesFlag = flag.String("scales", "", "comma separated extra upscale factors to export, e.g. 2,4")
	printSheet = flag.Bool("print", false, "print the finished sheet to the terminal")
	banner     = flag.Bool("banner", false, "print a startup banner")

	includeGlobs paths.StringList
	excludeGlobs paths.StringList
)

func init() {
	paths.SetupGlobListFlag("include", &includeGlobs, "glob pattern selecting sprite directories; repeatable")
	paths.SetupGlobListFlag("exclude", &excludeGlobs, "glob pattern removing directories matched by -include; repeatable")
}

func parseScales(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("bad scale factor %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

// applyConfig fills in settings the command line left unset from the
// project config file.
func applyConfig(cfg *config.Config, setFlags map[string]bool) {
	if !setFlags["out"] {
		*outDir = cfg.Output
	}
	if !setFlags["tile_size"] && cfg.TileSize != "" {
		*tileSize = cfg.TileSize
	}
	if !setFlags["columns"] && cfg.Columns > 0 {
		*columns = cfg.Columns
	}
	if !setFlags["atlas_name"] {
		*atlasName = cfg.AtlasName
	}
	if !setFlags["index_name"] {
		*indexName = cfg.IndexName
	}
	if !setFlags["include"] {
		includeGlobs = append(includeGlobs, cfg.Include...)
	}
	if !setFlags["exclude"] {
		excludeGlobs = append(excludeGlobs, cfg.Exclude...)
	}
}

func main() {
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if *banner {
		figure.NewFigure("gridpack", "", true).Print()
	}

	setFlags := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	cfgPath := *configPath
	if cfgPath == "" {
		if _, err := os.Stat(config.DefaultFileName); err == nil {
			cfgPath = config.DefaultFileName
		}
	}
	explicitDirs := flag.Args()
	var scales []int
	if cfgPath != "" {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			glog.Fatal(err)
		}
		applyConfig(cfg, setFlags)
		if len(explicitDirs) == 0 && len(includeGlobs) == 0 {
			explicitDirs = cfg.Sprites
		}
		if !setFlags["scales"] {
			scales = cfg.Scales
		}
	}
	if *scalesFlag != "" && setFlags["scales"] {
		var err error
		if scales, err = parseScales(*scalesFlag); err != nil {
			glog.Fatal(err)
		}
	}

	if *outDir == "" {
		glog.Fatal("-out is required")
	}

	var ts atlas.TileSize
	if *tileSize != "" {
		var err error
		if ts, err = atlas.ParseTileSize(*tileSize); err != nil {
			glog.Fatal(err)
		}
	}

	if setFlags["columns"] && *columns <= 0 {
		glog.Fatalf("-columns must be positive, got %d", *columns)
	}

	dirs, err := paths.Discover(includeGlobs, excludeGlobs, explicitDirs)
	if err != nil {
		glog.Fatal(err)
	}

	indexPath := filepath.Join(*outDir, *indexName)
	prior, err := atlas.LoadIndex(indexPath)
	if err != nil {
		glog.Warningf("ignoring unreadable prior index: %v", err)
		prior = nil
	}

	res, err := atlas.Build(context.Background(), atlas.Params{
		SpriteDirs: dirs,
		TileSize:   ts,
		Columns:    *columns,
		Reorder:    *reorder,
		Prior:      prior,
	})
	if err != nil {
		glog.Fatal(err)
	}

	if err := atlas.WriteArtifacts(*outDir, *atlasName, *indexName, res.Image, res.Index); err != nil {
		glog.Fatal(err)
	}

	for _, scale := range scales {
		if scale <= 1 {
			// Scale 1 is the sheet itself, already written.
			continue
		}
		name := compositor.ScaledName(*atlasName, scale)
		img := compositor.Scale(res.Image, scale)
		if err := compositor.WriteImageFile(filepath.Join(*outDir, name), img); err != nil {
			glog.Fatal(err)
		}
		fmt.Printf("Exported %s (%dx%d)\n", filepath.Join(*outDir, name), img.Bounds().Dx(), img.Bounds().Dy())
	}

	sheetPath := filepath.Join(*outDir, *atlasName)
	fmt.Printf("Atlas: %s (%dx%d, %dx%d tiles)\n",
		sheetPath, res.Image.Bounds().Dx(), res.Image.Bounds().Dy(), res.Index.Columns, res.Rows)
	fmt.Printf("Index: %s (%d sprite(s))\n", indexPath, len(res.Index.Sprites))
	if res.EmptyMetadata > 0 {
		fmt.Printf("Hint: %d sprite(s) have empty description/tags/tile_type; edit %s to fill them in\n",
			res.EmptyMetadata, indexPath)
	}

	if *printSheet {
		imageprint.Print24bit(res.Image, true)
	}
}
