package main

import (
	"flag"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"badc0de.net/pkg/flagutil/v1"

	"github.com/golang/glog"

	"badc0de.net/pkg/gridpack/compositor"
	"badc0de.net/pkg/gridpack/sprite"
)

var (
	spriteDir = flag.String("dir", "", "sprite directory to print")
	atlasPath = flag.String("atlas", "", "path of a built sheet image to print")

	col      = flag.Bool("col", true, "whether to print in color at all")
	col256   = flag.Bool("col256", false, "whether to use 256 col instead of 24 bit")
	iterm    = flag.Bool("iterm", false, "whether to print with iterm escape code instead of 24 bit")
	rasterm  = flag.Bool("rasterm", false, "whether to print with rasterm (kitty, iterm or sixel) instead of 24 bit")
	blanks   = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	checker  = flag.Bool("checker", false, "whether to composite onto a checkerboard before printing")
	scale    = flag.Int("scale", 1, "integer upscale factor applied before printing")
	downsize = flag.Bool("downsize", true, "whether to shrink the image to the terminal size first")
)

func spriteHandler(dir string) {
	s, err := sprite.Load(dir)
	if err != nil {
		glog.Errorf("error loading sprite: %v", err)
		return
	}
	show(s.Image(), s.Name+".png")
}

func atlasHandler(path string) {
	f, err := os.Open(path)
	if err != nil {
		glog.Errorf("error opening sheet: %v", err)
		return
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		glog.Errorf("error decoding sheet: %v", err)
		return
	}
	show(img, filepath.Base(path))
}

func show(img image.Image, fn string) {
	if *scale > 1 {
		img = compositor.Scale(img, *scale)
	}
	if *checker {
		img = compositor.WithBackdrop(img, 8)
	}
	out(img, fn)
}

func main() {
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if *spriteDir == "" && *atlasPath == "" {
		glog.Fatal("pass -dir with a sprite directory or -atlas with a sheet image")
	}

	if *spriteDir != "" {
		spriteHandler(*spriteDir)
	}
	if *atlasPath != "" {
		atlasHandler(*atlasPath)
	}
}
