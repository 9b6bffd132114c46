package compositor

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"badc0de.net/pkg/gridpack/sprite"
)

func solidSpriteForTest(name string, w, h int, c color.RGBA) *sprite.Sprite {
	px := make([][]color.RGBA, h)
	for y := range px {
		px[y] = make([]color.RGBA, w)
		for x := range px[y] {
			px[y][x] = c
		}
	}
	return &sprite.Sprite{Name: name, Width: w, Height: h, Pixels: px}
}

func TestCompositeAtlas(t *testing.T) {
	red := color.RGBA{R: 0xFF, A: 0xFF}
	blue := color.RGBA{B: 0xFF, A: 0xFF}

	img := CompositeAtlas([]Placed{
		{Sprite: solidSpriteForTest("red", 4, 4, red), Row: 0, Col: 0},
		{Sprite: solidSpriteForTest("blue", 8, 4, blue), Row: 1, Col: 1},
	}, 4, 4, 3, 2)

	if got, want := img.Bounds().Dx(), 12; got != want {
		t.Errorf("width: got %d; want %d", got, want)
	}
	if got, want := img.Bounds().Dy(), 8; got != want {
		t.Errorf("height: got %d; want %d", got, want)
	}

	cases := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, red},
		{3, 3, red},
		{4, 0, color.RGBA{}}, // unclaimed cell stays transparent
		{4, 4, blue},
		{11, 7, blue},
		{0, 4, color.RGBA{}},
	}
	for _, c := range cases {
		if got := img.RGBAAt(c.x, c.y); got != c.want {
			t.Errorf("pixel (%d,%d): got %v; want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestCompositeAtlasEmpty(t *testing.T) {
	img := CompositeAtlas(nil, 16, 16, 0, 0)
	if got, want := img.Bounds().Size(), image.Pt(16, 16); got != want {
		t.Errorf("empty sheet size: got %v; want %v", got, want)
	}
	if got := img.RGBAAt(8, 8); got != (color.RGBA{}) {
		t.Errorf("empty sheet pixel: got %v; want transparent", got)
	}
}

func TestScale(t *testing.T) {
	red := color.RGBA{R: 0xFF, A: 0xFF}
	src := CompositeAtlas([]Placed{
		{Sprite: solidSpriteForTest("red", 2, 2, red), Row: 0, Col: 0},
	}, 2, 2, 2, 1)

	out := Scale(src, 3)
	if got, want := out.Bounds().Size(), image.Pt(12, 6); got != want {
		t.Fatalf("scaled size: got %v; want %v", got, want)
	}
	got := color.RGBAModel.Convert(out.At(5, 5)).(color.RGBA)
	if got != red {
		t.Errorf("scaled pixel (5,5): got %v; want %v", got, red)
	}

	if same := Scale(src, 1); same != image.Image(src) {
		t.Error("factor 1 should return the image unchanged")
	}
}

func TestScaledName(t *testing.T) {
	cases := []struct {
		name   string
		factor int
		want   string
	}{
		{"atlas.png", 2, "atlas_2x.png"},
		{"atlas.png", 4, "atlas_4x.png"},
		{"atlas.png", 1, "atlas.png"},
		{"sheet", 2, "sheet_2x"},
	}
	for _, c := range cases {
		if got := ScaledName(c.name, c.factor); got != c.want {
			t.Errorf("ScaledName(%q, %d): got %q; want %q", c.name, c.factor, got, c.want)
		}
	}
}

func TestCheckerboard(t *testing.T) {
	img := Checkerboard(image.Rect(0, 0, 8, 8), 2)

	if got := img.RGBAAt(0, 0); got != checkerLight {
		t.Errorf("pixel (0,0): got %v; want light", got)
	}
	if got := img.RGBAAt(2, 0); got != checkerDark {
		t.Errorf("pixel (2,0): got %v; want dark", got)
	}
	if got := img.RGBAAt(2, 2); got != checkerLight {
		t.Errorf("pixel (2,2): got %v; want light", got)
	}
	if got := img.RGBAAt(1, 1); got != checkerLight {
		t.Errorf("pixel (1,1): got %v; want light", got)
	}
}

func TestWithBackdrop(t *testing.T) {
	green := color.RGBA{G: 0xFF, A: 0xFF}
	src := CompositeAtlas([]Placed{
		{Sprite: solidSpriteForTest("green", 2, 2, green), Row: 0, Col: 0},
	}, 2, 2, 2, 1)

	out := WithBackdrop(src, 2)
	if got := out.RGBAAt(0, 0); got != green {
		t.Errorf("covered pixel: got %v; want %v", got, green)
	}
	if got := out.RGBAAt(2, 0); got != checkerDark {
		t.Errorf("uncovered pixel: got %v; want checker dark", got)
	}
}

func TestWriteImageFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")

	red := color.RGBA{R: 0xFF, A: 0xFF}
	src := CompositeAtlas([]Placed{
		{Sprite: solidSpriteForTest("red", 2, 2, red), Row: 0, Col: 0},
	}, 2, 2, 1, 1)

	if err := WriteImageFile(path, src); err != nil {
		t.Fatalf("WriteImageFile: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening written file: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding written file: %v", err)
	}
	if got, want := img.Bounds().Size(), image.Pt(2, 2); got != want {
		t.Errorf("written size: got %v; want %v", got, want)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("stray temporary file left behind: %s", e.Name())
		}
	}
}
