package compositor

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// Scale upscales the sheet by an integer factor using nearest neighbor
// sampling, which keeps pixel art crisp. A factor of 1 returns the
// image unchanged.
func Scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	size := img.Bounds().Size()
	return resize.Resize(uint(size.X*factor), uint(size.Y*factor), img, resize.NearestNeighbor)
}

// WriteImageFile writes img as a PNG to path atomically, staging it in
// a temporary file in the same directory and renaming it into place.
func WriteImageFile(path string, img image.Image) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "creating temporary image file for %s", path)
	}
	defer os.Remove(f.Name())

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrapf(err, "encoding %s", path)
	}
	if err := f.Chmod(0644); err != nil {
		f.Close()
		return errors.Wrap(err, "setting image file mode")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "closing temporary image file")
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return errors.Wrapf(err, "replacing image file %s", path)
	}
	return nil
}

// ScaledName derives the file name for an upscaled export:
// "atlas.png" at factor 4 becomes "atlas_4x.png". Factor 1 returns the
// name unchanged.
func ScaledName(name string, factor int) string {
	if factor <= 1 {
		return name
	}
	ext := filepath.Ext(name)
	base := name[:len(name)-len(ext)]
	return fmt.Sprintf("%s_%dx%s", base, factor, ext)
}
