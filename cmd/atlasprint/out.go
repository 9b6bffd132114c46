package main

import (
	"image"

	"github.com/nfnt/resize"

	"badc0de.net/pkg/gridpack/imageprint"
)

func out(img image.Image, fn string) {
	if *downsize {
		termSize, err := GetTermSize()
		if err == nil {
			if (termSize.XPixel != 0 && termSize.YPixel != 0) && (*rasterm || *iterm) {
				// Prefer the terminal's pixel size when there is a chance an
				// image renderer rather than character cells will draw it.
				img = resize.Thumbnail(termSize.XPixel/2, termSize.YPixel/2, img, resize.Lanczos3)
			} else {
				// One image pixel prints as two characters on one row.
				img = resize.Thumbnail(termSize.Cols/2, termSize.Rows, img, resize.Lanczos3)
			}
		}
	}

	if *rasterm {
		imageprint.PrintRasTerm(img)
	} else if !*col {
		imageprint.PrintNoColor(img, *blanks)
	} else if *iterm {
		imageprint.PrintITerm(img, fn)
	} else if *col256 {
		imageprint.Print256Color(img, *blanks)
	} else {
		imageprint.Print24bit(img, *blanks)
	}
}
