//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)

package main

import (
	"golang.org/x/crypto/ssh/terminal"
)

// TermSize is the terminal's size in character cells. Platforms
// without a winsize ioctl never learn the pixel size.
type TermSize struct {
	Rows, Cols     uint
	XPixel, YPixel uint
}

func GetTermSize() (TermSize, error) {
	w, h, err := terminal.GetSize(0)
	if err != nil {
		return TermSize{}, err
	}
	return TermSize{Rows: uint(h), Cols: uint(w)}, nil
}
