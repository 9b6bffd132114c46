//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package main

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"golang.org/x/crypto/ssh/terminal"
	"golang.org/x/sys/unix"
)

// TermSize is the terminal's size in character cells and, when the
// terminal reports it, in pixels.
type TermSize struct {
	Rows, Cols     uint
	XPixel, YPixel uint
}

// kittyWinSizeRE matches the <ESC>[4;<height>;<width>t report.
var kittyWinSizeRE = regexp.MustCompile(`\[4;(\d+);(\d+)t`)

func GetTermSize() (TermSize, error) {
	f, err := os.OpenFile("/dev/tty", unix.O_NOCTTY|unix.O_CLOEXEC|unix.O_NDELAY|unix.O_RDWR, 0666)
	if err == nil {
		defer f.Close()
		if sz, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ); err == nil {
			ts := TermSize{Rows: uint(sz.Row), Cols: uint(sz.Col), XPixel: uint(sz.Xpixel), YPixel: uint(sz.Ypixel)}
			if ts.XPixel == 0 && ts.YPixel == 0 && os.Getenv("TERM") == "xterm-kitty" {
				// Kitty leaves the winsize pixel fields zero; ask over the wire.
				if x, y, ok := queryPixelSize(f); ok {
					ts.XPixel, ts.YPixel = x, y
				}
			}
			return ts, nil
		}
	}

	w, h, err := terminal.GetSize(0) // or int(os.Stdin.Fd())
	if err != nil {
		return TermSize{}, err
	}
	return TermSize{Rows: uint(h), Cols: uint(w)}, nil
}

// queryPixelSize asks the terminal for its window size in pixels with
// the CSI 14t report.
//
// https://sw.kovidgoyal.net/kitty/graphics-protocol/#getting-the-window-size
func queryPixelSize(f *os.File) (x, y uint, ok bool) {
	state, err := terminal.MakeRaw(int(f.Fd()))
	if err != nil {
		return 0, 0, false
	}
	defer terminal.Restore(int(f.Fd()), state) // ignoring error

	fmt.Printf("\033[14t")
	b := make([]byte, 1)
	if _, err := os.Stdin.Read(b); err != nil || b[0] != 033 {
		return 0, 0, false
	}
	reader := bufio.NewReader(os.Stdin)
	s, err := reader.ReadString('t') // reads the remainder after escape, including t
	if err != nil {
		return 0, 0, false
	}
	matches := kittyWinSizeRE.FindStringSubmatch(s)
	if len(matches) != 3 { // 0: full match, 1: height, 2: width
		return 0, 0, false
	}
	height, errH := strconv.Atoi(matches[1])
	width, errW := strconv.Atoi(matches[2])
	if errH != nil || errW != nil {
		return 0, 0, false
	}
	return uint(width), uint(height), true
}
