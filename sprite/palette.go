package sprite

// This file contains code directly related to reading the
// palette.txt format and resolving cell values into colors.

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// Transparent is the grid cell value reserved for "no color". Resolving
// it yields the zero color.RGBA, whose alpha of 0 marks the cell
// transparent everywhere else in this module.
const Transparent = "."

// Palette maps 1-2 character aliases to colors.
//
// Aliases are case sensitive, but two aliases differing only in case
// cannot coexist. "." and ".." are reserved and cannot be bound.
type Palette struct {
	entries map[string]color.RGBA
}

// ParseHexColor parses an #RRGGBB string into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("color must start with '#', got %q", s)
	}
	if len(s) != 7 {
		return color.RGBA{}, fmt.Errorf("color must be #RRGGBB, got %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex digits in color %q", s)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xFF,
	}, nil
}

func validAlias(alias string) error {
	if len(alias) < 1 || len(alias) > 2 {
		return fmt.Errorf("alias must be 1-2 characters, got %q", alias)
	}
	if strings.HasPrefix(alias, "#") {
		return fmt.Errorf("alias cannot start with '#': %q", alias)
	}
	if alias == "." || alias == ".." {
		return fmt.Errorf("%q is reserved", alias)
	}
	for _, r := range alias {
		if r > 0xFF || !unicode.IsPrint(r) {
			return fmt.Errorf("alias must be printable extended ASCII, got %q", alias)
		}
	}
	return nil
}

// ReadPalette reads the palette.txt format from the passed reader.
//
// One binding per line, as ALIAS=#RRGGBB or ALIAS=transparent. Lines
// starting with '#' are comments; blank lines are skipped.
func ReadPalette(r io.Reader) (Palette, error) {
	p := Palette{entries: map[string]color.RGBA{}}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		eq := strings.Index(line, "=")
		if eq < 0 {
			return p, fmt.Errorf("line %d: expected ALIAS=COLOR, got %q", lineNum, line)
		}
		alias := strings.TrimSpace(line[:eq])
		val := strings.TrimSpace(line[eq+1:])

		if err := validAlias(alias); err != nil {
			return p, fmt.Errorf("line %d: %v", lineNum, err)
		}
		for existing := range p.entries {
			if strings.EqualFold(existing, alias) && existing != alias {
				return p, fmt.Errorf("line %d: alias %q conflicts with existing alias %q (case-insensitive duplicates not allowed)", lineNum, alias, existing)
			}
		}
		if _, ok := p.entries[alias]; ok {
			return p, fmt.Errorf("line %d: duplicate alias %q", lineNum, alias)
		}

		if strings.EqualFold(val, "transparent") {
			p.entries[alias] = color.RGBA{}
			continue
		}
		c, err := ParseHexColor(val)
		if err != nil {
			return p, fmt.Errorf("line %d: %v", lineNum, err)
		}
		p.entries[alias] = c
	}
	if err := scanner.Err(); err != nil {
		return p, errors.Wrap(err, "reading palette")
	}
	return p, nil
}

// LoadPalette reads a palette from the file at the passed path. A
// missing file is not an error: sprites drawn purely with inline colors
// need no palette, so an empty one is returned.
func LoadPalette(path string) (Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Palette{entries: map[string]color.RGBA{}}, nil
		}
		return Palette{}, errors.Wrapf(err, "opening palette file %s", path)
	}
	defer f.Close()

	p, err := ReadPalette(f)
	if err != nil {
		return p, errors.Wrapf(err, "reading palette file %s", path)
	}
	return p, nil
}

// Resolve turns a single grid cell value into a color. The zero
// color.RGBA is returned for transparent cells.
func (p Palette) Resolve(value string) (color.RGBA, error) {
	if value == Transparent {
		return color.RGBA{}, nil
	}
	if c, ok := p.entries[value]; ok {
		return c, nil
	}
	if strings.HasPrefix(value, "#") {
		return ParseHexColor(value)
	}
	return color.RGBA{}, fmt.Errorf("unknown palette alias %q; define it in palette.txt or use #RRGGBB", value)
}

// Len returns the number of bound aliases, not counting the built-in
// transparent value.
func (p Palette) Len() int {
	return len(p.entries)
}
