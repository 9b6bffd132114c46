package atlas

// This file contains code directly related to reading and writing the
// index document, the only state that survives between packing runs.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// TileSize is the pixel size of one tile. It is fixed for a packing
// run before any sprite is validated against it.
type TileSize struct {
	W int
	H int
}

// IsZero reports whether the tile size is still unset, meaning it
// should be auto-detected.
func (t TileSize) IsZero() bool {
	return t.W == 0 && t.H == 0
}

func (t TileSize) String() string {
	return fmt.Sprintf("%dx%d", t.W, t.H)
}

// ParseTileSize parses a WIDTHxHEIGHT string such as "32x32".
func ParseTileSize(s string) (TileSize, error) {
	parts := strings.Split(s, "x")
	if len(parts) != 2 {
		return TileSize{}, fmt.Errorf("tile size must be WIDTHxHEIGHT, e.g. 32x32; got %q", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return TileSize{}, fmt.Errorf("tile size must be WIDTHxHEIGHT, e.g. 32x32; got %q", s)
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return TileSize{}, fmt.Errorf("tile size must be WIDTHxHEIGHT, e.g. 32x32; got %q", s)
	}
	if w < 1 || h < 1 {
		return TileSize{}, fmt.Errorf("tile size must be positive, got %dx%d", w, h)
	}
	return TileSize{W: w, H: h}, nil
}

// MarshalJSON stores the tile size as a [width, height] pair.
func (t TileSize) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{t.W, t.H})
}

func (t *TileSize) UnmarshalJSON(b []byte) error {
	var pair []int
	if err := json.Unmarshal(b, &pair); err != nil {
		return errors.Wrap(err, "tile_size")
	}
	if len(pair) != 2 {
		return fmt.Errorf("tile_size must be a [width, height] pair, got %d values", len(pair))
	}
	if pair[0] < 1 || pair[1] < 1 {
		return fmt.Errorf("tile_size must be positive, got %dx%d", pair[0], pair[1])
	}
	t.W, t.H = pair[0], pair[1]
	return nil
}

// Placement records where one sprite sits in the sheet and carries its
// semantic metadata. Row and Col address the top-left tile; TilesX and
// TilesY are the tile span.
//
// Description, Tags and TileType belong to external editors. So does
// anything in Extra, which holds fields this version of the packer
// does not know about; they survive a rebuild byte for byte.
type Placement struct {
	Row    int
	Col    int
	TilesX int
	TilesY int

	Description string
	Tags        []string
	TileType    string

	Extra map[string]json.RawMessage
}

var placementKnownFields = []string{
	"row", "col", "tiles_x", "tiles_y", "description", "tags", "tile_type",
}

// MarshalJSON writes the known fields in their canonical order,
// followed by any unknown fields sorted by name.
func (p *Placement) MarshalJSON() ([]byte, error) {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	fields := []struct {
		name  string
		value interface{}
	}{
		{"row", p.Row},
		{"col", p.Col},
		{"tiles_x", p.TilesX},
		{"tiles_y", p.TilesY},
		{"description", p.Description},
		{"tags", tags},
		{"tile_type", p.TileType},
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(f.name))
		buf.WriteByte(':')
		v, err := json.Marshal(f.value)
		if err != nil {
			return nil, errors.Wrapf(err, "marshaling placement field %s", f.name)
		}
		buf.Write(v)
	}

	extraNames := make([]string, 0, len(p.Extra))
	for name := range p.Extra {
		extraNames = append(extraNames, name)
	}
	sort.Strings(extraNames)
	for _, name := range extraNames {
		buf.WriteByte(',')
		buf.WriteString(strconv.Quote(name))
		buf.WriteByte(':')
		buf.Write(p.Extra[name])
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (p *Placement) UnmarshalJSON(b []byte) error {
	var known struct {
		Row         int      `json:"row"`
		Col         int      `json:"col"`
		TilesX      int      `json:"tiles_x"`
		TilesY      int      `json:"tiles_y"`
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
		TileType    string   `json:"tile_type"`
	}
	if err := json.Unmarshal(b, &known); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for _, name := range placementKnownFields {
		delete(raw, name)
	}
	for name, v := range raw {
		// Compact to a canonical form so a rewrite of the document is
		// byte for byte reproducible whatever the input's whitespace.
		var compacted bytes.Buffer
		if err := json.Compact(&compacted, v); err != nil {
			return errors.Wrapf(err, "field %s", name)
		}
		raw[name] = json.RawMessage(compacted.Bytes())
	}
	if len(raw) == 0 {
		raw = nil
	}

	p.Row = known.Row
	p.Col = known.Col
	p.TilesX = known.TilesX
	p.TilesY = known.TilesY
	p.Description = known.Description
	p.Tags = known.Tags
	if p.Tags == nil {
		p.Tags = []string{}
	}
	p.TileType = known.TileType
	p.Extra = raw
	return nil
}

// Index is the persisted layout document: the sheet geometry plus one
// placement per packed sprite, keyed by sprite name.
type Index struct {
	TileSize TileSize              `json:"tile_size"`
	Columns  int                   `json:"columns"`
	Sprites  map[string]*Placement `json:"sprites"`
}

// ReadIndex decodes an index document from the passed reader.
func ReadIndex(r io.Reader) (*Index, error) {
	var ix Index
	dec := json.NewDecoder(r)
	if err := dec.Decode(&ix); err != nil {
		return nil, errors.Wrap(err, "decoding index")
	}
	if ix.Sprites == nil {
		ix.Sprites = map[string]*Placement{}
	}
	return &ix, nil
}

// LoadIndex reads the index document at the passed path. A missing
// file yields (nil, nil): absence of a prior index is the normal
// first-run state, not an error.
func LoadIndex(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "opening index file %s", path)
	}
	defer f.Close()

	ix, err := ReadIndex(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading index file %s", path)
	}
	return ix, nil
}

// Write encodes the index as indented JSON with a trailing newline, so
// the document stays pleasant to edit by hand.
func (ix *Index) Write(w io.Writer) error {
	b, err := json.MarshalIndent(ix, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding index")
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return errors.Wrap(err, "writing index")
	}
	return nil
}

// WriteIndexFile writes the index to path atomically: the document is
// staged in a temporary file in the same directory and renamed into
// place, so a crash never leaves a half-written index behind.
func WriteIndexFile(path string, ix *Index) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "creating temporary index file for %s", path)
	}
	defer os.Remove(f.Name())

	if err := ix.Write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Chmod(0644); err != nil {
		f.Close()
		return errors.Wrap(err, "setting index file mode")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "closing temporary index file")
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return errors.Wrapf(err, "replacing index file %s", path)
	}
	return nil
}
