// Package sprite implements a reader for grid-authored sprites.
//
// A sprite is a directory holding a grid.txt and, optionally, a
// palette.txt. grid.txt carries one row of the image per line, with
// space-separated cell values: "." for a transparent cell, a one or two
// character palette alias, or an inline #RRGGBB color. palette.txt
// binds aliases to colors, one ALIAS=#RRGGBB per line.
//
// The reader resolves the two files into a plain color matrix; it does
// not interpret the image further. Tiling and placement are a concern
// of the atlas package.
package sprite
