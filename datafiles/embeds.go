// +build go1.16

package datafiles

import "embed" // at least "import _ "embed"" is required

//go:embed gallery.html
var GalleryHTMLEmbed string

//go:embed gallery.html
var HTMLTemplatesEmbed embed.FS
