// Package web serves a packed sheet, its index and a sprite gallery over HTTP.
//
// Handlers read the artifacts from disk and cache the decoded forms until
// the files change on disk, so a rebuild of the sheet is picked up on the
// next request without restarting the server.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/vincent-petithory/dataurl"

	"badc0de.net/pkg/gridpack/atlas"
	"badc0de.net/pkg/gridpack/compositor"
	"badc0de.net/pkg/gridpack/datafiles"
)

// maxScale caps the ?scale= query parameter so a request cannot ask for
// an absurdly large bitmap.
const maxScale = 16

type artifacts struct {
	img     *image.RGBA
	ix      *atlas.Index
	rawIx   []byte
	modTime time.Time
}

type Handler struct {
	artifactLock sync.Mutex
	dir          string
	atlasName    string
	indexName    string

	cached *artifacts // guarded by artifactLock
}

// NewHandler constructs a web handler serving the sheet and index found
// in dir under the passed file names.
func NewHandler(dir, atlasName, indexName string) *Handler {
	h := &Handler{
		dir:       dir,
		atlasName: atlasName,
		indexName: indexName,
	}
	return h
}

// load returns the current artifacts, re-reading them from disk when
// their modification time moved past the cached copy.
func (h *Handler) load() (*artifacts, error) {
	atlasPath := filepath.Join(h.dir, h.atlasName)
	indexPath := filepath.Join(h.dir, h.indexName)

	sa, err := os.Stat(atlasPath)
	if err != nil {
		return nil, err
	}
	si, err := os.Stat(indexPath)
	if err != nil {
		return nil, err
	}
	modTime := sa.ModTime()
	if si.ModTime().After(modTime) {
		modTime = si.ModTime()
	}

	if h.cached != nil && h.cached.modTime.Equal(modTime) {
		return h.cached, nil
	}

	f, err := os.Open(atlasPath)
	if err != nil {
		return nil, err
	}
	decoded, err := png.Decode(f)
	f.Close()
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(decoded.Bounds())
	draw.Draw(img, img.Bounds(), decoded, decoded.Bounds().Min, draw.Src)

	rawIx, err := os.ReadFile(indexPath)
	if err != nil {
		return nil, err
	}
	ix, err := atlas.ReadIndex(bytes.NewReader(rawIx))
	if err != nil {
		return nil, err
	}

	h.cached = &artifacts{img: img, ix: ix, rawIx: rawIx, modTime: modTime}
	glog.V(2).Infof("reloaded %s and %s from %s", h.atlasName, h.indexName, h.dir)
	return h.cached, nil
}

func scaleParam(r *http.Request) int {
	scale := 1
	if s := r.URL.Query().Get("scale"); s != "" {
		scale2, _ := strconv.Atoi(s)
		// ignore invalid scale
		if scale2 > 1 {
			scale = scale2
		}
	}
	if scale > maxScale {
		scale = maxScale
	}
	return scale
}

func (h *Handler) sheetHandler(w http.ResponseWriter, r *http.Request) {
	h.artifactLock.Lock()
	defer h.artifactLock.Unlock()

	art, err := h.load()
	if err != nil {
		http.Error(w, "failed to open data file", http.StatusNotFound)
		return
	}

	scale := scaleParam(r)

	generation := 1 // bump if the way we generate it changes
	mime := "image/png"
	etag := fmt.Sprintf(`W/"sheet:%d:%x:%d:%s"`, generation, art.modTime.UnixNano(), scale, mime)
	if r.Header.Get("If-None-Match") == etag {
		w.Header().Set("Cache-Control", "public; max-age=36000") // 36000 = 10h
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	img := compositor.Scale(art.img, scale)

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public; max-age=36000") // 36000 = 10h
	w.Header().Set("ETag", etag)
	w.Header().Set("Last-Modified", art.modTime.Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	png.Encode(w, img)
}

func (h *Handler) sheetGIFHandler(w http.ResponseWriter, r *http.Request) {
	h.artifactLock.Lock()
	defer h.artifactLock.Unlock()

	art, err := h.load()
	if err != nil {
		http.Error(w, "failed to open data file", http.StatusNotFound)
		return
	}

	scale := scaleParam(r)

	generation := 1 // bump if the way we generate it changes
	mime := "image/gif"
	etag := fmt.Sprintf(`W/"sheet:%d:%x:%d:%s"`, generation, art.modTime.UnixNano(), scale, mime)
	if r.Header.Get("If-None-Match") == etag {
		w.Header().Set("Cache-Control", "public; max-age=36000") // 36000 = 10h
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	img := compositor.Scale(art.img, scale)

	// Quantize to up to 255 colors, then prepend transparency so the
	// parts of the sheet no sprite covers stay see-through in the GIF.
	quantizer := quantize.MedianCutQuantizer{}
	pal := quantizer.Quantize(make(color.Palette, 0, 255), img)
	palTransparent := image.NewPaletted(img.Bounds(), append(color.Palette{color.Transparent}, pal...))
	draw.Draw(palTransparent, img.Bounds(), img, img.Bounds().Min, draw.Over)

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public; max-age=36000") // 36000 = 10h
	w.Header().Set("ETag", etag)
	w.Header().Set("Last-Modified", art.modTime.Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	gif.Encode(w, palTransparent, nil)
}

func (h *Handler) indexHandler(w http.ResponseWriter, r *http.Request) {
	h.artifactLock.Lock()
	defer h.artifactLock.Unlock()

	art, err := h.load()
	if err != nil {
		http.Error(w, "failed to open data file", http.StatusNotFound)
		return
	}

	generation := 1 // bump if the way we generate it changes
	mime := "application/json"
	etag := fmt.Sprintf(`W/"index:%d:%x:%s"`, generation, art.modTime.UnixNano(), mime)
	if r.Header.Get("If-None-Match") == etag {
		w.Header().Set("Cache-Control", "public; max-age=36000") // 36000 = 10h
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public; max-age=36000") // 36000 = 10h
	w.Header().Set("ETag", etag)
	w.Header().Set("Last-Modified", art.modTime.Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	w.Write(art.rawIx)
}

// crop copies the placement's rectangle out of the sheet.
func crop(art *artifacts, pl *atlas.Placement) *image.RGBA {
	ts := art.ix.TileSize
	rect := image.Rect(pl.Col*ts.W, pl.Row*ts.H, (pl.Col+pl.TilesX)*ts.W, (pl.Row+pl.TilesY)*ts.H)
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(out, out.Bounds(), art.img, rect.Min, draw.Src)
	return out
}

func (h *Handler) spriteHandler(w http.ResponseWriter, r *http.Request) {
	h.artifactLock.Lock()
	defer h.artifactLock.Unlock()

	art, err := h.load()
	if err != nil {
		http.Error(w, "failed to open data file", http.StatusNotFound)
		return
	}

	vars := mux.Vars(r)
	name := vars["name"]
	pl, ok := art.ix.Sprites[name]
	if !ok {
		http.Error(w, "no such sprite", http.StatusNotFound)
		return
	}

	scale := scaleParam(r)

	generation := 1 // bump if the way we generate it changes
	mime := "image/png"
	etag := fmt.Sprintf(`W/"sprite:%d:%x:%s:%d:%s"`, generation, art.modTime.UnixNano(), name, scale, mime)
	if r.Header.Get("If-None-Match") == etag {
		w.Header().Set("Cache-Control", "public; max-age=36000") // 36000 = 10h
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	img := compositor.Scale(crop(art, pl), scale)

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public; max-age=36000") // 36000 = 10h
	w.Header().Set("ETag", etag)
	w.Header().Set("Last-Modified", art.modTime.Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	png.Encode(w, img)
}

type gallerySprite struct {
	Name        string
	Row, Col    int
	TilesX      int
	TilesY      int
	Description string
	Tags        []string
	TileType    string
	DataURL     template.URL
	DisplayW    int
	DisplayH    int
}

type galleryData struct {
	Title       string
	TileW       int
	TileH       int
	Columns     int
	SpriteCount int
	AtlasName   string
	GIFName     string
	IndexName   string
	Sprites     []gallerySprite
}

var galleryTemplate = template.Must(template.New("gallery").Parse(datafiles.GalleryHTMLEmbed))

// galleryDisplayScale enlarges tiny sprites in the gallery so they are
// recognizable without zooming the page.
func galleryDisplayScale(w, h int) int {
	scale := 1
	for scale < 4 && w*(scale+1) <= 128 && h*(scale+1) <= 128 {
		scale++
	}
	return scale
}

func (h *Handler) galleryHandler(w http.ResponseWriter, r *http.Request) {
	h.artifactLock.Lock()
	defer h.artifactLock.Unlock()

	art, err := h.load()
	if err != nil {
		http.Error(w, "failed to open data file", http.StatusNotFound)
		return
	}

	names := make([]string, 0, len(art.ix.Sprites))
	for name := range art.ix.Sprites {
		names = append(names, name)
	}
	sort.Strings(names)

	data := galleryData{
		Title:       "gridpack: " + h.atlasName,
		TileW:       art.ix.TileSize.W,
		TileH:       art.ix.TileSize.H,
		Columns:     art.ix.Columns,
		SpriteCount: len(names),
		AtlasName:   h.atlasName,
		GIFName:     gifName(h.atlasName),
		IndexName:   h.indexName,
	}
	for _, name := range names {
		pl := art.ix.Sprites[name]
		img := crop(art, pl)

		b := &bytes.Buffer{}
		if err := png.Encode(b, img); err != nil {
			http.Error(w, "image could not be generated", http.StatusInternalServerError)
			return
		}
		scale := galleryDisplayScale(img.Bounds().Dx(), img.Bounds().Dy())

		data.Sprites = append(data.Sprites, gallerySprite{
			Name:        name,
			Row:         pl.Row,
			Col:         pl.Col,
			TilesX:      pl.TilesX,
			TilesY:      pl.TilesY,
			Description: pl.Description,
			Tags:        pl.Tags,
			TileType:    pl.TileType,
			DataURL:     template.URL(dataurl.New(b.Bytes(), "image/png").String()),
			DisplayW:    img.Bounds().Dx() * scale,
			DisplayH:    img.Bounds().Dy() * scale,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := galleryTemplate.Execute(w, data); err != nil {
		glog.Errorf("error rendering gallery: %v", err)
	}
}

// gifName derives the GIF route from the sheet file name, so atlas.png
// is also reachable as atlas.gif.
func gifName(atlasName string) string {
	ext := filepath.Ext(atlasName)
	return strings.TrimSuffix(atlasName, ext) + ".gif"
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.galleryHandler)
	r.HandleFunc("/"+h.atlasName, h.sheetHandler)
	r.HandleFunc("/"+gifName(h.atlasName), h.sheetGIFHandler)
	r.HandleFunc("/"+h.indexName, h.indexHandler)
	r.HandleFunc("/sprite/{name}", h.spriteHandler)
}
