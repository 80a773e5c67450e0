// Package raster loads page background images for the overlay renderer.
// PNG and JPEG bytes are embedded as-is; BMP and TIFF sources are transcoded
// to PNG since the PDF backend only embeds png, jpeg and gif streams.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Page is a decoded page background ready for embedding.
type Page struct {
	Width  int
	Height int
	// Format is the embed type understood by the PDF backend: PNG, JPEG
	// or GIF.
	Format string
	Data   []byte
}

// Load reads and validates one raster file.
func Load(path string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Decode validates raster bytes and normalizes the container format.
func Decode(data []byte) (*Page, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode raster: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("raster has empty dimensions %dx%d", cfg.Width, cfg.Height)
	}

	switch format {
	case "png":
		return &Page{Width: cfg.Width, Height: cfg.Height, Format: "PNG", Data: data}, nil
	case "jpeg":
		return &Page{Width: cfg.Width, Height: cfg.Height, Format: "JPEG", Data: data}, nil
	case "gif":
		return &Page{Width: cfg.Width, Height: cfg.Height, Format: "GIF", Data: data}, nil
	}

	// bmp, tiff: full decode and re-encode.
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s raster: %w", format, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("transcode %s raster to png: %w", format, err)
	}
	return &Page{Width: cfg.Width, Height: cfg.Height, Format: "PNG", Data: buf.Bytes()}, nil
}

// extensions are probed in order when resolving a page file.
var extensions = []string{"png", "jpg", "jpeg", "bmp", "tiff", "gif"}

// DirSource resolves 1-based page numbers to raster files named
// page_<n>.<ext> inside a directory.
type DirSource struct {
	dir string
}

func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Path returns the on-disk location for page n, or an error satisfying
// os.ErrNotExist when no candidate file is present.
func (s *DirSource) Path(n int) (string, error) {
	for _, ext := range extensions {
		p := filepath.Join(s.dir, fmt.Sprintf("page_%d.%s", n, ext))
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("page %d raster in %s: %w", n, s.dir, os.ErrNotExist)
}

// Page loads the background raster for 1-based page n.
func (s *DirSource) Page(n int) (*Page, error) {
	path, err := s.Path(n)
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Count reports how many consecutive pages starting at 1 have raster files.
func (s *DirSource) Count() int {
	n := 0
	for {
		if _, err := s.Path(n + 1); err != nil {
			return n
		}
		n++
	}
}
