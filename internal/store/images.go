// Package store reads source images from the image directory and persists
// scribble masks in the sibling mask directory. Both stores are thin
// file-backed structs; nothing is cached, every access hits the disk.
package store

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	// Codecs for the supported source formats.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

// ErrNoImages is returned by List when the image directory contains no
// supported files. The editor treats this as a fatal startup error.
var ErrNoImages = errors.New("no supported images found")

// imageExts are the source extensions List accepts, matched case-insensitively.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
}

// ImageStore reads source images from a single directory. Read-only.
type ImageStore struct {
	dir string
}

// NewImageStore creates a store over the given image directory.
func NewImageStore(dir string) *ImageStore {
	return &ImageStore{dir: dir}
}

// Dir returns the image directory path.
func (s *ImageStore) Dir() string {
	return s.dir
}

// List returns the supported image filenames in the directory, sorted
// lexicographically. Returns ErrNoImages if none are found.
func (s *ImageStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list images in %q: %w", s.dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoImages, s.dir)
	}
	sort.Strings(names)
	return names, nil
}

// Load reads and decodes the named image, converted to opaque RGB.
func (s *ImageStore) Load(name string) (*image.RGBA, error) {
	path := filepath.Join(s.dir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %q: %w", path, err)
	}
	defer f.Close()

	img, err := decodeRGB(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", path, err)
	}
	return img, nil
}

// decodeRGB decodes any supported image and flattens it to an opaque RGBA
// buffer anchored at the origin; the alpha channel is forced to 0xff so
// the result behaves as a plain 3-channel image.
func decodeRGB(r io.Reader) (*image.RGBA, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst, nil
}
