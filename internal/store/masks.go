package store

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// MaskStore maps image filenames to mask PNGs in the mask directory.
// A mask file shares its image's base name with the extension replaced
// by .png; that filename correspondence is the only relationship kept.
type MaskStore struct {
	dir string
}

// NewMaskStore creates a store over the given mask directory. The
// directory is created on first Save, not here.
func NewMaskStore(dir string) *MaskStore {
	return &MaskStore{dir: dir}
}

// Dir returns the mask directory path.
func (s *MaskStore) Dir() string {
	return s.dir
}

// PathFor returns the mask path for an image filename: base name with the
// extension swapped for .png, inside the mask directory.
func (s *MaskStore) PathFor(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(s.dir, base+".png")
}

// Exists reports whether a mask file is on disk for the named image.
func (s *MaskStore) Exists(name string) bool {
	_, err := os.Stat(s.PathFor(name))
	return err == nil
}

// Load reads the mask for the named image as an opaque RGB bitmap.
// An absent mask is not an error: Load returns (nil, nil).
func (s *MaskStore) Load(name string) (*image.RGBA, error) {
	path := s.PathFor(name)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open mask %q: %w", path, err)
	}
	defer f.Close()

	m, err := decodeRGB(f)
	if err != nil {
		return nil, fmt.Errorf("decode mask %q: %w", path, err)
	}
	return m, nil
}

// Save writes (or overwrites) the mask for the named image, creating the
// mask directory if needed. Returns the path written.
func (s *MaskStore) Save(name string, m image.Image) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create mask dir %q: %w", s.dir, err)
	}
	path := s.PathFor(name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create mask %q: %w", path, err)
	}
	if err := png.Encode(f, m); err != nil {
		f.Close()
		return "", fmt.Errorf("encode mask %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write mask %q: %w", path, err)
	}
	return path, nil
}

// Count returns the number of mask PNGs currently on disk. A missing mask
// directory counts as zero.
func (s *MaskStore) Count() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("count masks in %q: %w", s.dir, err)
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			n++
		}
	}
	return n, nil
}
