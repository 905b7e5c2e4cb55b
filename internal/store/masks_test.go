package store

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPathFor(t *testing.T) {
	s := NewMaskStore("alpha")
	tests := []struct {
		name string
		want string
	}{
		{"a.png", filepath.Join("alpha", "a.png")},
		{"b.jpg", filepath.Join("alpha", "b.png")},
		{"photo.JPEG", filepath.Join("alpha", "photo.png")},
		{"scan.bmp", filepath.Join("alpha", "scan.png")},
		{"dotted.name.jpg", filepath.Join("alpha", "dotted.name.png")},
	}
	for _, tt := range tests {
		if got := s.PathFor(tt.name); got != tt.want {
			t.Errorf("PathFor(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestLoadAbsentIsNotAnError(t *testing.T) {
	s := NewMaskStore(filepath.Join(t.TempDir(), "alpha"))

	require.False(t, s.Exists("a.png"))
	m, err := s.Load("a.png")
	require.NoError(t, err)
	require.Nil(t, m)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	// Save creates the mask directory and the loaded image is
	// pixel-identical to the one written.
	s := NewMaskStore(filepath.Join(t.TempDir(), "alpha"))

	mask := image.NewRGBA(image.Rect(0, 0, 4, 4))
	gray := color.RGBA{128, 128, 128, 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			mask.SetRGBA(x, y, gray)
		}
	}
	mask.SetRGBA(1, 1, color.RGBA{255, 255, 255, 255})
	mask.SetRGBA(2, 2, color.RGBA{0, 0, 0, 255})

	path, err := s.Save("b.jpg", mask)
	require.NoError(t, err)
	require.Equal(t, s.PathFor("b.jpg"), path)
	require.True(t, s.Exists("b.jpg"))

	got, err := s.Load("b.jpg")
	require.NoError(t, err)
	require.Equal(t, mask.Bounds(), got.Bounds())
	require.Equal(t, mask.Pix, got.Pix)
}

func TestSaveOverwrites(t *testing.T) {
	s := NewMaskStore(filepath.Join(t.TempDir(), "alpha"))

	first := image.NewRGBA(image.Rect(0, 0, 2, 2))
	_, err := s.Save("a.png", first)
	require.NoError(t, err)

	second := image.NewRGBA(image.Rect(0, 0, 2, 2))
	second.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	_, err = s.Save("a.png", second)
	require.NoError(t, err)

	got, err := s.Load("a.png")
	require.NoError(t, err)
	require.EqualValues(t, 255, got.Pix[0])
}

func TestCount(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "alpha")
	s := NewMaskStore(dir)

	// Missing directory counts as zero.
	n, err := s.Count()
	require.NoError(t, err)
	require.Equal(t, 0, n)

	_, err = s.Save("a.png", image.NewRGBA(image.Rect(0, 0, 1, 1)))
	require.NoError(t, err)
	_, err = s.Save("b.jpg", image.NewRGBA(image.Rect(0, 0, 1, 1)))
	require.NoError(t, err)

	// Non-PNG files in the mask dir are not masks.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	n, err = s.Count()
	require.NoError(t, err)
	require.Equal(t, 2, n)
}
