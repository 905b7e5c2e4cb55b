package mask

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func gradientImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 40), uint8(y * 40), 200, 255})
		}
	}
	return img
}

func grayMask(w, h int) *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetRGBA(x, y, color.RGBA{128, 128, 128, 255})
		}
	}
	m.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	return m
}

func TestBlendAbsentMask(t *testing.T) {
	img := gradientImage(3, 3)
	require.Same(t, img, Blend(img, nil, DefaultAlpha))
	require.Same(t, img, Blend(img, nil, 0))
	require.Same(t, img, Blend(img, nil, 1))
}

func TestBlendAlphaIdentities(t *testing.T) {
	img := gradientImage(4, 4)
	m := grayMask(4, 4)

	// alpha 0: the original image, untouched.
	got := Blend(img, m, 0)
	require.Equal(t, img.Pix, got.Pix)

	// alpha 1: the mask.
	got = Blend(img, m, 1)
	require.Equal(t, m.Pix, got.Pix)
}

func TestBlendInterpolates(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{0, 0, 0, 255})
	m := image.NewRGBA(image.Rect(0, 0, 1, 1))
	m.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})

	got := Blend(img, m, 0.7)
	// 0*0.3 + 255*0.7 = 178.5, rounded to 179.
	require.Equal(t, color.RGBA{179, 179, 179, 255}, got.RGBAAt(0, 0))
}

func TestBlendDoesNotMutateInputs(t *testing.T) {
	img := gradientImage(2, 2)
	m := grayMask(2, 2)
	imgBefore := append([]uint8(nil), img.Pix...)
	maskBefore := append([]uint8(nil), m.Pix...)

	Blend(img, m, 0.5)

	require.Equal(t, imgBefore, img.Pix)
	require.Equal(t, maskBefore, m.Pix)
}
