package mask

import "image"

// DefaultAlpha is the blend factor used for the overlay preview.
const DefaultAlpha = 0.7

// Blend returns img*(1-alpha) + m*alpha per channel, a translucent
// highlight of the mask over the original. A nil mask returns img
// unchanged; alpha 0 reproduces img, alpha 1 reproduces the mask.
func Blend(img, m *image.RGBA, alpha float64) *image.RGBA {
	if m == nil {
		return img
	}

	out := image.NewRGBA(img.Bounds())
	copy(out.Pix, img.Pix)

	sect := img.Bounds().Intersect(m.Bounds())
	for y := sect.Min.Y; y < sect.Max.Y; y++ {
		oi := out.PixOffset(sect.Min.X, y)
		mi := m.PixOffset(sect.Min.X, y)
		for x := sect.Min.X; x < sect.Max.X; x++ {
			for c := 0; c < 3; c++ {
				out.Pix[oi+c] = lerp(out.Pix[oi+c], m.Pix[mi+c], alpha)
			}
			out.Pix[oi+3] = 0xff
			oi += 4
			mi += 4
		}
	}
	return out
}

func lerp(a, b uint8, alpha float64) uint8 {
	return uint8(float64(a)*(1-alpha) + float64(b)*alpha + 0.5)
}
