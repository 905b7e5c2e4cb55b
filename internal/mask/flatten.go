// Package mask turns painted scribble layers into binary black/white masks
// and blends masks over their source images for preview. All functions are
// pure pixel operations on stdlib image buffers.
package mask

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
)

// ErrNoLayers is returned by Flatten when there is nothing painted. Callers
// treat it as a "nothing to save" outcome, not a failure: no file is written
// and any existing mask stays untouched.
var ErrNoLayers = errors.New("no scribble layers to flatten")

// The brush palette the paint surface offers. Black strokes mean
// erase/ignore; anything else painted is a positive mark. The classifier
// below assumes exactly this two-color palette — revisit it before adding
// brush colors.
const (
	BrushBlack = "#000000"
	BrushGray  = "#CCCCCC"
)

// background is the mid-gray the flattened layers are composited over.
// Untouched pixels keep this value in the saved mask.
var background = color.RGBA{128, 128, 128, 255}

// Flatten composites the painted layers in order onto a transparent
// width×height canvas, lays the result over the opaque mid-gray background,
// and normalizes every painted non-black pixel to pure white. The result is
// an opaque RGB bitmap: white where marked, black where erased, gray where
// untouched.
func Flatten(layers []image.Image, width, height int) (*image.RGBA, error) {
	if len(layers) == 0 {
		return nil, ErrNoLayers
	}

	rect := image.Rect(0, 0, width, height)
	canvas := image.NewRGBA(rect)
	for _, layer := range layers {
		draw.Draw(canvas, rect, layer, layer.Bounds().Min, draw.Over)
	}

	flat := image.NewRGBA(rect)
	draw.Draw(flat, rect, image.NewUniform(background), image.Point{}, draw.Src)
	draw.Draw(flat, rect, canvas, image.Point{}, draw.Over)

	classify(flat)
	return flat, nil
}

// classify rewrites every pixel that differs from both the gray background
// and pure black to pure white, in place. Idempotent: white pixels stay
// white, black and gray pixels are never touched.
func classify(m *image.RGBA) {
	p := m.Pix
	for i := 0; i < len(p); i += 4 {
		r, g, b := p[i], p[i+1], p[i+2]
		isGray := r == background.R && g == background.G && b == background.B
		isBlack := r == 0 && g == 0 && b == 0
		if !isGray && !isBlack {
			p[i], p[i+1], p[i+2] = 255, 255, 255
		}
		p[i+3] = 0xff
	}
}
