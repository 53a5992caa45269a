// Package glyph produces the one-byte-per-pixel bitmaps consumed by the
// rm2fb blitter, either from an arbitrary image or from a font face.
package glyph

import (
	"errors"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ErrNoGlyph is returned by Render when the face has no glyph for a rune.
var ErrNoGlyph = errors.New("glyph: no glyph for rune")

// Bitmap is a row-major glyph image with one intensity byte per pixel.
// Zero is transparent, anything else is drawn.
type Bitmap struct {
	Pix    []byte
	Width  int
	Height int
}

// Valid reports whether b has a positive size and enough pixel data.
func (b Bitmap) Valid() bool {
	return b.Width > 0 && b.Height > 0 && b.Width <= len(b.Pix)/b.Height
}

// Opaque returns the number of drawn pixels.
func (b Bitmap) Opaque() int {
	n := 0
	for _, v := range b.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// FromImage converts img to a Bitmap.
//
// Coverage masks (*image.Alpha, *image.Alpha16) keep their alpha as the
// intensity. Any other image is read as ink on paper: the intensity is how
// dark and opaque a pixel is, so white and transparent pixels are skipped.
func FromImage(img image.Image) Bitmap {
	return FromImageRect(img, img.Bounds())
}

// FromImageRect converts the r portion of img to a Bitmap. Pixels of r
// outside img come out transparent for bounded images.
func FromImageRect(img image.Image, r image.Rectangle) Bitmap {
	r = r.Canon()
	b := Bitmap{
		Pix:    make([]byte, r.Dx()*r.Dy()),
		Width:  r.Dx(),
		Height: r.Dy(),
	}
	coverage := false
	switch img.(type) {
	case *image.Alpha, *image.Alpha16:
		coverage = true
	}
	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := img.At(x, y)
			if coverage {
				b.Pix[i] = color.AlphaModel.Convert(c).(color.Alpha).A
			} else {
				b.Pix[i] = ink(c)
			}
			i++
		}
	}
	return b
}

// ink returns the premultiplied darkness of c scaled to a byte.
func ink(c color.Color) byte {
	r, g, b, a := c.RGBA()
	y := (299*r + 587*g + 114*b + 500) / 1000
	if y >= a {
		return 0
	}
	return byte((a - y) >> 8)
}

// Render rasterizes r with face. It returns the bitmap, the position of the
// bitmap's top-left corner relative to the dot on the baseline, and the
// advance to the next dot. Blank glyphs such as space return an empty
// bitmap and no error.
func Render(face font.Face, r rune) (Bitmap, image.Point, fixed.Int26_6, error) {
	dr, mask, maskp, advance, ok := face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return Bitmap{}, image.Point{}, 0, ErrNoGlyph
	}
	b := Bitmap{
		Pix:    make([]byte, dr.Dx()*dr.Dy()),
		Width:  dr.Dx(),
		Height: dr.Dy(),
	}
	i := 0
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			a := color.AlphaModel.Convert(mask.At(maskp.X+x, maskp.Y+y)).(color.Alpha)
			b.Pix[i] = a.A
			i++
		}
	}
	return b, dr.Min, advance, nil
}
