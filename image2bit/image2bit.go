// Package image2bit provides a 2-bit phase image format for word-packed e-ink frame buffers.
//
// Eight pixels share one 16-bit word, most significant pixel first.
// This package provides the Gray2 color type and PackedWord image implementation.
package image2bit

import (
	"encoding/binary"
	"image"
	"image/color"
)

// Packing of the frame buffer.
const (
	PixelsPerWord = 8 // pixels packed into one word
	BytesPerWord  = 2 // size of one word
	BitsPerPixel  = 2 // phase resolution
	PixelMask     = 1<<BitsPerPixel - 1
)

// Gray2 represents a 2-bit phase (0-3).
// Only the lower 2 bits of Y are used.
type Gray2 struct {
	Y uint8
}

// RGBA converts the Gray2 color to standard RGBA.
// The 2-bit value (0-3) is scaled to 16-bit (0-65535).
func (c Gray2) RGBA() (r, g, b, a uint32) {
	// 0x3 * 0x5555 = 0xFFFF
	y := uint32(c.Y&PixelMask) * 0x5555
	return y, y, y, 0xFFFF
}

// ValidPhase reports whether p fits in a pixel.
func ValidPhase(p uint16) bool {
	return p <= PixelMask
}

func toGray2(c color.Color) color.Color {
	if g, ok := c.(Gray2); ok {
		return g
	}
	r, g, b, _ := c.RGBA()
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Gray2{Y: uint8(y >> 14)}
}

// Gray2Model converts colors to Gray2.
var Gray2Model = color.ModelFunc(toGray2)

// PackedWord is a 2-bit image where 8 pixels share a 16-bit word.
// Pixel 0 of a word occupies the top 2 bits.
type PackedWord struct {
	Pix    []byte           // Pixel data (8 pixels per word)
	Stride int              // Bytes per row
	Rect   image.Rectangle  // Image bounds
	Order  binary.ByteOrder // Byte order of the words
}

// NewPackedWord creates a new PackedWord image with the specified bounds.
// The width must be a multiple of PixelsPerWord.
func NewPackedWord(r image.Rectangle, order binary.ByteOrder) *PackedWord {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &PackedWord{Rect: r, Order: order}
	}
	if w%PixelsPerWord != 0 {
		panic("image2bit: width must be a multiple of 8")
	}
	stride := w / PixelsPerWord * BytesPerWord
	return &PackedWord{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
		Order:  order,
	}
}

// ColorModel returns the color model of the image.
func (p *PackedWord) ColorModel() color.Model {
	return Gray2Model
}

// Bounds returns the image bounds.
func (p *PackedWord) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
func (p *PackedWord) At(x, y int) color.Color {
	return p.Gray2At(x, y)
}

// Gray2At returns the phase of the pixel at (x, y).
// Pixels whose word lies beyond Pix read as zero.
func (p *PackedWord) Gray2At(x, y int) Gray2 {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Gray2{}
	}
	offset, shift := p.WordOffset(x, y)
	if offset+BytesPerWord > len(p.Pix) {
		return Gray2{}
	}
	w := p.Order.Uint16(p.Pix[offset:])
	return Gray2{Y: uint8(w>>shift) & PixelMask}
}

// Set sets the color of the pixel at (x, y).
func (p *PackedWord) Set(x, y int, c color.Color) {
	p.SetGray2(x, y, Gray2Model.Convert(c).(Gray2))
}

// SetGray2 sets the phase of the pixel at (x, y).
func (p *PackedWord) SetGray2(x, y int, c Gray2) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, shift := p.WordOffset(x, y)
	if offset+BytesPerWord > len(p.Pix) {
		return
	}
	w := p.Order.Uint16(p.Pix[offset:])
	w = w&^(PixelMask<<shift) | uint16(c.Y&PixelMask)<<shift
	p.Order.PutUint16(p.Pix[offset:], w)
}

// WordOffset returns the byte offset of the word holding (x, y) and the bit
// shift of the pixel inside it.
func (p *PackedWord) WordOffset(x, y int) (offset int, shift uint) {
	col := x - p.Rect.Min.X
	offset = (y-p.Rect.Min.Y)*p.Stride + col/PixelsPerWord*BytesPerWord
	shift = uint((PixelsPerWord - 1 - col%PixelsPerWord) * BitsPerPixel)
	return
}
