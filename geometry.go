package rm2fb

import (
	"encoding/binary"
	"errors"
	"image"

	"periph.io/x/devices/v3/rm2fb/image2bit"
)

// Geometry describes the packed frame buffer of a panel.
//
// Rows are stored bottom-up: visible row y lives in physical row
// TopMargin + Height - 1 - y. Columns are offset by LeftMargin.
type Geometry struct {
	Width  int // Visible width in pixels
	Height int // Visible height in pixels
	Stride int // Bytes per physical row

	TopMargin  int // Rows reserved before the visible area
	LeftMargin int // Columns reserved before the visible area

	// Order is the byte order of the 16-bit pixel words. nil means
	// little-endian, the native order of the device CPU.
	Order binary.ByteOrder
}

// RM2 is the reMarkable 2 panel.
var RM2 = Geometry{
	Width:      1404,
	Height:     1872,
	Stride:     1408,
	TopMargin:  8,
	LeftMargin: 8,
	Order:      binary.LittleEndian,
}

// Validate reports whether g describes a usable frame buffer.
func (g Geometry) Validate() error {
	if g.Width <= 0 {
		return errors.New("rm2fb: width must be positive")
	}
	if g.Height <= 0 {
		return errors.New("rm2fb: height must be positive")
	}
	if g.Stride <= 0 || g.Stride%image2bit.BytesPerWord != 0 {
		return errors.New("rm2fb: stride must be a positive multiple of 2")
	}
	if g.TopMargin < 0 || g.LeftMargin < 0 {
		return errors.New("rm2fb: margins must not be negative")
	}
	if g.LeftMargin+g.Width > g.rowPixels() {
		return errors.New("rm2fb: stride too small for width and left margin")
	}
	return nil
}

// rowPixels is the number of pixels a physical row can hold.
func (g Geometry) rowPixels() int {
	return g.Stride / image2bit.BytesPerWord * image2bit.PixelsPerWord
}

func (g Geometry) order() binary.ByteOrder {
	if g.Order == nil {
		return binary.LittleEndian
	}
	return g.Order
}

// FrameSize returns the smallest frame length that holds every drawable
// pixel without tripping the overrun guard.
func (g Geometry) FrameSize() int {
	return (g.TopMargin + g.Height) * g.Stride
}

// Bounds returns the positions DrawChar writes to. Columns left of
// LeftMargin are clipped.
func (g Geometry) Bounds() image.Rectangle {
	return image.Rect(g.LeftMargin, 0, g.Width, g.Height)
}

// PhysicalBounds returns the rectangle covered by the physical rows,
// margins included.
func (g Geometry) PhysicalBounds() image.Rectangle {
	return image.Rect(0, 0, g.rowPixels(), g.TopMargin+g.Height)
}

// Physical maps a drawing position to its physical pixel.
func (g Geometry) Physical(x, y int) image.Point {
	return image.Point{X: g.LeftMargin + x, Y: g.TopMargin + g.Height - 1 - y}
}

// WordOffset returns the byte offset of the word holding drawing position
// (x, y) and the bit shift of the pixel inside it.
func (g Geometry) WordOffset(x, y int) (offset int, shift uint) {
	p := g.Physical(x, y)
	offset = p.Y*g.Stride + p.X/image2bit.PixelsPerWord*image2bit.BytesPerWord
	shift = uint((image2bit.PixelsPerWord - 1 - p.X%image2bit.PixelsPerWord) * image2bit.BitsPerPixel)
	return
}

// View returns an image over frame using the physical layout of g.
// The view aliases frame.
func (g Geometry) View(frame []byte) *image2bit.PackedWord {
	return &image2bit.PackedWord{
		Pix:    frame,
		Stride: g.Stride,
		Rect:   g.PhysicalBounds(),
		Order:  g.order(),
	}
}
