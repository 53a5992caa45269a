// Package rm2fb draws glyph bitmaps into the memory-mapped frame buffer of a
// reMarkable 2 e-ink panel.
//
// The panel stores 2 bits per pixel, 8 pixels per 16-bit word, rows bottom-up.
// See the examples for how to use this package.
package rm2fb

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/rm2fb/glyph"
	"periph.io/x/devices/v3/rm2fb/image2bit"
)

// Dev is a drawing handle over a caller-owned frame buffer.
//
// Dev does not allocate, map or refresh the frame; it only writes pixels into
// it. It is not safe for concurrent use.
type Dev struct {
	b     *Blitter
	frame []byte
	phase uint16

	halted bool
}

var _ display.Drawer = (*Dev)(nil)

// NewDev creates a Dev drawing into frame.
//
// opts can be nil to use the RM2 geometry, the scalar path and phase 0.
func NewDev(frame []byte, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{}
	}
	if len(frame) == 0 {
		return nil, errors.New("rm2fb: empty frame")
	}
	if !image2bit.ValidPhase(opts.Phase) {
		return nil, errors.New("rm2fb: phase must be between 0 and 3")
	}
	b, err := NewBlitter(opts)
	if err != nil {
		return nil, err
	}
	if n := b.g.FrameSize(); len(frame) < n {
		Logger().Debug("rm2fb: frame shorter than geometry", "len", len(frame), "want", n)
	}
	d := &Dev{
		b:     b,
		frame: frame,
		phase: opts.Phase,
	}
	Logger().Info("rm2fb: device ready", "dev", d.String(), "vector", b.vector, "overrun", b.overrun)
	return d, nil
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image2bit.Gray2Model
}

// Bounds returns the drawable area of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.b.g.Bounds()
}

// Draw draws src onto the display. Dark, opaque pixels of src are written
// with the current phase; light or transparent pixels leave the frame as is.
// The dst rectangle is clipped to the display bounds.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errors.New("rm2fb: halted")
	}

	r := dst.Intersect(d.Bounds())
	if r.Empty() {
		return nil
	}
	sp = sp.Add(r.Min.Sub(dst.Min))

	bm := glyph.FromImageRect(src, image.Rectangle{Min: sp, Max: sp.Add(r.Size())})
	d.b.DrawChar(d.frame, bm.Pix, bm.Width, bm.Height, r.Min.X, r.Min.Y, d.phase)
	return nil
}

// DrawGlyph draws g with its top-left corner at at. Positions outside the
// display are clipped.
func (d *Dev) DrawGlyph(g glyph.Bitmap, at image.Point) error {
	if d.halted {
		return errors.New("rm2fb: halted")
	}
	if !g.Valid() {
		return fmt.Errorf("rm2fb: invalid glyph bitmap %dx%d with %d bytes", g.Width, g.Height, len(g.Pix))
	}
	d.b.DrawChar(d.frame, g.Pix, g.Width, g.Height, at.X, at.Y, d.phase)
	return nil
}

// SetPhase sets the phase (0-3) written by subsequent drawing operations.
func (d *Dev) SetPhase(phase uint16) error {
	if d.halted {
		return errors.New("rm2fb: halted")
	}
	if !image2bit.ValidPhase(phase) {
		return fmt.Errorf("rm2fb: phase %d out of range", phase)
	}
	d.phase = phase
	return nil
}

// Phase returns the phase written by drawing operations.
func (d *Dev) Phase() uint16 {
	return d.phase
}

// Clear sets every pixel of the frame, margins included, to phase 0.
func (d *Dev) Clear() error {
	if d.halted {
		return errors.New("rm2fb: halted")
	}
	clear(d.frame)
	return nil
}

// Frame returns an image over the physical frame buffer, margins included.
// Use Geometry.Physical to locate a drawing position in it. After Halt the
// frame is released and the view has no pixels; every pixel reads as 0.
func (d *Dev) Frame() *image2bit.PackedWord {
	return d.b.g.View(d.frame)
}

// Geometry returns the panel layout.
func (d *Dev) Geometry() Geometry {
	return d.b.g
}

// Dropped returns the number of pixels lost to the overrun guard.
func (d *Dev) Dropped() uint64 {
	return d.b.Dropped()
}

// Halt stops drawing. The frame is left as is and is not retained; any
// further operation fails.
func (d *Dev) Halt() error {
	d.halted = true
	d.frame = nil
	Logger().Info("rm2fb: halted", "dev", d.String())
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("rm2fb.Dev{%dx%d}", d.b.g.Width, d.b.g.Height)
}
