package rm2fb

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync/atomic"

	"periph.io/x/devices/v3/rm2fb/image2bit"
)

const (
	packedPixels = image2bit.PixelsPerWord
	wordBytes    = image2bit.BytesPerWord
	pixelBits    = image2bit.BitsPerPixel
	pixelMask    = image2bit.PixelMask
)

// OverrunPolicy selects what happens to a word that does not fit entirely
// inside the frame.
type OverrunPolicy int

const (
	// SkipWord drops every pixel of a word whose last byte is at or past the
	// end of the frame.
	SkipWord OverrunPolicy = iota
	// ClipBytes writes the bytes of such a word that are inside the frame and
	// drops only the pixels stored in the missing byte.
	ClipBytes
)

func (p OverrunPolicy) String() string {
	switch p {
	case SkipWord:
		return "SkipWord"
	case ClipBytes:
		return "ClipBytes"
	default:
		return fmt.Sprintf("OverrunPolicy(%d)", int(p))
	}
}

// Opts is the configuration for a Blitter or Dev.
type Opts struct {
	// Panel layout. The zero value means RM2.
	Geometry Geometry

	// Overrun handling at the end of the frame (default: SkipWord)
	Overrun OverrunPolicy

	// Vector enables the 8-pixel word fast path.
	Vector bool

	// Phase written by Dev drawing operations (0-3).
	Phase uint16
}

func (o *Opts) geometry() Geometry {
	if o.Geometry == (Geometry{}) {
		return RM2
	}
	return o.Geometry
}

// Blitter writes glyph bitmaps into a packed frame buffer.
//
// A Blitter keeps no per-call state; the only thing it accumulates is the
// count of pixels lost to the overrun guard. Calls that touch overlapping
// parts of a frame must be serialized by the caller.
type Blitter struct {
	g       Geometry
	order   binary.ByteOrder
	overrun OverrunPolicy
	vector  bool

	dropped atomic.Uint64
}

// NewBlitter creates a Blitter. opts can be nil to use RM2 with the scalar
// path and SkipWord.
func NewBlitter(opts *Opts) (*Blitter, error) {
	if opts == nil {
		opts = &Opts{}
	}
	g := opts.geometry()
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if opts.Overrun != SkipWord && opts.Overrun != ClipBytes {
		return nil, errors.New("rm2fb: unknown overrun policy")
	}
	return &Blitter{
		g:       g,
		order:   g.order(),
		overrun: opts.Overrun,
		vector:  opts.Vector,
	}, nil
}

// Geometry returns the panel layout used by b.
func (b *Blitter) Geometry() Geometry {
	return b.g
}

// Dropped returns the number of opaque pixels dropped so far because their
// word did not fit inside the frame.
func (b *Blitter) Dropped() uint64 {
	return b.dropped.Load()
}

var defaultBlitter = &Blitter{g: RM2, order: RM2.order()}

// DrawChar draws bitmap on an RM2 frame using the scalar path and SkipWord.
// See Blitter.DrawChar.
func DrawChar(frame, bitmap []byte, width, height, xOffset, yOffset int, phase uint16) {
	defaultBlitter.DrawChar(frame, bitmap, width, height, xOffset, yOffset, phase)
}

// DrawChar writes the width x height bitmap into frame with its top-left
// corner at (xOffset, yOffset). Every nonzero bitmap pixel whose position
// lands inside Geometry.Bounds is set to phase; zero pixels are left alone.
// Only the low 2 bits of phase are used.
//
// Rows outside [0, Height) and columns outside [LeftMargin, Width) are
// clipped. Nothing outside frame is ever read or written. A bitmap shorter
// than width*height makes the call a no-op.
func (b *Blitter) DrawChar(frame, bitmap []byte, width, height, xOffset, yOffset int, phase uint16) {
	if !fits(bitmap, width, height) {
		Logger().Debug("rm2fb: bitmap rejected", "width", width, "height", height, "len", len(bitmap))
		return
	}
	g := &b.g
	phase &= pixelMask
	phaseWord := phase * 0x5555

	// Bitmap columns that land inside [LeftMargin, Width).
	x0 := max(0, g.LeftMargin-xOffset)
	x1 := min(width, g.Width-xOffset)

	dropped := 0
	for y := 0; y < height; y++ {
		by := y + yOffset
		if by < 0 || by >= g.Height {
			continue
		}
		rowOffset := (g.TopMargin + g.Height - by - 1) * g.Stride
		row := bitmap[y*width : (y+1)*width]

		for x := x0; x < x1; {
			col := g.LeftMargin + x + xOffset
			lane := col % packedPixels
			n := min(packedPixels-lane, x1-x)
			pos := rowOffset + col/packedPixels*wordBytes

			if b.vector && n == packedPixels && pos+1 < len(frame) {
				blitWord8(frame[pos:pos+wordBytes], row[x:x+n], phaseWord, b.order)
			} else {
				dropped += b.blitWord(frame, pos, row[x:x+n], lane, phase)
			}
			x += n
		}
	}

	if dropped > 0 {
		b.dropped.Add(uint64(dropped))
		Logger().Debug("rm2fb: overrun", "pixels", dropped, "policy", b.overrun, "frame", len(frame))
	}
}

// blitWord applies px, starting at lane, to the word at pos. The word is
// read once and written back only if a pixel was set. It returns the number
// of opaque pixels that could not be written.
func (b *Blitter) blitWord(frame []byte, pos int, px []byte, lane int, phase uint16) int {
	if pos+1 >= len(frame) {
		if b.overrun == ClipBytes && pos < len(frame) {
			return b.blitPartialWord(frame, pos, px, lane, phase)
		}
		return opaque(px)
	}

	w := b.order.Uint16(frame[pos:])
	changed := false
	for i, v := range px {
		if v == 0 {
			continue
		}
		shift := uint(packedPixels-1-lane-i) * pixelBits
		w = w&^(pixelMask<<shift) | phase<<shift
		changed = true
	}
	if changed {
		b.order.PutUint16(frame[pos:], w)
	}
	return 0
}

// blitPartialWord handles a word whose first byte is the last byte of the
// frame. Pixels stored in the missing byte are dropped.
func (b *Blitter) blitPartialWord(frame []byte, pos int, px []byte, lane int, phase uint16) int {
	var buf, m [wordBytes]byte
	buf[0] = frame[pos]
	w := b.order.Uint16(buf[:])

	dropped := 0
	changed := false
	for i, v := range px {
		if v == 0 {
			continue
		}
		shift := uint(packedPixels-1-lane-i) * pixelBits
		b.order.PutUint16(m[:], pixelMask<<shift)
		if m[0] == 0 {
			dropped++
			continue
		}
		w = w&^(pixelMask<<shift) | phase<<shift
		changed = true
	}
	if changed {
		b.order.PutUint16(buf[:], w)
		frame[pos] = buf[0]
	}
	return dropped
}

// fits reports whether bitmap holds width*height pixels. The product is
// never formed so it cannot overflow.
func fits(bitmap []byte, width, height int) bool {
	return width > 0 && height > 0 && width <= len(bitmap)/height
}

func opaque(px []byte) int {
	n := 0
	for _, v := range px {
		if v != 0 {
			n++
		}
	}
	return n
}
