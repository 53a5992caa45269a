// Package rm2fb draws glyph bitmaps into the frame buffer of a reMarkable 2
// e-ink panel.
//
// The frame buffer is owned by the caller: map it from the display driver,
// allocate it for tests, and trigger refreshes with whatever mechanism the
// system provides. This package only writes pixels.
//
// # Frame Buffer Layout
//
// - 2 bits per pixel, the phase (0-3) of the e-ink waveform
// - 8 pixels per 16-bit word, pixel 0 in the most significant bits
// - Words in little-endian byte order (native on the device)
// - 1408 bytes per physical row, 8 reserved rows at the top and 8 reserved columns on the left
// - Rows stored bottom-up: drawing row y lives in physical row 8 + 1872 - 1 - y
//
// The byte offset of the word holding drawing position (x, y) is:
//
//	(TopMargin + Height - 1 - y) * Stride + (LeftMargin + x) / 8 * 2
//
// # Basic Usage
//
// Draw a glyph bitmap directly:
//
//	frame := make([]byte, rm2fb.RM2.FrameSize())
//	bitmap := []byte{
//		0, 1, 0,
//		1, 1, 1,
//	}
//	rm2fb.DrawChar(frame, bitmap, 3, 2, 100, 200, 3)
//
// Or through a Dev, which implements the display.Drawer interface from
// periph.io:
//
//	dev, _ := rm2fb.NewDev(frame, &rm2fb.Opts{Phase: 3, Vector: true})
//	defer dev.Halt()
//
//	face := ... // any golang.org/x/image/font.Face
//	g, off, _, _ := glyph.Render(face, 'A')
//	dev.DrawGlyph(g, image.Pt(100, 200).Add(off))
//
// # Clipping
//
// Rows outside [0, Height) and columns outside [LeftMargin, Width) are
// skipped silently. Zero bitmap pixels are transparent. No byte outside the
// frame is ever touched.
//
// A frame shorter than Geometry.FrameSize loses the words past its end. With
// the default SkipWord policy a word whose last byte is missing is dropped
// whole; ClipBytes writes the byte that is present:
//
//	dev, _ := rm2fb.NewDev(frame, &rm2fb.Opts{Overrun: rm2fb.ClipBytes})
//
// Dropped pixels are counted by Dropped and logged at debug level, see
// SetLogger.
//
// # Vector Path
//
// With Opts.Vector, words covered by all 8 of their pixels are handled 8
// lanes at a time: the bitmap bytes are compared against zero as one
// uint64 and the phase is selected under the resulting mask. Partial words
// fall back to the scalar path. Both paths produce the same frame.
//
// # Other Panels
//
// The RM2 geometry is a value; any panel with the same packing can be
// described with a Geometry:
//
//	g := rm2fb.Geometry{Width: 60, Height: 20, Stride: 20, TopMargin: 2, LeftMargin: 4}
//	b, err := rm2fb.NewBlitter(&rm2fb.Opts{Geometry: g})
//
// # Concurrency
//
// Words are updated with plain read-modify-write. Calls that may touch the
// same words must be serialized by the caller.
package rm2fb
