package rm2fb

import "encoding/binary"

// The fast path treats the 8 bitmap bytes of one word as the lanes of a
// uint64: compare every lane against zero, then select phase or the old
// pixel under the resulting mask.
const (
	laneLow7 = 0x7f7f7f7f7f7f7f7f
	laneHigh = 0x8080808080808080

	// Gathers the low bit of lane i into bit 56+i.
	laneGather = 0x0102040810204080
)

// laneSpread maps an 8-bit lane mask (bit i = pixel i opaque) to the 2-bit
// pixel mask of a word, pixel 0 in the top bits.
var laneSpread = func() (t [256]uint16) {
	for m := range t {
		for i := 0; i < packedPixels; i++ {
			if m>>i&1 != 0 {
				t[m] |= pixelMask << uint((packedPixels-1-i)*pixelBits)
			}
		}
	}
	return t
}()

// laneMask returns bit i set for every nonzero byte i of px.
func laneMask(px []byte) uint8 {
	v := binary.LittleEndian.Uint64(px)
	nz := (((v & laneLow7) + laneLow7) | v) & laneHigh
	return uint8(((nz >> 7) * laneGather) >> 56)
}

// blitWord8 applies a full word of 8 pixels to dst.
func blitWord8(dst, px []byte, phaseWord uint16, order binary.ByteOrder) {
	lanes := laneMask(px)
	if lanes == 0 {
		return
	}
	mask := laneSpread[lanes]
	w := order.Uint16(dst)
	order.PutUint16(dst, w&^mask|phaseWord&mask)
}
