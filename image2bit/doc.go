// Package image2bit provides a 2-bit phase image format for the reMarkable 2 frame buffer.
//
// The panel frame buffer stores 2 bits per pixel, 8 pixels packed into one
// 16-bit word. The first pixel of a word occupies the most significant 2 bits.
// Words are stored in the byte order of the host CPU (little-endian on the
// device), so the first pixel lives in the top bits of the second byte.
//
// Memory layout example for an 8-pixel row, little-endian words:
//
//	Pixels: 0  1  2  3  4  5  6  7
//	Values: 2  0  1  3  0  0  0  1
//	Word:   0b10_00_01_11_00_00_00_01 = 0x8701
//	Bytes:  0x01 0x87
//
// This package provides:
//
// - Gray2: A color type representing a 2-bit phase (0-3)
// - Gray2Model: A color model for converting standard Go colors to Gray2
// - PackedWord: An image.Image implementation over the packed word layout
//
// Example usage:
//
//	// Create a 16x4 image
//	img := image2bit.NewPackedWord(image.Rect(0, 0, 16, 4), binary.LittleEndian)
//
//	// Set a pixel to phase 2
//	img.SetGray2(3, 1, image2bit.Gray2{Y: 2})
//
//	// Get a pixel
//	p := img.Gray2At(3, 1)
//	println(p.Y)  // Output: 2
package image2bit
