// Package bits provides the primitive bit get/set engine for packed buffers.
//
// A buffer is treated as one contiguous little-endian bitstream: absolute bit
// p lives in byte p/8 at intra-byte bit p%8, where bit 0 is the least
// significant bit of the byte. A field of width w at offset o occupies the
// absolute bits [o, o+w), and value bit i maps to absolute bit o+i.
//
//	byte:      0                 1
//	bit:   7 6 5 4 3 2 1 0 | 15 14 ... 8
//	       └─c─┘ └─b─┘ └a┘   └──── d ───
//
// Fields therefore pack LSB-first within a byte and continue into the next
// byte when they straddle a boundary.
//
// # Contents
//
//   - bits.go: Get/Set for widths up to 64 and Get128/Set128 for 65..128
//   - helpers.go: width arithmetic shared by the layout and enum validators
//
// No function in this package checks bounds. Callers validate offsets and
// widths once when a layout is defined.
//
// This package is internal to the bitfield module.
package bits
