package bits

import mathbits "math/bits"

// MaxWidth is the widest field the engine addresses.
const MaxWidth = 128

// ByteCount returns the number of bytes needed to hold the given bit count.
func ByteCount(bitCount int) int {
	return (bitCount + 7) / 8
}

// BitLen returns the minimum number of bits needed to represent v.
// BitLen(0) is 0.
func BitLen(v uint64) int {
	return mathbits.Len64(v)
}

// CeilLog2 returns ceil(log2(n)) for n >= 1, and 0 for smaller n.
func CeilLog2(n int) int {
	if n <= 1 {
		return 0
	}
	return mathbits.Len64(uint64(n - 1))
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Mask64 returns a mask with the low width bits set. Widths >= 64 yield all ones.
func Mask64(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return 1<<uint(width) - 1
}

// Fits reports whether v is representable in width bits, i.e. v < 2^width.
func Fits(v uint64, width int) bool {
	return width >= 64 || v>>uint(width) == 0
}
