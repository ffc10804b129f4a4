package bits

// Word is the set of built-in unsigned storage types a field of at most
// 64 bits is read into.
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Get reads width bits starting at absolute bit offset. Value bit i comes from
// absolute bit offset+i.
func Get[T Word](buf []byte, offset, width int) T {
	var v T
	for i := 0; i < width; i++ {
		p := offset + i
		if buf[p>>3]&(1<<uint(p&7)) != 0 {
			v |= T(1) << uint(i)
		}
	}
	return v
}

// Set writes the low width bits of v starting at absolute bit offset.
// Bits of v at or above width are ignored.
func Set[T Word](buf []byte, offset, width int, v T) {
	for i := 0; i < width; i++ {
		p := offset + i
		mask := byte(1) << uint(p&7)
		if v&1 == 1 {
			buf[p>>3] |= mask
		} else {
			buf[p>>3] &^= mask
		}
		v >>= 1
	}
}

// Get128 reads a field of up to 128 bits as a (hi, lo) pair of 64-bit halves.
func Get128(buf []byte, offset, width int) (hi, lo uint64) {
	for i := 0; i < width; i++ {
		p := offset + i
		if buf[p>>3]&(1<<uint(p&7)) == 0 {
			continue
		}
		if i < 64 {
			lo |= 1 << uint(i)
		} else {
			hi |= 1 << uint(i-64)
		}
	}
	return hi, lo
}

// Set128 writes the low width bits of the 128-bit value (hi, lo).
func Set128(buf []byte, offset, width int, hi, lo uint64) {
	for i := 0; i < width; i++ {
		p := offset + i
		mask := byte(1) << uint(p&7)
		if lo&1 == 1 {
			buf[p>>3] |= mask
		} else {
			buf[p>>3] &^= mask
		}
		// shift the pair right by one, carrying hi's low bit into lo
		lo = lo>>1 | hi<<63
		hi >>= 1
	}
}
