package bits

import (
	"bytes"
	"testing"
)

func TestGetSet_Scenario(t *testing.T) {
	// widths 1, 3, 4, 24 packed into four bytes
	buf := make([]byte, 4)
	Set[uint8](buf, 0, 1, 1)
	Set[uint8](buf, 1, 3, 7)
	Set[uint8](buf, 4, 4, 14)
	Set[uint32](buf, 8, 24, 246)

	want := []byte{0xEF, 0xF6, 0x00, 0x00}
	if !bytes.Equal(buf, want) {
		t.Fatalf("buffer: got % x, want % x", buf, want)
	}

	if got := Get[uint8](buf, 0, 1); got != 1 {
		t.Errorf("a: got %d, want 1", got)
	}
	if got := Get[uint8](buf, 1, 3); got != 7 {
		t.Errorf("b: got %d, want 7", got)
	}
	if got := Get[uint8](buf, 4, 4); got != 14 {
		t.Errorf("c: got %d, want 14", got)
	}
	if got := Get[uint32](buf, 8, 24); got != 246 {
		t.Errorf("d: got %d, want 246", got)
	}
}

func TestGetSet_LSBFirst(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		width  int
		value  uint16
		want   []byte
	}{
		{"bit0", 0, 1, 1, []byte{0x01, 0x00}},
		{"bit7", 7, 1, 1, []byte{0x80, 0x00}},
		{"bit8", 8, 1, 1, []byte{0x00, 0x01}},
		{"straddle", 6, 4, 0xF, []byte{0xC0, 0x03}},
		{"straddle_pattern", 4, 8, 0xA5, []byte{0x50, 0x0A}},
		{"full_word", 0, 16, 0x1234, []byte{0x34, 0x12}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := make([]byte, 2)
			Set(buf, tc.offset, tc.width, tc.value)
			if !bytes.Equal(buf, tc.want) {
				t.Errorf("buffer: got % x, want % x", buf, tc.want)
			}
			if got := Get[uint16](buf, tc.offset, tc.width); got != tc.value {
				t.Errorf("value: got %#x, want %#x", got, tc.value)
			}
		})
	}
}

func TestGetSet_RoundTripExhaustive(t *testing.T) {
	for width := 1; width <= 12; width++ {
		for offset := 0; offset < 8; offset++ {
			buf := make([]byte, 3)
			for v := uint16(0); v < 1<<width; v++ {
				Set(buf, offset, width, v)
				if got := Get[uint16](buf, offset, width); got != v {
					t.Fatalf("width %d offset %d: got %d, want %d", width, offset, got, v)
				}
			}
		}
	}
}

func TestSet_ClearsPreviousBits(t *testing.T) {
	buf := []byte{0xFF, 0xFF}
	Set[uint8](buf, 3, 6, 0)

	want := []byte{0x07, 0xFE}
	if !bytes.Equal(buf, want) {
		t.Errorf("buffer: got % x, want % x", buf, want)
	}
}

func TestSet_IgnoresHighBits(t *testing.T) {
	buf := make([]byte, 1)
	Set[uint8](buf, 2, 3, 0xFF)

	if buf[0] != 0x1C {
		t.Errorf("buffer: got %#x, want 0x1c", buf[0])
	}
}

func TestSet_Independence(t *testing.T) {
	widths := []int{1, 3, 4, 24, 7, 9}
	offsets := make([]int, len(widths))
	total := 0
	for i, w := range widths {
		offsets[i] = total
		total += w
	}
	buf := make([]byte, ByteCount(total))

	values := []uint32{1, 5, 9, 0xABCDEF, 0x55, 0x1AA}
	for i := range widths {
		Set(buf, offsets[i], widths[i], values[i])
	}

	for i := range widths {
		// flip every other field to all ones and back, checking neighbours
		Set(buf, offsets[i], widths[i], uint32(Mask64(widths[i])))
		for j := range widths {
			if j == i {
				continue
			}
			if got := Get[uint32](buf, offsets[j], widths[j]); got != values[j] {
				t.Fatalf("set field %d changed field %d: got %#x, want %#x", i, j, got, values[j])
			}
		}
		Set(buf, offsets[i], widths[i], values[i])
	}
}

func TestGetSet64(t *testing.T) {
	buf := make([]byte, 10)
	const v = uint64(0xDEADBEEFCAFEF00D)
	Set(buf, 5, 64, v)

	if got := Get[uint64](buf, 5, 64); got != v {
		t.Errorf("got %#x, want %#x", got, v)
	}
	if buf[0]&0x1F != 0 {
		t.Errorf("low bits of byte 0 touched: %#x", buf[0])
	}
}

func TestGetSet128(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		width  int
		hi, lo uint64
	}{
		{"aligned_128", 0, 128, 0x0123456789ABCDEF, 0xFEDCBA9876543210},
		{"unaligned_100", 3, 100, 0xFFFFFFFFF, 0x8000000000000001},
		{"width_65", 7, 65, 1, 0},
		{"zero", 1, 127, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := make([]byte, 18)
			for i := range buf {
				buf[i] = 0xFF
			}
			Set128(buf, tc.offset, tc.width, tc.hi, tc.lo)
			hi, lo := Get128(buf, tc.offset, tc.width)
			if hi != tc.hi || lo != tc.lo {
				t.Errorf("got (%#x, %#x), want (%#x, %#x)", hi, lo, tc.hi, tc.lo)
			}
			// bits outside the field stay set
			if tc.offset > 0 && buf[0]&1 == 0 {
				t.Error("bit 0 before the field was cleared")
			}
			end := tc.offset + tc.width
			if end < len(buf)*8 && buf[end>>3]&(1<<uint(end&7)) == 0 {
				t.Error("bit after the field was cleared")
			}
		})
	}
}

func TestGet_Idempotent(t *testing.T) {
	buf := []byte{0x5A, 0xC3}
	first := Get[uint16](buf, 2, 11)
	second := Get[uint16](buf, 2, 11)
	if first != second {
		t.Errorf("got %d then %d", first, second)
	}
}

func BenchmarkGet(b *testing.B) {
	buf := make([]byte, 16)
	Set[uint32](buf, 5, 24, 0xABCDEF)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Get[uint32](buf, 5, 24)
	}
}

func BenchmarkSet(b *testing.B) {
	buf := make([]byte, 16)
	for i := 0; i < b.N; i++ {
		Set(buf, 5, 24, uint32(i))
	}
}
