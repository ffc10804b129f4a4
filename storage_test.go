package bitfield

import (
	"testing"

	"github.com/wippyai/bitfield/errors"
)

func TestStorageFor(t *testing.T) {
	tests := []struct {
		bits int
		want Storage
		ok   bool
	}{
		{0, 0, false},
		{1, StorageU8, true},
		{8, StorageU8, true},
		{9, StorageU16, true},
		{16, StorageU16, true},
		{17, StorageU32, true},
		{32, StorageU32, true},
		{33, StorageU64, true},
		{64, StorageU64, true},
		{65, StorageU128, true},
		{128, StorageU128, true},
		{129, 0, false},
	}

	for _, tc := range tests {
		got, ok := StorageFor(tc.bits)
		if got != tc.want || ok != tc.ok {
			t.Errorf("StorageFor(%d): got (%v, %v), want (%v, %v)", tc.bits, got, ok, tc.want, tc.ok)
		}
	}
}

func TestStorage_String(t *testing.T) {
	if got := StorageU16.String(); got != "u16" {
		t.Errorf("got %q, want u16", got)
	}
	if got := Storage(0).String(); got != "unknown" {
		t.Errorf("got %q, want unknown", got)
	}
	if got := StorageU128.Bits(); got != 128 {
		t.Errorf("got %d, want 128", got)
	}
}

func TestSpecifier_Widths(t *testing.T) {
	specs := []Uint{B1, B2, B3, B4, B5, B6, B7, B8, B9, B16, B17, B24, B32, B33, B64, B65, B100, B127, B128}
	for _, s := range specs {
		want, _ := StorageFor(s.Bits())
		if s.Storage() != want {
			t.Errorf("%s: storage got %v, want %v", s, s.Storage(), want)
		}
	}
	if B3.Name() != "B3" {
		t.Errorf("name: got %q, want B3", B3.Name())
	}
	if Bool != B1 {
		t.Error("Bool should be the 1-bit specifier")
	}
}

func TestBits(t *testing.T) {
	for n := 1; n <= 128; n++ {
		s, err := Bits(n)
		if err != nil {
			t.Fatalf("Bits(%d): %v", n, err)
		}
		if s.Bits() != n {
			t.Errorf("Bits(%d).Bits(): got %d", n, s.Bits())
		}
	}
	for _, n := range []int{0, -1, 129} {
		if _, err := Bits(n); !errors.Is(err, errors.ErrInvalidWidth) {
			t.Errorf("Bits(%d): expected invalid width, got %v", n, err)
		}
	}
}

func TestUint128(t *testing.T) {
	v := Uint128{Hi: 1, Lo: 0}
	if got := v.String(); got != "18446744073709551616" {
		t.Errorf("String: got %s", got)
	}
	if got := v.BitLen(); got != 65 {
		t.Errorf("BitLen: got %d, want 65", got)
	}
	if !v.Bit(64) || v.Bit(63) {
		t.Error("Bit: expected only bit 64 set")
	}
	if _, ok := v.Uint64(); ok {
		t.Error("Uint64: expected truncation to be reported")
	}
	if !(Uint128{}).IsZero() {
		t.Error("zero value should be zero")
	}
	if got := U128(42).String(); got != "42" {
		t.Errorf("U128: got %s, want 42", got)
	}
}

func TestParseUint128(t *testing.T) {
	tests := []struct {
		in   string
		want Uint128
	}{
		{"0", Uint128{}},
		{"246", U128(246)},
		{"0xff", U128(255)},
		{"0b101", U128(5)},
		{"1_000", U128(1000)},
		{"010", U128(10)},
		{"007", U128(7)},
		{"0o10", U128(8)},
		{"0X1F", U128(31)},
		{"0xffffffffffffffffffffffffffffffff", Uint128{Hi: ^uint64(0), Lo: ^uint64(0)}},
		{"18446744073709551616", Uint128{Hi: 1}},
	}
	for _, tc := range tests {
		got, err := ParseUint128(tc.in)
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: got %+v, want %+v", tc.in, got, tc.want)
		}
	}

	for _, in := range []string{"", "-1", "abc", "09x", "0o9", "0x1_00000000_00000000_00000000_00000000"} {
		if _, err := ParseUint128(in); err == nil {
			t.Errorf("%q: expected error", in)
		}
	}
}

func TestUint_GetSet(t *testing.T) {
	buf := make([]byte, 4)
	B1.Set(buf, 0, U128(1))
	B3.Set(buf, 1, U128(7))
	B4.Set(buf, 4, U128(14))
	B24.Set(buf, 8, U128(246))

	want := []byte{0xEF, 0xF6, 0x00, 0x00}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("buffer: got % x, want % x", buf, want)
		}
	}
	if got := B24.Get(buf, 8); got != U128(246) {
		t.Errorf("got %v, want 246", got)
	}
	if got := B3.Get(buf, 1); got != U128(7) {
		t.Errorf("got %v, want 7", got)
	}
}
