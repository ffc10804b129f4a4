package bitfield

import (
	"fmt"

	"github.com/wippyai/bitfield/errors"
	"github.com/wippyai/bitfield/internal/bits"
)

// Specifier describes one field type: its bit width and the storage kind
// its values are read into. Uint and *Enum are the two implementations.
type Specifier interface {
	// Name returns a display name, e.g. "B3" or an enum's declared name.
	Name() string

	// Bits returns the field width, between 1 and 128.
	Bits() int

	// Storage returns the narrowest unsigned type holding Bits() bits.
	Storage() Storage
}

// Uint is the unsigned-integer specifier of a fixed width.
type Uint struct {
	bits uint8
}

// Bits returns the unsigned specifier of width n, n in [1, 128].
func Bits(n int) (Uint, error) {
	if n < 1 || n > bits.MaxWidth {
		return Uint{}, errors.InvalidWidth([]string{fmt.Sprintf("B%d", n)}, n, 1, bits.MaxWidth)
	}
	return Uint{bits: uint8(n)}, nil
}

func (u Uint) Name() string {
	return fmt.Sprintf("B%d", u.bits)
}

func (u Uint) Bits() int {
	return int(u.bits)
}

func (u Uint) Storage() Storage {
	s, _ := StorageFor(int(u.bits))
	return s
}

func (u Uint) String() string {
	return u.Name()
}

// Bool is the 1-bit specifier used for flags.
var Bool = B1

// Get reads the field at absolute bit offset of buf. The caller guarantees
// offset+Bits() <= len(buf)*8.
func (u Uint) Get(buf []byte, offset int) Uint128 {
	hi, lo := bits.Get128(buf, offset, int(u.bits))
	return Uint128{Hi: hi, Lo: lo}
}

// Set writes the low Bits() bits of v at absolute bit offset of buf.
func (u Uint) Set(buf []byte, offset int, v Uint128) {
	bits.Set128(buf, offset, int(u.bits), v.Hi, v.Lo)
}
