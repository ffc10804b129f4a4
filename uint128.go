package bitfield

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/wippyai/bitfield/errors"
)

// Uint128 is the natural value type of fields between 65 and 128 bits wide.
type Uint128 struct {
	Hi, Lo uint64
}

// U128 builds a Uint128 from a 64-bit value.
func U128(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// IsZero reports whether all bits are clear.
func (u Uint128) IsZero() bool {
	return u.Hi == 0 && u.Lo == 0
}

// Uint64 returns the value as a uint64 and whether it fit without truncation.
func (u Uint128) Uint64() (uint64, bool) {
	return u.Lo, u.Hi == 0
}

// Bit reports whether bit i (0 = least significant) is set.
func (u Uint128) Bit(i int) bool {
	switch {
	case i < 0 || i >= 128:
		return false
	case i < 64:
		return u.Lo&(1<<uint(i)) != 0
	default:
		return u.Hi&(1<<uint(i-64)) != 0
	}
}

// BitLen returns the minimum number of bits needed to represent u.
func (u Uint128) BitLen() int {
	return u.Big().BitLen()
}

// Big converts u to a big.Int.
func (u Uint128) Big() *big.Int {
	v := new(big.Int).SetUint64(u.Hi)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(u.Lo))
}

func (u Uint128) String() string {
	if u.Hi == 0 {
		return fmt.Sprint(u.Lo)
	}
	return u.Big().String()
}

// ParseUint128 parses a decimal, 0x, 0o or 0b prefixed unsigned integer.
// Digits without a prefix are decimal even with leading zeros.
func ParseUint128(s string) (Uint128, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	base := 10
	if len(s) > 1 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			base = 0
		}
	}
	v, ok := new(big.Int).SetString(s, base)
	if !ok || v.Sign() < 0 {
		return Uint128{}, errors.InvalidInput(errors.PhaseParse, fmt.Sprintf("invalid unsigned integer %q", s))
	}
	if v.BitLen() > 128 {
		return Uint128{}, errors.Overflow(errors.PhaseParse, nil, s, "B128")
	}
	lo := new(big.Int).And(v, new(big.Int).SetUint64(^uint64(0)))
	return Uint128{Hi: new(big.Int).Rsh(v, 64).Uint64(), Lo: lo.Uint64()}, nil
}
