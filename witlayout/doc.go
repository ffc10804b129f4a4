// Package witlayout derives packed bitfield layouts from WIT record types.
//
// A record maps to a layout field by field:
//
//	bool            B1
//	u8 u16 u32 u64  B8 B16 B32 B64
//	enum            bitfield.Enum, implicit discriminants, count policy
//	flags           one B1 per flag, named field.flag
//	record          flattened, named field.member
//
// Signed integers, floats, char, string and the remaining WIT kinds have no
// packed representation and are rejected.
package witlayout
