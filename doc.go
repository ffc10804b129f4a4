// Package bitfield packs named fields of arbitrary bit widths into compact,
// byte-aligned buffers.
//
// A Layout is declared once from an ordered list of fields. Each field has a
// Specifier: an unsigned width between 1 and 128 bits (B1 through B128) or an
// Enum whose tags map to discriminants. Fields are packed back to back,
// least-significant bit first, and the total width must be a multiple of
// eight so the buffer is exactly Size bytes with no padding.
//
// # Bit order
//
// Absolute bit p lives in byte p/8 at bit position p%8 (0 is the least
// significant). Bit i of a field value is stored at absolute bit
// offset+i. The encoding is endian-independent and stable across platforms.
//
// # Quick Start
//
//	var Mode = bitfield.MustEnum("Mode", []bitfield.Variant{
//		bitfield.Implicit("Off"),
//		bitfield.Implicit("On"),
//		bitfield.Explicit("Auto", 3),
//	})
//
//	var Header = bitfield.MustLayout("Header",
//		bitfield.Field("valid", bitfield.Bool),
//		bitfield.Field("mode", Mode),
//		bitfield.Field("len", bitfield.B13),
//	)
//
//	h := Header.New()
//	_ = h.SetBool("valid", true)
//	_ = h.SetTag("mode", "Auto")
//	_ = h.SetUint("len", 1500)
//	wire := h.Bytes() // 2 bytes
//
// Typed accessors resolve a field once and read it without lookups:
//
//	length, _ := bitfield.UintAccessor[uint16](Header, "len")
//	n := length.Get(h)
//
// # Storage Types
//
// A field's natural storage is the narrowest unsigned type holding its width:
//
//	1..8     uint8
//	9..16    uint16
//	17..32   uint32
//	33..64   uint64
//	65..128  Uint128
//
// # Guest Memory
//
// Records can be copied to and from any linear memory implementing Memory,
// such as a WebAssembly guest's memory wrapped by the memory package.
//
// # Error Handling
//
// Errors are *errors.Error values with a Phase and Kind; match them with
// errors.Is against the sentinels in the errors package. Decoding an enum
// field whose bits match no declared tag returns an error rather than
// panicking.
package bitfield
