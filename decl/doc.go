// Package decl reads layout declarations from YAML or JSON documents.
//
// A declaration names the layout and lists its fields in packing order.
// Each field sets exactly one of bits, type or enum:
//
//	name: Header
//	enums:
//	  - name: DeliveryMode
//	    variants: [Fixed, Variable, {name: Scheduled, value: 4}]
//	fields:
//	  - {name: valid, type: bool}
//	  - {name: mode, enum: DeliveryMode}
//	  - {name: prio, bits: 4}
//	  - name: kind
//	    enum:
//	      name: Kind
//	      policy: pow2
//	      variants: [A, B, C, D]
//
// type accepts the WIT primitive names bool, u8, u16, u32 and u64, or bN
// for an N-bit unsigned field. An enum is either declared inline or refers
// to an entry of enums by name. policy is one of count (the default),
// discriminants or pow2; bits fixes the width.
package decl
