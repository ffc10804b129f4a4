// Package memory adapts wazero guest memory and allocators to the
// bitfield.Memory and bitfield.Allocator interfaces, so packed records can
// be stored in and loaded from a WebAssembly module's linear memory.
//
// Typical use with an instantiated module exporting "memory" and
// "cabi_realloc":
//
//	g, err := memory.FromModule(ctx, mod, "cabi_realloc")
//	ptr, err := rec.StoreNew(g.Memory, g.Alloc)
//	...
//	err = rec.Load(g.Memory, ptr)
//
// Reads copy nothing themselves; bitfield.Record copies the returned view
// into its own buffer.
package memory
