package memory

import (
	"context"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/bitfield"
	"github.com/wippyai/bitfield/errors"
)

// DefaultMemoryExport is the conventional name of a module's linear memory.
const DefaultMemoryExport = "memory"

var (
	_ bitfield.Memory      = (*Memory)(nil)
	_ bitfield.MemorySizer = (*Memory)(nil)
	_ bitfield.Allocator   = (*Allocator)(nil)
)

// WrapMemory wraps a wazero api.Memory. It returns nil for a nil memory.
func WrapMemory(mem api.Memory) *Memory {
	if mem == nil {
		return nil
	}
	return &Memory{Mem: mem}
}

// WrapAllocator wraps a realloc-style guest function
// (old_ptr, old_size, align, new_size) -> ptr. It returns nil for a nil function.
func WrapAllocator(ctx context.Context, fn api.Function) *Allocator {
	if fn == nil {
		return nil
	}
	return &Allocator{Ctx: ctx, Fn: fn}
}

// Memory adapts wazero api.Memory to bitfield.Memory.
type Memory struct {
	Mem api.Memory
}

// Read returns a view of guest memory. The view is only valid until the
// guest next grows its memory.
func (m *Memory) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.Mem.Read(offset, length)
	if !ok {
		return nil, m.outOfBounds(offset, length)
	}
	return data, nil
}

// Write copies data into guest memory.
func (m *Memory) Write(offset uint32, data []byte) error {
	if !m.Mem.Write(offset, data) {
		return m.outOfBounds(offset, uint32(len(data)))
	}
	return nil
}

// Size returns the current memory size in bytes.
func (m *Memory) Size() uint32 {
	return m.Mem.Size()
}

// ReadU8 reads a single byte.
func (m *Memory) ReadU8(offset uint32) (uint8, error) {
	v, ok := m.Mem.ReadByte(offset)
	if !ok {
		return 0, m.outOfBounds(offset, 1)
	}
	return v, nil
}

// WriteU8 writes a single byte.
func (m *Memory) WriteU8(offset uint32, value uint8) error {
	if !m.Mem.WriteByte(offset, value) {
		return m.outOfBounds(offset, 1)
	}
	return nil
}

func (m *Memory) outOfBounds(offset, length uint32) error {
	return errors.New(errors.PhaseLoad, errors.KindOutOfBounds).
		Value(offset).
		Detail("memory access out of bounds: offset=%d, length=%d, size=%d", offset, length, m.Mem.Size()).
		Build()
}

// Allocator adapts a guest realloc function to bitfield.Allocator.
type Allocator struct {
	Ctx context.Context
	Fn  api.Function
}

// Alloc allocates size bytes aligned to align in guest memory.
func (a *Allocator) Alloc(size, align uint32) (uint32, error) {
	results, err := a.Fn.Call(a.Ctx, 0, 0, uint64(align), uint64(size))
	if err != nil {
		return 0, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, "allocation failed")
	}
	if len(results) == 0 {
		return 0, errors.InvalidData(errors.PhaseLoad, nil, "allocation returned no result")
	}
	return uint32(results[0]), nil
}

// Free releases an allocation by reallocating it to zero bytes.
func (a *Allocator) Free(ptr, size, align uint32) {
	_, _ = a.Fn.Call(a.Ctx, uint64(ptr), uint64(size), uint64(align), 0)
}

// Guest bundles a module's memory with its allocator.
type Guest struct {
	Memory *Memory
	Alloc  *Allocator
}

// FromModule binds the exported "memory" of mod and, when allocName is not
// empty, the exported allocator function of that name.
func FromModule(ctx context.Context, mod api.Module, allocName string) (*Guest, error) {
	if mod == nil {
		return nil, errors.NilPointer(errors.PhaseLoad, nil, "api.Module")
	}
	mem := WrapMemory(mod.ExportedMemory(DefaultMemoryExport))
	if mem == nil {
		return nil, errors.NotFound(errors.PhaseLoad, "memory export", DefaultMemoryExport)
	}
	g := &Guest{Memory: mem}
	if allocName != "" {
		g.Alloc = WrapAllocator(ctx, mod.ExportedFunction(allocName))
		if g.Alloc == nil {
			return nil, errors.NotFound(errors.PhaseLoad, "function export", allocName)
		}
	}
	bitfield.Logger().Debug("guest memory bound",
		zap.Uint32("size", mem.Size()),
		zap.String("alloc", allocName),
	)
	return g, nil
}
