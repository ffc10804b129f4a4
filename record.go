package bitfield

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/bitfield/errors"
	"github.com/wippyai/bitfield/internal/bits"
)

// Record is one packed instance of a Layout. It exclusively owns its buffer.
//
// Record is NOT safe for concurrent mutation: concurrent reads are fine as
// long as no setter runs at the same time.
type Record struct {
	layout *Layout
	data   []byte
}

// Layout returns the layout the record was created from.
func (r *Record) Layout() *Layout {
	return r.layout
}

// Bytes returns a copy of the packed buffer.
func (r *Record) Bytes() []byte {
	out := make([]byte, len(r.data))
	copy(out, r.data)
	return out
}

// SetBytes replaces the whole buffer. data must be exactly Layout().Size() bytes.
func (r *Record) SetBytes(data []byte) error {
	if len(data) != len(r.data) {
		return errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path(r.layout.name).Value(len(data)).
			Detail("buffer is %d bytes, layout needs %d", len(data), len(r.data)).Build()
	}
	copy(r.data, data)
	return nil
}

// Reset clears every field to zero.
func (r *Record) Reset() {
	clear(r.data)
}

// Clone returns an independent copy of the record.
func (r *Record) Clone() *Record {
	return &Record{layout: r.layout, data: r.Bytes()}
}

// Get returns the field's value in its natural type: uint8, uint16, uint32,
// uint64 or Uint128 for unsigned fields, Tag for enum fields.
func (r *Record) Get(name string) (any, error) {
	i, err := r.layout.lookup(name)
	if err != nil {
		return nil, err
	}
	return r.getAt(i)
}

func (r *Record) getAt(i int) (any, error) {
	f := r.layout.fields[i]
	s := r.layout.spans[i]
	if e, ok := f.Spec.(*Enum); ok {
		return r.tagAt(i, e)
	}
	switch f.Spec.Storage() {
	case StorageU8:
		return bits.Get[uint8](r.data, s.Offset, s.Width), nil
	case StorageU16:
		return bits.Get[uint16](r.data, s.Offset, s.Width), nil
	case StorageU32:
		return bits.Get[uint32](r.data, s.Offset, s.Width), nil
	case StorageU64:
		return bits.Get[uint64](r.data, s.Offset, s.Width), nil
	default:
		hi, lo := bits.Get128(r.data, s.Offset, s.Width)
		return Uint128{Hi: hi, Lo: lo}, nil
	}
}

// Set writes v into the field. Unsigned fields accept any Go integer or
// Uint128 that fits the width; enum fields accept a Tag, a tag name, or a
// declared discriminant; 1-bit fields also accept bool.
func (r *Record) Set(name string, v any) error {
	i, err := r.layout.lookup(name)
	if err != nil {
		return err
	}
	switch val := v.(type) {
	case Tag:
		return r.setTagAt(i, val.Name)
	case string:
		return r.setTagAt(i, val)
	case Uint128:
		return r.setUint128At(i, val)
	case bool:
		return r.setBoolAt(i, val)
	}
	u, isInt, negative := toUint64(v)
	if negative {
		return errors.Overflow(errors.PhaseEncode, r.path(i), v, r.layout.fields[i].Spec.Name())
	}
	if !isInt {
		return errors.TypeMismatch(errors.PhaseEncode, r.path(i), fmt.Sprintf("%T", v), r.layout.fields[i].Spec.Name())
	}
	return r.setUintAt(i, u)
}

// Uint returns a field of at most 64 significant bits as uint64. Enum
// fields yield their raw discriminant.
func (r *Record) Uint(name string) (uint64, error) {
	i, err := r.layout.lookup(name)
	if err != nil {
		return 0, err
	}
	s := r.layout.spans[i]
	if s.Width <= 64 {
		return bits.Get[uint64](r.data, s.Offset, s.Width), nil
	}
	hi, lo := bits.Get128(r.data, s.Offset, s.Width)
	if hi != 0 {
		return 0, errors.Overflow(errors.PhaseDecode, r.path(i), Uint128{Hi: hi, Lo: lo}, "uint64")
	}
	return lo, nil
}

// SetUint writes v, failing with an overflow error when v >= 2^width.
func (r *Record) SetUint(name string, v uint64) error {
	i, err := r.layout.lookup(name)
	if err != nil {
		return err
	}
	return r.setUintAt(i, v)
}

func (r *Record) setUintAt(i int, v uint64) error {
	f := r.layout.fields[i]
	s := r.layout.spans[i]
	if e, ok := f.Spec.(*Enum); ok {
		if _, declared := e.Lookup(v); !declared {
			return errors.InvalidEnum(errors.PhaseEncode, r.path(i), v, e.Name())
		}
	} else if !bits.Fits(v, s.Width) {
		return errors.Overflow(errors.PhaseEncode, r.path(i), v, f.Spec.Name())
	}
	if s.Width > 64 {
		bits.Set128(r.data, s.Offset, s.Width, 0, v)
		return nil
	}
	bits.Set(r.data, s.Offset, s.Width, v)
	return nil
}

// Uint128 returns any field as a Uint128.
func (r *Record) Uint128(name string) (Uint128, error) {
	i, err := r.layout.lookup(name)
	if err != nil {
		return Uint128{}, err
	}
	s := r.layout.spans[i]
	hi, lo := bits.Get128(r.data, s.Offset, s.Width)
	return Uint128{Hi: hi, Lo: lo}, nil
}

// SetUint128 writes v, failing with an overflow error when v >= 2^width.
func (r *Record) SetUint128(name string, v Uint128) error {
	i, err := r.layout.lookup(name)
	if err != nil {
		return err
	}
	return r.setUint128At(i, v)
}

func (r *Record) setUint128At(i int, v Uint128) error {
	if v.Hi == 0 {
		return r.setUintAt(i, v.Lo)
	}
	f := r.layout.fields[i]
	s := r.layout.spans[i]
	if _, ok := f.Spec.(*Enum); ok || v.BitLen() > s.Width {
		return errors.Overflow(errors.PhaseEncode, r.path(i), v, f.Spec.Name())
	}
	bits.Set128(r.data, s.Offset, s.Width, v.Hi, v.Lo)
	return nil
}

// Tag decodes an enum field. A bit pattern matching no tag yields an error
// matching errors.ErrInvalidDiscriminant.
func (r *Record) Tag(name string) (Tag, error) {
	i, err := r.layout.lookup(name)
	if err != nil {
		return Tag{}, err
	}
	e, ok := r.layout.fields[i].Spec.(*Enum)
	if !ok {
		return Tag{}, errors.TypeMismatch(errors.PhaseDecode, r.path(i), "Tag", r.layout.fields[i].Spec.Name())
	}
	return r.tagAt(i, e)
}

func (r *Record) tagAt(i int, e *Enum) (Tag, error) {
	s := r.layout.spans[i]
	raw := bits.Get[uint64](r.data, s.Offset, s.Width)
	t, ok := e.Lookup(raw)
	if !ok {
		Logger().Debug("invalid discriminant",
			zap.String("layout", r.layout.name),
			zap.String("field", r.layout.fields[i].Name),
			zap.Uint64("raw", raw),
		)
		return Tag{}, errors.InvalidDiscriminant(r.path(i), raw, e.Name())
	}
	return t, nil
}

// SetTag writes the discriminant of the named tag into an enum field.
func (r *Record) SetTag(name, tag string) error {
	i, err := r.layout.lookup(name)
	if err != nil {
		return err
	}
	return r.setTagAt(i, tag)
}

func (r *Record) setTagAt(i int, tag string) error {
	e, ok := r.layout.fields[i].Spec.(*Enum)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, r.path(i), "Tag", r.layout.fields[i].Spec.Name())
	}
	d, ok := e.Discriminant(tag)
	if !ok {
		return errors.InvalidEnum(errors.PhaseEncode, r.path(i), tag, e.Name())
	}
	s := r.layout.spans[i]
	bits.Set(r.data, s.Offset, s.Width, d)
	return nil
}

// Bool reads a 1-bit field.
func (r *Record) Bool(name string) (bool, error) {
	i, err := r.layout.lookup(name)
	if err != nil {
		return false, err
	}
	s := r.layout.spans[i]
	if s.Width != 1 {
		return false, errors.TypeMismatch(errors.PhaseDecode, r.path(i), "bool", r.layout.fields[i].Spec.Name())
	}
	return bits.Get[uint8](r.data, s.Offset, 1) == 1, nil
}

// SetBool writes a 1-bit field.
func (r *Record) SetBool(name string, v bool) error {
	i, err := r.layout.lookup(name)
	if err != nil {
		return err
	}
	return r.setBoolAt(i, v)
}

func (r *Record) setBoolAt(i int, v bool) error {
	s := r.layout.spans[i]
	if s.Width != 1 {
		return errors.TypeMismatch(errors.PhaseEncode, r.path(i), "bool", r.layout.fields[i].Spec.Name())
	}
	var b uint8
	if v {
		b = 1
	}
	if e, ok := r.layout.fields[i].Spec.(*Enum); ok {
		if _, declared := e.Lookup(uint64(b)); !declared {
			return errors.InvalidEnum(errors.PhaseEncode, r.path(i), v, e.Name())
		}
	}
	bits.Set(r.data, s.Offset, 1, b)
	return nil
}

// Load replaces the buffer with Layout().Size() bytes read from mem at offset.
func (r *Record) Load(mem Memory, offset uint32) error {
	if mem == nil {
		return errors.NilPointer(errors.PhaseLoad, []string{r.layout.name}, "Memory")
	}
	if err := r.checkBounds(mem, offset); err != nil {
		return err
	}
	data, err := mem.Read(offset, uint32(len(r.data)))
	if err != nil {
		return errors.Load(fmt.Sprintf("read %s at %d", r.layout.name, offset), err)
	}
	if len(data) != len(r.data) {
		return errors.Load(fmt.Sprintf("read %s at %d: short read of %d bytes", r.layout.name, offset, len(data)), nil)
	}
	copy(r.data, data)
	return nil
}

// Store writes the buffer to mem at offset.
func (r *Record) Store(mem Memory, offset uint32) error {
	if mem == nil {
		return errors.NilPointer(errors.PhaseLoad, []string{r.layout.name}, "Memory")
	}
	if err := r.checkBounds(mem, offset); err != nil {
		return err
	}
	if err := mem.Write(offset, r.data); err != nil {
		return errors.Load(fmt.Sprintf("write %s at %d", r.layout.name, offset), err)
	}
	return nil
}

// StoreNew allocates Layout().Size() bytes through alloc, stores the buffer
// there and returns the pointer. The allocation is freed if the write fails.
func (r *Record) StoreNew(mem Memory, alloc Allocator) (uint32, error) {
	if alloc == nil {
		return 0, errors.NilPointer(errors.PhaseLoad, []string{r.layout.name}, "Allocator")
	}
	size := uint32(len(r.data))
	ptr, err := alloc.Alloc(size, 1)
	if err != nil {
		return 0, errors.Load(fmt.Sprintf("allocate %d bytes for %s", size, r.layout.name), err)
	}
	if err := r.Store(mem, ptr); err != nil {
		alloc.Free(ptr, size, 1)
		return 0, err
	}
	return ptr, nil
}

func (r *Record) checkBounds(mem Memory, offset uint32) error {
	sizer, ok := mem.(MemorySizer)
	if !ok {
		return nil
	}
	end := uint64(offset) + uint64(len(r.data))
	if end > uint64(sizer.Size()) {
		return errors.OutOfBounds(errors.PhaseLoad, []string{r.layout.name}, int(end), int(sizer.Size()))
	}
	return nil
}

func (r *Record) path(i int) []string {
	return []string{r.layout.name, r.layout.fields[i].Name}
}

func (r *Record) String() string {
	var b strings.Builder
	b.WriteString(r.layout.name)
	b.WriteByte('{')
	for i, f := range r.layout.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteString(": ")
		v, err := r.getAt(i)
		if err != nil {
			s := r.layout.spans[i]
			fmt.Fprintf(&b, "<invalid %d>", bits.Get[uint64](r.data, s.Offset, s.Width))
			continue
		}
		fmt.Fprint(&b, v)
	}
	b.WriteByte('}')
	return b.String()
}

// toUint64 converts any built-in integer. negative is set for signed values
// below zero.
func toUint64(v any) (u uint64, ok, negative bool) {
	switch n := v.(type) {
	case uint:
		return uint64(n), true, false
	case uint8:
		return uint64(n), true, false
	case uint16:
		return uint64(n), true, false
	case uint32:
		return uint64(n), true, false
	case uint64:
		return n, true, false
	case uintptr:
		return uint64(n), true, false
	case int:
		return uint64(n), true, n < 0
	case int8:
		return uint64(n), true, n < 0
	case int16:
		return uint64(n), true, n < 0
	case int32:
		return uint64(n), true, n < 0
	case int64:
		return uint64(n), true, n < 0
	}
	return 0, false, false
}
