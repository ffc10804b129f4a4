package bitfield

import (
	"fmt"
	mathbits "math/bits"

	"github.com/wippyai/bitfield/errors"
	"github.com/wippyai/bitfield/internal/bits"
)

// Word is the set of unsigned types a field of at most 64 bits is read into.
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integer is the set of types an enum accessor can yield discriminants as.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// field is the resolved position shared by all accessors.
type field struct {
	layout *Layout
	index  int
	span   BitSpan
}

func bind(l *Layout, name string) (field, error) {
	if l == nil {
		return field{}, errors.NilPointer(errors.PhaseDefine, []string{name}, "Layout")
	}
	i, err := l.lookup(name)
	if err != nil {
		return field{}, err
	}
	return field{layout: l, index: i, span: l.spans[i]}, nil
}

// check panics when r was built from a different layout. Handing a record to
// the wrong accessor is a programming error, like indexing past a slice.
func (f field) check(r *Record) {
	if r.layout != f.layout {
		panic(fmt.Sprintf("bitfield: accessor for %s.%s used with %s record",
			f.layout.name, f.layout.fields[f.index].Name, r.layout.name))
	}
}

func (f field) path() []string {
	return []string{f.layout.name, f.layout.fields[f.index].Name}
}

// Span returns the bound field's location.
func (f field) Span() BitSpan {
	return f.span
}

// UintField reads and writes one unsigned field as T.
type UintField[T Word] struct {
	field
}

// UintAccessor binds the named field. T must be the field's natural storage
// type, e.g. uint16 for a 12-bit field.
func UintAccessor[T Word](l *Layout, name string) (UintField[T], error) {
	f, err := bind(l, name)
	if err != nil {
		return UintField[T]{}, err
	}
	if err := rejectEnum(l, f, "uint"); err != nil {
		return UintField[T]{}, err
	}
	want, _ := StorageFor(f.span.Width)
	if got := mathbits.Len64(uint64(^T(0))); got != want.Bits() {
		return UintField[T]{}, errors.TypeMismatch(errors.PhaseDefine, f.path(),
			fmt.Sprintf("uint%d", got), l.fields[f.index].Spec.Name())
	}
	return UintField[T]{field: f}, nil
}

// rejectEnum refuses raw accessors on enum fields, whose writes must stay
// inside the declared tag set.
func rejectEnum(l *Layout, f field, goType string) error {
	e, ok := l.fields[f.index].Spec.(*Enum)
	if !ok {
		return nil
	}
	return errors.New(errors.PhaseDefine, errors.KindTypeMismatch).
		Path(f.path()...).
		GoType(goType).
		Spec(e.Name()).
		Detail("enum field, use EnumAccessor").
		Build()
}

// Get returns the field value.
func (a UintField[T]) Get(r *Record) T {
	a.check(r)
	return bits.Get[T](r.data, a.span.Offset, a.span.Width)
}

// Set writes the low Width bits of v; higher bits are discarded.
func (a UintField[T]) Set(r *Record, v T) {
	a.check(r)
	bits.Set(r.data, a.span.Offset, a.span.Width, v)
}

// Uint128Field reads and writes a field of up to 128 bits.
type Uint128Field struct {
	field
}

// Uint128Accessor binds the named field, which must be wider than 64 bits.
func Uint128Accessor(l *Layout, name string) (Uint128Field, error) {
	f, err := bind(l, name)
	if err != nil {
		return Uint128Field{}, err
	}
	if err := rejectEnum(l, f, "Uint128"); err != nil {
		return Uint128Field{}, err
	}
	if f.span.Width <= 64 {
		return Uint128Field{}, errors.TypeMismatch(errors.PhaseDefine, f.path(),
			"Uint128", l.fields[f.index].Spec.Name())
	}
	return Uint128Field{field: f}, nil
}

func (a Uint128Field) Get(r *Record) Uint128 {
	a.check(r)
	hi, lo := bits.Get128(r.data, a.span.Offset, a.span.Width)
	return Uint128{Hi: hi, Lo: lo}
}

// Set writes the low Width bits of v.
func (a Uint128Field) Set(r *Record, v Uint128) {
	a.check(r)
	bits.Set128(r.data, a.span.Offset, a.span.Width, v.Hi, v.Lo)
}

// BoolField reads and writes a 1-bit field.
type BoolField struct {
	field
}

// BoolAccessor binds the named 1-bit field.
func BoolAccessor(l *Layout, name string) (BoolField, error) {
	f, err := bind(l, name)
	if err != nil {
		return BoolField{}, err
	}
	if err := rejectEnum(l, f, "bool"); err != nil {
		return BoolField{}, err
	}
	if f.span.Width != 1 {
		return BoolField{}, errors.TypeMismatch(errors.PhaseDefine, f.path(),
			"bool", l.fields[f.index].Spec.Name())
	}
	return BoolField{field: f}, nil
}

func (a BoolField) Get(r *Record) bool {
	a.check(r)
	return bits.Get[uint8](r.data, a.span.Offset, 1) == 1
}

func (a BoolField) Set(r *Record, v bool) {
	a.check(r)
	var b uint8
	if v {
		b = 1
	}
	bits.Set(r.data, a.span.Offset, 1, b)
}

// EnumField maps an enum field to a Go integer type whose values are the
// enum's discriminants.
type EnumField[T Integer] struct {
	field
	enum *Enum
}

// EnumAccessor binds the named enum field.
func EnumAccessor[T Integer](l *Layout, name string) (EnumField[T], error) {
	f, err := bind(l, name)
	if err != nil {
		return EnumField[T]{}, err
	}
	e, ok := l.fields[f.index].Spec.(*Enum)
	if !ok {
		return EnumField[T]{}, errors.TypeMismatch(errors.PhaseDefine, f.path(),
			"enum", l.fields[f.index].Spec.Name())
	}
	return EnumField[T]{field: f, enum: e}, nil
}

// Enum returns the bound field's enum.
func (a EnumField[T]) Enum() *Enum {
	return a.enum
}

// Get decodes the field. Undeclared bit patterns yield an error matching
// errors.ErrInvalidDiscriminant.
func (a EnumField[T]) Get(r *Record) (T, error) {
	t, err := a.Tag(r)
	if err != nil {
		return 0, err
	}
	return T(t.Discriminant), nil
}

// Set writes v, which must be one of the enum's discriminants.
func (a EnumField[T]) Set(r *Record, v T) error {
	a.check(r)
	if v < 0 {
		return errors.InvalidEnum(errors.PhaseEncode, a.path(), v, a.enum.Name())
	}
	d := uint64(v)
	if _, ok := a.enum.Lookup(d); !ok {
		return errors.InvalidEnum(errors.PhaseEncode, a.path(), v, a.enum.Name())
	}
	bits.Set(r.data, a.span.Offset, a.span.Width, d)
	return nil
}

// Tag decodes the field to its Tag.
func (a EnumField[T]) Tag(r *Record) (Tag, error) {
	a.check(r)
	raw := bits.Get[uint64](r.data, a.span.Offset, a.span.Width)
	t, ok := a.enum.Lookup(raw)
	if !ok {
		return Tag{}, errors.InvalidDiscriminant(a.path(), raw, a.enum.Name())
	}
	return t, nil
}
