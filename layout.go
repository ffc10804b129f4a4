package bitfield

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/wippyai/bitfield/errors"
	"github.com/wippyai/bitfield/internal/bits"
)

// FieldSpec declares one named field of a layout.
type FieldSpec struct {
	Spec Specifier
	Name string
}

// Field pairs a field name with its specifier.
func Field(name string, spec Specifier) FieldSpec {
	return FieldSpec{Name: name, Spec: spec}
}

// BitSpan locates a field in the packed buffer.
type BitSpan struct {
	Offset int
	Width  int
}

// End returns the first bit after the field.
func (s BitSpan) End() int {
	return s.Offset + s.Width
}

func (s BitSpan) String() string {
	return fmt.Sprintf("[%d, %d)", s.Offset, s.End())
}

// Layout is an ordered, byte-aligned sequence of fields. Field i starts at
// the sum of the widths of fields 0..i-1; reordering fields changes every
// later offset. A Layout is immutable and safe for concurrent use.
type Layout struct {
	index  map[string]int
	name   string
	fields []FieldSpec
	spans  []BitSpan
	bits   int
}

// NewLayout assigns each field its BitSpan in declaration order and checks
// that the total width is a multiple of eight.
func NewLayout(name string, fields ...FieldSpec) (*Layout, error) {
	if name == "" {
		return nil, errors.InvalidInput(errors.PhaseDefine, "layout name is empty")
	}
	if len(fields) == 0 {
		return nil, errors.New(errors.PhaseDefine, errors.KindInvalidInput).
			Path(name).Detail("layout has no fields").Build()
	}

	l := &Layout{
		name:   name,
		index:  make(map[string]int, len(fields)),
		fields: make([]FieldSpec, len(fields)),
		spans:  make([]BitSpan, len(fields)),
	}
	copy(l.fields, fields)

	running := 0
	for i, f := range l.fields {
		if f.Name == "" {
			return nil, errors.New(errors.PhaseDefine, errors.KindInvalidInput).
				Path(name).Value(i).Detail("field %d has no name", i).Build()
		}
		if _, dup := l.index[f.Name]; dup {
			return nil, errors.Duplicate(errors.PhaseDefine, []string{name}, "field", f.Name)
		}
		if isNilSpec(f.Spec) {
			return nil, errors.NilPointer(errors.PhaseDefine, []string{name, f.Name}, "Specifier")
		}
		w := f.Spec.Bits()
		if w < 1 || w > bits.MaxWidth {
			return nil, errors.InvalidWidth([]string{name, f.Name}, w, 1, bits.MaxWidth)
		}
		l.index[f.Name] = i
		l.spans[i] = BitSpan{Offset: running, Width: w}
		running += w
	}
	if running%8 != 0 {
		return nil, errors.Unaligned(name, running)
	}
	l.bits = running

	Logger().Debug("layout defined",
		zap.String("layout", name),
		zap.Int("fields", len(l.fields)),
		zap.Int("bits", l.bits),
		zap.Int("bytes", l.Size()),
	)
	return l, nil
}

// MustLayout is like NewLayout but panics on error. It is intended for
// package-level declarations, where an invalid layout must stop initialization.
func MustLayout(name string, fields ...FieldSpec) *Layout {
	l, err := NewLayout(name, fields...)
	if err != nil {
		panic(err)
	}
	return l
}

func isNilSpec(s Specifier) bool {
	if s == nil {
		return true
	}
	e, ok := s.(*Enum)
	return ok && e == nil
}

// Name returns the layout name.
func (l *Layout) Name() string {
	return l.name
}

// Size returns the packed buffer length in bytes.
func (l *Layout) Size() int {
	return l.bits / 8
}

// Bits returns the total width of all fields.
func (l *Layout) Bits() int {
	return l.bits
}

// NumFields returns the number of fields.
func (l *Layout) NumFields() int {
	return len(l.fields)
}

// Field returns the i-th field declaration.
func (l *Layout) Field(i int) FieldSpec {
	return l.fields[i]
}

// Fields returns the field declarations in order.
func (l *Layout) Fields() []FieldSpec {
	out := make([]FieldSpec, len(l.fields))
	copy(out, l.fields)
	return out
}

// Index returns the position of the named field.
func (l *Layout) Index(name string) (int, bool) {
	i, ok := l.index[name]
	return i, ok
}

// Span returns the BitSpan of the named field.
func (l *Layout) Span(name string) (BitSpan, bool) {
	i, ok := l.index[name]
	if !ok {
		return BitSpan{}, false
	}
	return l.spans[i], true
}

// SpanAt returns the BitSpan of the i-th field.
func (l *Layout) SpanAt(i int) BitSpan {
	return l.spans[i]
}

// Spans returns every field's BitSpan in order.
func (l *Layout) Spans() []BitSpan {
	out := make([]BitSpan, len(l.spans))
	copy(out, l.spans)
	return out
}

func (l *Layout) lookup(name string) (int, error) {
	i, ok := l.index[name]
	if !ok {
		return 0, errors.FieldUnknown(errors.PhaseRuntime, []string{l.name}, name)
	}
	return i, nil
}

// New returns a zero-filled instance of the layout.
func (l *Layout) New() *Record {
	return &Record{layout: l, data: make([]byte, l.Size())}
}

// Decode returns an instance holding a copy of data, which must be exactly
// Size bytes long. Field values are not validated until they are read.
func (l *Layout) Decode(data []byte) (*Record, error) {
	if len(data) != l.Size() {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path(l.name).Value(len(data)).
			Detail("buffer is %d bytes, layout needs %d", len(data), l.Size()).Build()
	}
	r := l.New()
	copy(r.data, data)
	return r, nil
}

// Describe documents the byte layout for consumers reading the same bytes
// without this package: field order, bit ranges and specifiers.
func (l *Layout) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d bytes, %d bits, LSB-first within each byte\n", l.name, l.Size(), l.bits)

	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "field\tspec\tbits\tbytes\tstorage")
	for i, f := range l.fields {
		s := l.spans[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d..%d\t%s\n",
			f.Name, f.Spec.Name(), s, s.Offset/8, (s.End()-1)/8, f.Spec.Storage())
	}
	tw.Flush()
	return b.String()
}

func (l *Layout) String() string {
	parts := make([]string, len(l.fields))
	for i, f := range l.fields {
		parts[i] = f.Name + ": " + f.Spec.Name()
	}
	return l.name + "{" + strings.Join(parts, ", ") + "}"
}
