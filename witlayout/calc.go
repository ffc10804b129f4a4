package witlayout

import (
	"fmt"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/bitfield"
	"github.com/wippyai/bitfield/errors"
)

// PadField is the name of the trailing field added by WithPadding.
const PadField = "_pad"

type options struct {
	padding bool
}

// Option configures a Calculator.
type Option func(*options)

// WithPadding appends a PadField that rounds the layout up to a byte
// boundary instead of failing with an unaligned error.
func WithPadding() Option {
	return func(o *options) {
		o.padding = true
	}
}

// Calculator converts WIT types to layouts. Enums are built once per type
// definition and shared by every layout that references them.
// A Calculator is not safe for concurrent use.
type Calculator struct {
	enums map[*wit.TypeDef]*bitfield.Enum
	opts  options
}

func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		enums: make(map[*wit.TypeDef]*bitfield.Enum),
	}
	for _, opt := range opts {
		opt(&c.opts)
	}
	return c
}

// Layout builds a layout named name from a record type definition.
func (c *Calculator) Layout(name string, t *wit.TypeDef) (*bitfield.Layout, error) {
	if t == nil {
		return nil, errors.NilPointer(errors.PhaseDefine, []string{name}, "*wit.TypeDef")
	}
	if _, ok := t.Kind.(*wit.Record); !ok {
		return nil, errors.New(errors.PhaseDefine, errors.KindUnsupported).
			Path(name).Detail("layout source must be a record, got %T", t.Kind).Build()
	}

	fields, err := c.Fields("", t)
	if err != nil {
		return nil, err
	}

	if c.opts.padding {
		total := 0
		for _, f := range fields {
			total += f.Spec.Bits()
		}
		if rem := total % 8; rem != 0 {
			pad, _ := bitfield.Bits(8 - rem)
			fields = append(fields, bitfield.Field(PadField, pad))
		}
	}
	return bitfield.NewLayout(name, fields...)
}

// Fields returns the flattened field list for t, each name prefixed with
// prefix and a dot when prefix is not empty.
func (c *Calculator) Fields(prefix string, t wit.Type) ([]bitfield.FieldSpec, error) {
	switch typ := t.(type) {
	case wit.Bool:
		return single(prefix, bitfield.Bool), nil
	case wit.U8:
		return single(prefix, bitfield.B8), nil
	case wit.U16:
		return single(prefix, bitfield.B16), nil
	case wit.U32:
		return single(prefix, bitfield.B32), nil
	case wit.U64:
		return single(prefix, bitfield.B64), nil
	case *wit.TypeDef:
		return c.typeDefFields(prefix, typ)
	default:
		return nil, c.unsupported(prefix, t)
	}
}

func (c *Calculator) typeDefFields(prefix string, t *wit.TypeDef) ([]bitfield.FieldSpec, error) {
	switch kind := t.Kind.(type) {
	case *wit.Record:
		return c.recordFields(prefix, kind)
	case *wit.Enum:
		e, err := c.enum(prefix, t, kind)
		if err != nil {
			return nil, err
		}
		return single(prefix, e), nil
	case *wit.Flags:
		return c.flagsFields(prefix, kind)
	case wit.Type:
		return c.Fields(prefix, kind)
	default:
		return nil, c.unsupported(prefix, t.Kind)
	}
}

func (c *Calculator) recordFields(prefix string, r *wit.Record) ([]bitfield.FieldSpec, error) {
	var out []bitfield.FieldSpec
	for _, field := range r.Fields {
		sub, err := c.Fields(join(prefix, field.Name), field.Type)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}

func (c *Calculator) flagsFields(prefix string, f *wit.Flags) ([]bitfield.FieldSpec, error) {
	out := make([]bitfield.FieldSpec, len(f.Flags))
	for i, flag := range f.Flags {
		out[i] = bitfield.Field(join(prefix, flag.Name), bitfield.Bool)
	}
	return out, nil
}

func (c *Calculator) enum(prefix string, t *wit.TypeDef, e *wit.Enum) (*bitfield.Enum, error) {
	if cached, ok := c.enums[t]; ok {
		return cached, nil
	}

	name := prefix
	if t.Name != nil && *t.Name != "" {
		name = *t.Name
	}
	names := make([]string, len(e.Cases))
	for i, cs := range e.Cases {
		names[i] = cs.Name
	}
	built, err := bitfield.NewEnumNames(name, names)
	if err != nil {
		return nil, err
	}

	c.enums[t] = built
	return built, nil
}

func (c *Calculator) unsupported(path string, t any) error {
	return errors.New(errors.PhaseDefine, errors.KindUnsupported).
		Path(path).GoType(typeName(t)).Detail("no packed representation").Build()
}

func typeName(t any) string {
	if td, ok := t.(*wit.TypeDef); ok && td.Name != nil {
		return *td.Name
	}
	if t == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", t)
}

func single(name string, spec bitfield.Specifier) []bitfield.FieldSpec {
	return []bitfield.FieldSpec{bitfield.Field(name, spec)}
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
