package decl

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.bytecodealliance.org/wit"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/bitfield"
	"github.com/wippyai/bitfield/errors"
)

// Enum policy names.
const (
	PolicyCount         = "count"
	PolicyDiscriminants = "discriminants"
	PolicyPow2          = "pow2"
)

// Declaration is the document form of a layout.
type Declaration struct {
	Name   string  `yaml:"name"`
	Enums  []*Enum `yaml:"enums,omitempty"`
	Fields []Field `yaml:"fields"`
}

// Field declares one layout field.
type Field struct {
	Name string `yaml:"name"`
	Bits int    `yaml:"bits,omitempty"`
	Type string `yaml:"type,omitempty"`
	Enum *Enum  `yaml:"enum,omitempty"`
}

// Enum declares an enumerated specifier, or refers to one by name when only
// Ref is set.
type Enum struct {
	Ref      string    `yaml:"-"`
	Name     string    `yaml:"name"`
	Policy   string    `yaml:"policy,omitempty"`
	Bits     int       `yaml:"bits,omitempty"`
	Variants []Variant `yaml:"variants"`
}

// UnmarshalYAML accepts a scalar reference or a mapping.
func (e *Enum) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		e.Ref = node.Value
		return nil
	}
	if err := checkKeys(node, "enum", "name", "policy", "bits", "variants"); err != nil {
		return err
	}
	type plain Enum
	return node.Decode((*plain)(e))
}

// MarshalYAML writes references back as scalars.
func (e *Enum) MarshalYAML() (any, error) {
	if e.Ref != "" {
		return e.Ref, nil
	}
	type plain Enum
	return (*plain)(e), nil
}

// Variant is one enum tag. A nil Value takes the previous discriminant plus one.
type Variant struct {
	Name  string `yaml:"name"`
	Value *int64 `yaml:"value,omitempty"`
}

// UnmarshalYAML accepts a bare tag name or a {name, value} mapping.
func (v *Variant) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		v.Name = node.Value
		return nil
	}
	if err := checkKeys(node, "variant", "name", "value"); err != nil {
		return err
	}
	type plain Variant
	return node.Decode((*plain)(v))
}

// checkKeys rejects mapping keys outside allowed. Decoding through
// node.Decode does not inherit the decoder's KnownFields setting.
func checkKeys(node *yaml.Node, what string, allowed ...string) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		known := false
		for _, a := range allowed {
			if key.Value == a {
				known = true
				break
			}
		}
		if !known {
			return errors.New(errors.PhaseParse, errors.KindInvalidInput).
				Detail("unknown %s key %q at line %d", what, key.Value, key.Line).
				Build()
		}
	}
	return nil
}

// MarshalYAML writes implicit variants as bare names.
func (v Variant) MarshalYAML() (any, error) {
	if v.Value == nil {
		return v.Name, nil
	}
	type plain Variant
	return plain(v), nil
}

// Parse decodes one YAML or JSON declaration. Unknown keys are rejected.
func Parse(data []byte) (*Declaration, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var d Declaration
	if err := dec.Decode(&d); err != nil {
		if err == io.EOF {
			return nil, errors.InvalidInput(errors.PhaseParse, "empty declaration")
		}
		var e *errors.Error
		if errors.As(err, &e) {
			return nil, e
		}
		return nil, errors.ParseFailed("declaration", err)
	}
	return &d, nil
}

// Load reads and parses the declaration file at path.
func Load(path string) (*Declaration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindNotFound, err, "read "+path)
	}
	return Parse(data)
}

// LoadLayout reads the declaration at path and builds its layout.
func LoadLayout(path string) (*bitfield.Layout, error) {
	d, err := Load(path)
	if err != nil {
		return nil, err
	}
	return d.Build()
}

// Marshal encodes the declaration as YAML.
func (d *Declaration) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidData, err, "encode declaration")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidData, err, "encode declaration")
	}
	return buf.Bytes(), nil
}

// Build validates the declaration and assembles its layout.
func (d *Declaration) Build() (*bitfield.Layout, error) {
	shared := make(map[string]*bitfield.Enum, len(d.Enums))
	for i, ed := range d.Enums {
		if ed == nil || ed.Ref != "" {
			return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
				Path(d.Name, "enums", strconv.Itoa(i)).
				Detail("shared enums must be declared inline").Build()
		}
		if _, dup := shared[ed.Name]; dup {
			return nil, errors.Duplicate(errors.PhaseParse, []string{d.Name, "enums"}, "enum", ed.Name)
		}
		e, err := ed.build()
		if err != nil {
			return nil, err
		}
		shared[ed.Name] = e
	}

	fields := make([]bitfield.FieldSpec, len(d.Fields))
	for i, f := range d.Fields {
		spec, err := f.spec(d.Name, shared)
		if err != nil {
			return nil, err
		}
		fields[i] = bitfield.Field(f.Name, spec)
	}
	return bitfield.NewLayout(d.Name, fields...)
}

func (f Field) spec(layout string, shared map[string]*bitfield.Enum) (bitfield.Specifier, error) {
	set := 0
	if f.Bits != 0 {
		set++
	}
	if f.Type != "" {
		set++
	}
	if f.Enum != nil {
		set++
	}
	if set != 1 {
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Path(layout, f.Name).
			Detail("field must set exactly one of bits, type or enum").Build()
	}

	switch {
	case f.Bits != 0:
		return bitfield.Bits(f.Bits)
	case f.Type != "":
		return ParseType(f.Type)
	case f.Enum.Ref != "":
		e, ok := shared[f.Enum.Ref]
		if !ok {
			return nil, errors.NotFound(errors.PhaseParse, "enum", f.Enum.Ref)
		}
		return e, nil
	default:
		ed := *f.Enum
		if ed.Name == "" {
			ed.Name = f.Name
		}
		return ed.build()
	}
}

func (ed *Enum) build() (*bitfield.Enum, error) {
	var opts []bitfield.EnumOption
	switch strings.ToLower(ed.Policy) {
	case "", PolicyCount:
	case PolicyDiscriminants:
		opts = append(opts, bitfield.WithPolicy(bitfield.WidthFromDiscriminants))
	case PolicyPow2:
		opts = append(opts, bitfield.RequirePowerOfTwo())
	default:
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Path(ed.Name).Value(ed.Policy).
			Detail("unknown policy %q", ed.Policy).Build()
	}
	if ed.Bits != 0 {
		opts = append(opts, bitfield.WithBits(ed.Bits))
	}

	variants := make([]bitfield.Variant, len(ed.Variants))
	for i, v := range ed.Variants {
		if v.Value != nil {
			variants[i] = bitfield.Explicit(v.Name, *v.Value)
		} else {
			variants[i] = bitfield.Implicit(v.Name)
		}
	}
	return bitfield.NewEnum(ed.Name, variants, opts...)
}

// ParseType resolves a field type name: a WIT primitive (bool, u8, u16,
// u32, u64) or bN / BN for an N-bit unsigned field.
func ParseType(name string) (bitfield.Specifier, error) {
	name = strings.TrimSpace(name)
	if len(name) > 1 && (name[0] == 'b' || name[0] == 'B') {
		if n, err := strconv.Atoi(name[1:]); err == nil {
			return bitfield.Bits(n)
		}
	}

	t, err := wit.ParseType(name)
	if err != nil {
		return nil, errors.ParseFailed(fmt.Sprintf("type %q", name), err)
	}
	switch t.(type) {
	case wit.Bool:
		return bitfield.Bool, nil
	case wit.U8:
		return bitfield.B8, nil
	case wit.U16:
		return bitfield.B16, nil
	case wit.U32:
		return bitfield.B32, nil
	case wit.U64:
		return bitfield.B64, nil
	}
	return nil, errors.Unsupported(errors.PhaseParse, fmt.Sprintf("type %q", name))
}

// FromLayout returns the declaration of an existing layout. Enums are
// written inline with every discriminant and their width spelled out.
func FromLayout(l *bitfield.Layout) *Declaration {
	d := &Declaration{Name: l.Name(), Fields: make([]Field, l.NumFields())}
	for i, fs := range l.Fields() {
		f := Field{Name: fs.Name}
		if e, ok := fs.Spec.(*bitfield.Enum); ok {
			f.Enum = fromEnum(e)
		} else {
			f.Bits = fs.Spec.Bits()
		}
		d.Fields[i] = f
	}
	return d
}

func fromEnum(e *bitfield.Enum) *Enum {
	out := &Enum{Name: e.Name(), Bits: e.Bits(), Variants: make([]Variant, e.Len())}
	for i, t := range e.Tags() {
		v := int64(t.Discriminant)
		out.Variants[i] = Variant{Name: t.Name, Value: &v}
	}
	return out
}
