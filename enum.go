package bitfield

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/bitfield/errors"
	"github.com/wippyai/bitfield/internal/bits"
)

const (
	maxEnumBits = 64
	// widths up to this use a dense discriminant table instead of a map
	denseTableMaxBits = 12
)

// Tag is one named member of an enumerated field.
type Tag struct {
	Name         string
	Discriminant uint64
}

func (t Tag) String() string {
	return t.Name
}

// Variant declares a tag. Implicit variants take the previous discriminant
// plus one, starting at zero.
type Variant struct {
	name     string
	value    int64
	explicit bool
}

// Implicit declares a tag whose discriminant follows the previous one.
func Implicit(name string) Variant {
	return Variant{name: name}
}

// Explicit declares a tag with a literal discriminant.
func Explicit(name string, discriminant int64) Variant {
	return Variant{name: name, value: discriminant, explicit: true}
}

// WidthPolicy selects how an enum's bit width is derived.
type WidthPolicy uint8

const (
	// WidthFromCount uses ceil(log2(N)) bits for N tags.
	WidthFromCount WidthPolicy = iota
	// WidthFromDiscriminants uses the bit length of the largest discriminant.
	WidthFromDiscriminants
)

type enumConfig struct {
	policy WidthPolicy
	bits   int
	pow2   bool
}

// EnumOption configures NewEnum.
type EnumOption func(*enumConfig)

// WithPolicy selects the width derivation policy.
func WithPolicy(p WidthPolicy) EnumOption {
	return func(c *enumConfig) {
		c.policy = p
	}
}

// WithBits fixes the width, overriding the policy.
func WithBits(n int) EnumOption {
	return func(c *enumConfig) {
		c.bits = n
	}
}

// RequirePowerOfTwo rejects enums whose tag count is not a power of two,
// so that every bit pattern decodes to a tag.
func RequirePowerOfTwo() EnumOption {
	return func(c *enumConfig) {
		c.pow2 = true
	}
}

// Enum is the specifier for a closed set of named tags. It is immutable
// and safe for concurrent use.
type Enum struct {
	byName map[string]int
	sparse map[uint64]int
	name   string
	tags   []Tag
	dense  []int32
	bits   int
}

// NewEnum validates the variants and derives the enum's width. Every
// discriminant must lie in [0, 2^width); names and discriminants must be unique.
func NewEnum(name string, variants []Variant, opts ...EnumOption) (*Enum, error) {
	var cfg enumConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if name == "" {
		return nil, errors.InvalidInput(errors.PhaseDefine, "enum name is empty")
	}
	if len(variants) == 0 {
		return nil, errors.New(errors.PhaseDefine, errors.KindInvalidInput).
			Path(name).Detail("enum has no variants").Build()
	}
	if cfg.pow2 && !bits.IsPowerOfTwo(len(variants)) {
		return nil, errors.New(errors.PhaseDefine, errors.KindInvalidInput).
			Path(name).Value(len(variants)).
			Detail("variant count %d is not a power of two", len(variants)).Build()
	}

	discs := make([]int64, len(variants))
	byName := make(map[string]int, len(variants))
	var next, maxDisc int64
	exhausted := false
	for i, v := range variants {
		if v.name == "" {
			return nil, errors.New(errors.PhaseDefine, errors.KindInvalidInput).
				Path(name).Value(i).Detail("variant %d has no name", i).Build()
		}
		if _, dup := byName[v.name]; dup {
			return nil, errors.Duplicate(errors.PhaseDefine, []string{name}, "tag", v.name)
		}
		byName[v.name] = i

		d := next
		if v.explicit {
			d = v.value
		} else if exhausted {
			return nil, errors.New(errors.PhaseDefine, errors.KindDiscriminantRange).
				Path(name, v.name).
				Detail("implicit discriminant of tag %q overflows int64", v.name).Build()
		}
		discs[i] = d
		exhausted = d == math.MaxInt64
		next = d + 1
		if d > maxDisc {
			maxDisc = d
		}
	}

	width := cfg.bits
	switch {
	case width != 0:
		if width < 1 || width > maxEnumBits {
			return nil, errors.InvalidWidth([]string{name}, width, 1, maxEnumBits)
		}
	case cfg.policy == WidthFromDiscriminants:
		width = max(1, bits.BitLen(uint64(maxDisc)))
	default:
		width = max(1, bits.CeilLog2(len(variants)))
	}

	e := &Enum{
		name:   name,
		bits:   width,
		byName: byName,
		tags:   make([]Tag, len(variants)),
	}
	seen := make(map[uint64]string, len(variants))
	for i, d := range discs {
		tag := variants[i].name
		if d < 0 || !bits.Fits(uint64(d), width) {
			return nil, errors.DiscriminantRange([]string{name, tag}, tag, d, width)
		}
		if other, dup := seen[uint64(d)]; dup {
			return nil, errors.New(errors.PhaseDefine, errors.KindDuplicate).
				Path(name, tag).Value(d).
				Detail("discriminant %d already used by tag %q", d, other).Build()
		}
		seen[uint64(d)] = tag
		e.tags[i] = Tag{Name: tag, Discriminant: uint64(d)}
	}
	e.buildLookup()

	Logger().Debug("enum defined",
		zap.String("enum", name),
		zap.Int("variants", len(e.tags)),
		zap.Int("bits", width),
	)
	return e, nil
}

// NewEnumNames declares an enum of implicit variants 0..len(names)-1.
func NewEnumNames(name string, names []string, opts ...EnumOption) (*Enum, error) {
	variants := make([]Variant, len(names))
	for i, n := range names {
		variants[i] = Implicit(n)
	}
	return NewEnum(name, variants, opts...)
}

// MustEnum is like NewEnum but panics on error. It is intended for
// package-level declarations, where an invalid enum must stop initialization.
func MustEnum(name string, variants []Variant, opts ...EnumOption) *Enum {
	e, err := NewEnum(name, variants, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Enum) buildLookup() {
	if e.bits > denseTableMaxBits {
		e.sparse = make(map[uint64]int, len(e.tags))
		for i, t := range e.tags {
			e.sparse[t.Discriminant] = i
		}
		return
	}
	e.dense = make([]int32, 1<<uint(e.bits))
	for i := range e.dense {
		e.dense[i] = -1
	}
	for i, t := range e.tags {
		e.dense[t.Discriminant] = int32(i)
	}
}

func (e *Enum) Name() string {
	return e.name
}

func (e *Enum) Bits() int {
	return e.bits
}

func (e *Enum) Storage() Storage {
	s, _ := StorageFor(e.bits)
	return s
}

// Len returns the number of tags.
func (e *Enum) Len() int {
	return len(e.tags)
}

// Tags returns the tags in declaration order.
func (e *Enum) Tags() []Tag {
	out := make([]Tag, len(e.tags))
	copy(out, e.tags)
	return out
}

// Tag returns the i-th declared tag.
func (e *Enum) Tag(i int) Tag {
	return e.tags[i]
}

// Lookup finds the tag with discriminant d.
func (e *Enum) Lookup(d uint64) (Tag, bool) {
	if e.dense != nil {
		if d >= uint64(len(e.dense)) || e.dense[d] < 0 {
			return Tag{}, false
		}
		return e.tags[e.dense[d]], true
	}
	i, ok := e.sparse[d]
	if !ok {
		return Tag{}, false
	}
	return e.tags[i], true
}

// Discriminant returns the discriminant declared for the named tag.
func (e *Enum) Discriminant(name string) (uint64, bool) {
	i, ok := e.byName[name]
	if !ok {
		return 0, false
	}
	return e.tags[i].Discriminant, true
}

// Decode maps a raw bit pattern to its tag. Patterns that match no tag only
// occur in corrupted buffers and yield an invalid_discriminant error.
func (e *Enum) Decode(raw uint64) (Tag, error) {
	t, ok := e.Lookup(raw)
	if !ok {
		return Tag{}, errors.InvalidDiscriminant([]string{e.name}, raw, e.name)
	}
	return t, nil
}

// Encode returns the discriminant of the named tag.
func (e *Enum) Encode(name string) (uint64, error) {
	d, ok := e.Discriminant(name)
	if !ok {
		return 0, errors.InvalidEnum(errors.PhaseEncode, []string{e.name}, name, e.name)
	}
	return d, nil
}

// Get decodes the tag stored at absolute bit offset of buf.
func (e *Enum) Get(buf []byte, offset int) (Tag, error) {
	return e.Decode(bits.Get[uint64](buf, offset, e.bits))
}

// Set writes the discriminant of the named tag at absolute bit offset of buf.
func (e *Enum) Set(buf []byte, offset int, name string) error {
	d, err := e.Encode(name)
	if err != nil {
		return err
	}
	bits.Set(buf, offset, e.bits, d)
	return nil
}

func (e *Enum) String() string {
	names := make([]string, len(e.tags))
	for i, t := range e.tags {
		names[i] = t.Name
	}
	return e.name + "{" + strings.Join(names, ", ") + "}"
}
