package bitfield

import (
	"strings"
	"testing"

	"github.com/wippyai/bitfield/errors"
)

var scenarioLayout = MustLayout("Header",
	Field("a", B1),
	Field("b", B3),
	Field("c", B4),
	Field("d", B24),
)

func TestNewLayout_Spans(t *testing.T) {
	want := []BitSpan{
		{Offset: 0, Width: 1},
		{Offset: 1, Width: 3},
		{Offset: 4, Width: 4},
		{Offset: 8, Width: 24},
	}
	got := scenarioLayout.Spans()
	if len(got) != len(want) {
		t.Fatalf("spans: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("span %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if scenarioLayout.Size() != 4 {
		t.Errorf("size: got %d, want 4", scenarioLayout.Size())
	}
	if scenarioLayout.Bits() != 32 {
		t.Errorf("bits: got %d, want 32", scenarioLayout.Bits())
	}
}

func TestNewLayout_SizeInvariant(t *testing.T) {
	mode := MustEnum("Mode", variants("A", "B", "C", "D", "E"))
	layouts := []*Layout{
		MustLayout("L8", Field("x", B8)),
		MustLayout("L16", Field("x", B7), Field("y", B9)),
		MustLayout("L128", Field("x", B128)),
		MustLayout("L136", Field("x", B1), Field("y", B128), Field("z", B7)),
		MustLayout("LEnum", Field("m", mode), Field("x", B5)),
	}
	for _, l := range layouts {
		sum := 0
		for _, f := range l.Fields() {
			sum += f.Spec.Bits()
		}
		if l.Size() != sum/8 || sum%8 != 0 {
			t.Errorf("%s: size %d for %d bits", l.Name(), l.Size(), sum)
		}
		last := l.SpanAt(l.NumFields() - 1)
		if last.End() != sum {
			t.Errorf("%s: last span ends at %d, want %d", l.Name(), last.End(), sum)
		}
	}
}

func TestNewLayout_Unaligned(t *testing.T) {
	_, err := NewLayout("Odd", Field("a", B3), Field("b", B4))
	if !errors.Is(err, errors.ErrUnaligned) {
		t.Fatalf("expected unaligned error, got %v", err)
	}
	if !strings.Contains(err.Error(), "7 bits") {
		t.Errorf("error should mention the total width: %v", err)
	}
}

func TestNewLayout_Errors(t *testing.T) {
	var nilEnum *Enum
	tests := []struct {
		name   string
		layout string
		fields []FieldSpec
		kind   errors.Kind
	}{
		{"empty name", "", []FieldSpec{Field("a", B8)}, errors.KindInvalidInput},
		{"no fields", "L", nil, errors.KindInvalidInput},
		{"empty field name", "L", []FieldSpec{Field("", B8)}, errors.KindInvalidInput},
		{"duplicate field", "L", []FieldSpec{Field("a", B4), Field("a", B4)}, errors.KindDuplicate},
		{"nil spec", "L", []FieldSpec{Field("a", nil)}, errors.KindNilPointer},
		{"nil enum", "L", []FieldSpec{Field("a", nilEnum)}, errors.KindNilPointer},
		{"zero width", "L", []FieldSpec{Field("a", Uint{})}, errors.KindInvalidWidth},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLayout(tc.layout, tc.fields...)
			var e *errors.Error
			if !errors.As(err, &e) {
				t.Fatalf("expected *errors.Error, got %v", err)
			}
			if e.Kind != tc.kind {
				t.Errorf("kind: got %s, want %s", e.Kind, tc.kind)
			}
		})
	}
}

func TestLayout_Lookup(t *testing.T) {
	if i, ok := scenarioLayout.Index("c"); !ok || i != 2 {
		t.Errorf("Index(c): got (%d, %v)", i, ok)
	}
	if s, ok := scenarioLayout.Span("d"); !ok || s.Offset != 8 {
		t.Errorf("Span(d): got (%v, %v)", s, ok)
	}
	if _, ok := scenarioLayout.Span("missing"); ok {
		t.Error("Span(missing) should fail")
	}
	if scenarioLayout.Field(1).Name != "b" {
		t.Errorf("Field(1): got %q", scenarioLayout.Field(1).Name)
	}
}

func TestLayout_Decode(t *testing.T) {
	r, err := scenarioLayout.Decode([]byte{0xEF, 0xF6, 0x00, 0x00})
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := r.Uint("d"); got != 246 {
		t.Errorf("d: got %d, want 246", got)
	}
	if _, err := scenarioLayout.Decode([]byte{0x00}); err == nil {
		t.Error("short buffer should fail")
	}
}

func TestLayout_Describe(t *testing.T) {
	out := scenarioLayout.Describe()
	for _, want := range []string{"Header: 4 bytes, 32 bits", "[8, 32)", "B24", "u32", "1..3"} {
		if !strings.Contains(out, want) {
			t.Errorf("Describe missing %q:\n%s", want, out)
		}
	}
	if got := scenarioLayout.String(); got != "Header{a: B1, b: B3, c: B4, d: B24}" {
		t.Errorf("String: got %q", got)
	}
}

func TestMustLayout_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustLayout("Odd", Field("a", B3))
}
