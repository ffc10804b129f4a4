package decl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wippyai/bitfield"
	"github.com/wippyai/bitfield/errors"
)

const headerYAML = `
name: Header
enums:
  - name: DeliveryMode
    variants: [Fixed, Variable, Minimal, Rejected, Scheduled]
fields:
  - {name: valid, type: bool}
  - {name: mode, enum: DeliveryMode}
  - {name: prio, bits: 4}
  - {name: len, type: u16}
  - name: kind
    enum:
      name: Kind
      policy: pow2
      variants: [A, B, C, D]
  - {name: rest, type: b6}
`

func TestParseBuild(t *testing.T) {
	d, err := Parse([]byte(headerYAML))
	require.NoError(t, err)
	require.Equal(t, "Header", d.Name)
	require.Len(t, d.Fields, 6)
	require.Equal(t, "DeliveryMode", d.Fields[1].Enum.Ref)

	l, err := d.Build()
	require.NoError(t, err)
	require.Equal(t, 32, l.Bits())
	require.Equal(t, 4, l.Size())

	mode, ok := l.Field(1).Spec.(*bitfield.Enum)
	require.True(t, ok)
	require.Equal(t, 3, mode.Bits())

	kind, ok := l.Field(4).Spec.(*bitfield.Enum)
	require.True(t, ok)
	require.Equal(t, 2, kind.Bits())

	r := l.New()
	require.NoError(t, r.SetTag("mode", "Rejected"))
	require.NoError(t, r.SetUint("len", 1500))
	tag, err := r.Tag("mode")
	require.NoError(t, err)
	require.Equal(t, "Rejected", tag.Name)
}

func TestParse_ExplicitVariants(t *testing.T) {
	d, err := Parse([]byte(`
name: L
fields:
  - name: m
    enum:
      policy: discriminants
      variants:
        - Low
        - {name: High, value: 6}
        - Higher
  - {name: x, bits: 5}
`))
	require.NoError(t, err)

	l, err := d.Build()
	require.NoError(t, err)

	e := l.Field(0).Spec.(*bitfield.Enum)
	require.Equal(t, "m", e.Name())
	require.Equal(t, 3, e.Bits())
	disc, ok := e.Discriminant("Higher")
	require.True(t, ok)
	require.Equal(t, uint64(7), disc)
}

func TestParse_JSON(t *testing.T) {
	d, err := Parse([]byte(`{"name": "J", "fields": [{"name": "a", "bits": 3}, {"name": "b", "type": "B5"}]}`))
	require.NoError(t, err)
	l, err := d.Build()
	require.NoError(t, err)
	require.Equal(t, 1, l.Size())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ``},
		{"unknown key", `{name: X, colour: red, fields: []}`},
		{"bad yaml", `name: [`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			require.Error(t, err)
		})
	}
}

func TestParse_UnknownNestedKeys(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		key  string
	}{
		{
			"enum key",
			`{name: H, fields: [{name: m, enum: {name: M, polcy: pow2, variants: [A, B, C]}}, {name: p, bits: 6}]}`,
			"polcy",
		},
		{
			"variant key",
			`{name: H, fields: [{name: m, enum: {name: M, variants: [A, {name: B, valeu: 3}]}}, {name: p, bits: 6}]}`,
			"valeu",
		},
		{
			"shared enum key",
			`{name: H, enums: [{name: M, bit: 4, variants: [A]}], fields: [{name: m, enum: M}, {name: p, bits: 7}]}`,
			"bit",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			require.Error(t, err)
			var e *errors.Error
			require.True(t, errors.As(err, &e), "got %v", err)
			require.Equal(t, errors.KindInvalidInput, e.Kind)
			require.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		kind errors.Kind
	}{
		{"unaligned", `{name: X, fields: [{name: a, bits: 3}]}`, errors.KindUnaligned},
		{"no kind", `{name: X, fields: [{name: a}]}`, errors.KindInvalidInput},
		{"two kinds", `{name: X, fields: [{name: a, bits: 8, type: u8}]}`, errors.KindInvalidInput},
		{"width", `{name: X, fields: [{name: a, bits: 200}]}`, errors.KindInvalidWidth},
		{"signed type", `{name: X, fields: [{name: a, type: s8}]}`, errors.KindUnsupported},
		{"unknown enum", `{name: X, fields: [{name: a, enum: Missing}]}`, errors.KindNotFound},
		{"bad policy", `{name: X, fields: [{name: a, enum: {name: E, policy: odd, variants: [A]}}]}`, errors.KindInvalidInput},
		{"not pow2", `{name: X, fields: [{name: a, enum: {name: E, policy: pow2, variants: [A, B, C]}}]}`, errors.KindInvalidInput},
		{"range", `{name: X, fields: [{name: a, enum: {name: E, bits: 2, variants: [A, {name: B, value: 4}]}}]}`, errors.KindDiscriminantRange},
		{"duplicate enum", `{name: X, enums: [{name: E, variants: [A]}, {name: E, variants: [B]}], fields: [{name: a, bits: 8}]}`, errors.KindDuplicate},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := Parse([]byte(tc.doc))
			require.NoError(t, err)
			_, err = d.Build()
			var e *errors.Error
			require.True(t, errors.As(err, &e), "got %v", err)
			require.Equal(t, tc.kind, e.Kind)
		})
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		bits int
	}{
		{"bool", 1},
		{"u8", 8},
		{"u16", 16},
		{"u32", 32},
		{"u64", 64},
		{"b1", 1},
		{"B24", 24},
		{"b128", 128},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			s, err := ParseType(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.bits, s.Bits())
		})
	}

	for _, bad := range []string{"f32", "string", "b0", "b129", "nonsense type"} {
		_, err := ParseType(bad)
		require.Error(t, err, bad)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "header.yaml")
	require.NoError(t, os.WriteFile(path, []byte(headerYAML), 0o644))

	l, err := LoadLayout(path)
	require.NoError(t, err)
	require.Equal(t, "Header", l.Name())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestFromLayout_RoundTrip(t *testing.T) {
	d, err := Parse([]byte(headerYAML))
	require.NoError(t, err)
	l, err := d.Build()
	require.NoError(t, err)

	out, err := FromLayout(l).Marshal()
	require.NoError(t, err)
	require.Contains(t, string(out), "name: Header")

	back, err := Parse(out)
	require.NoError(t, err)
	l2, err := back.Build()
	require.NoError(t, err)

	require.Equal(t, l.Spans(), l2.Spans())
	require.Equal(t, l.String(), l2.String())
}
