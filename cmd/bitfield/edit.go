package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/bitfield"
	"github.com/wippyai/bitfield/errors"
)

// assignment is one name=value pair from -set.
type assignment struct {
	field string
	value string
}

func parseAssignments(s string) ([]assignment, error) {
	var out []assignment
	for _, kv := range strings.Split(s, ",") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
			return nil, fmt.Errorf("invalid assignment %q, want name=value", kv)
		}
		out = append(out, assignment{field: strings.TrimSpace(parts[0]), value: strings.TrimSpace(parts[1])})
	}
	return out, nil
}

// assign sets a field from its textual form: a tag name or discriminant for
// enum fields, true/false for 1-bit fields, otherwise a decimal, 0x, 0o or
// 0b unsigned integer.
func assign(r *bitfield.Record, field, value string) error {
	l := r.Layout()
	i, ok := l.Index(field)
	if !ok {
		return errors.FieldUnknown(errors.PhaseRuntime, []string{l.Name()}, field)
	}
	spec := l.Field(i).Spec

	if _, isEnum := spec.(*bitfield.Enum); isEnum {
		if _, err := bitfield.ParseUint128(value); err != nil {
			return r.SetTag(field, value)
		}
	}
	if spec.Bits() == 1 {
		if b, err := strconv.ParseBool(value); err == nil {
			return r.SetBool(field, b)
		}
	}

	v, err := bitfield.ParseUint128(value)
	if err != nil {
		return err
	}
	return r.SetUint128(field, v)
}

// formatValue renders field i for display. Undecodable enum values show
// their raw bits.
func formatValue(r *bitfield.Record, i int) string {
	name := r.Layout().Field(i).Name
	v, err := r.Get(name)
	if err != nil {
		raw, _ := r.Uint128(name)
		return "<invalid " + raw.String() + ">"
	}
	if t, ok := v.(bitfield.Tag); ok {
		return fmt.Sprintf("%s (%d)", t.Name, t.Discriminant)
	}
	return fmt.Sprint(v)
}

func parseHex(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return hex.DecodeString(s)
}

func formatHex(data []byte) string {
	return fmt.Sprintf("% x", data)
}
