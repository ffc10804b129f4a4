package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDefine  Phase = "define"  // layout and enum construction
	PhaseEncode  Phase = "encode"  // value to packed bits
	PhaseDecode  Phase = "decode"  // packed bits to value
	PhaseParse   Phase = "parse"   // declaration parsing
	PhaseLoad    Phase = "load"    // guest memory transfer
	PhaseRuntime Phase = "runtime" // everything else
)

// Kind categorizes the error
type Kind string

const (
	KindUnaligned           Kind = "unaligned"
	KindInvalidWidth        Kind = "invalid_width"
	KindDiscriminantRange   Kind = "discriminant_range"
	KindInvalidDiscriminant Kind = "invalid_discriminant"
	KindDuplicate           Kind = "duplicate"
	KindTypeMismatch        Kind = "type_mismatch"
	KindOutOfBounds         Kind = "out_of_bounds"
	KindInvalidData         Kind = "invalid_data"
	KindUnsupported         Kind = "unsupported"
	KindFieldUnknown        Kind = "field_unknown"
	KindOverflow            Kind = "overflow"
	KindNilPointer          Kind = "nil_pointer"
	KindInvalidEnum         Kind = "invalid_enum"
	KindNotFound            Kind = "not_found"
	KindInvalidInput        Kind = "invalid_input"
)

// Sentinels for errors.Is. They match any *Error with the same Phase and Kind.
var (
	ErrUnaligned           = &Error{Phase: PhaseDefine, Kind: KindUnaligned}
	ErrInvalidWidth        = &Error{Phase: PhaseDefine, Kind: KindInvalidWidth}
	ErrDiscriminantRange   = &Error{Phase: PhaseDefine, Kind: KindDiscriminantRange}
	ErrInvalidDiscriminant = &Error{Phase: PhaseDecode, Kind: KindInvalidDiscriminant}
	ErrFieldUnknown        = &Error{Phase: PhaseRuntime, Kind: KindFieldUnknown}
	ErrOverflow            = &Error{Phase: PhaseEncode, Kind: KindOverflow}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Spec   string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.Spec != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.Spec != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", spec ")
			b.WriteString(e.Spec)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("spec ")
			b.WriteString(e.Spec)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.Spec != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Spec sets the specifier name
func (b *Builder) Spec(s string) *Builder {
	b.err.Spec = s
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Definition-time constructors

// Unaligned creates the error for a layout whose total width is not a multiple of eight
func Unaligned(layout string, totalBits int) *Error {
	return &Error{
		Phase:  PhaseDefine,
		Kind:   KindUnaligned,
		Path:   []string{layout},
		Detail: fmt.Sprintf("total width %d bits must be a multiple of eight", totalBits),
		Value:  totalBits,
	}
}

// InvalidWidth creates an error for a field or enum width outside [min, max]
func InvalidWidth(path []string, width, min, max int) *Error {
	return &Error{
		Phase:  PhaseDefine,
		Kind:   KindInvalidWidth,
		Path:   path,
		Detail: fmt.Sprintf("width %d outside [%d, %d]", width, min, max),
		Value:  width,
	}
}

// DiscriminantRange creates an error for a tag whose discriminant does not fit the enum width
func DiscriminantRange(path []string, tag string, disc int64, width int) *Error {
	upper := "2^64"
	if width < 64 {
		upper = fmt.Sprint(uint64(1) << uint(width))
	}
	return &Error{
		Phase:  PhaseDefine,
		Kind:   KindDiscriminantRange,
		Path:   path,
		Detail: fmt.Sprintf("discriminant %d of tag %q outside valid range [0, %s) for %d bits", disc, tag, upper, width),
		Value:  disc,
	}
}

// Duplicate creates an error for a repeated field name, tag name or discriminant
func Duplicate(phase Phase, path []string, what string, value any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicate,
		Path:   path,
		Detail: fmt.Sprintf("duplicate %s %v", what, value),
		Value:  value,
	}
}

// Runtime constructors

// InvalidDiscriminant creates a decode error for a raw pattern that matches no tag
func InvalidDiscriminant(path []string, disc uint64, enumName string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidDiscriminant,
		Path:   path,
		Spec:   enumName,
		Detail: fmt.Sprintf("discriminant %d matches no tag", disc),
		Value:  disc,
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, spec string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		GoType: goType,
		Spec:   spec,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, path []string, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Path:   path,
		GoType: goType,
		Detail: "nil pointer",
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, spec string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Spec:   spec,
		Detail: fmt.Sprintf("value %v overflows %s", value, spec),
		Value:  value,
	}
}

// FieldUnknown creates an unknown field error
func FieldUnknown(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldUnknown,
		Path:   path,
		Detail: fmt.Sprintf("unknown field %q", fieldName),
	}
}

// InvalidEnum creates an invalid enum value error
func InvalidEnum(phase Phase, path []string, value any, enumName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidEnum,
		Path:   path,
		Spec:   enumName,
		Detail: fmt.Sprintf("invalid enum value %v for %s", value, enumName),
		Value:  value,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Unsupported creates an unsupported feature error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what + " not supported",
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Load creates a guest memory transfer error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
