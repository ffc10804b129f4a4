// Package errors provides structured error types for the bitfield library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, Go type and specifier names,
// and cause chain.
//
// Definition-time failures (PhaseDefine) are returned while a layout or enum
// is being built, before any packed value exists. Decode and encode failures
// are returned by field accessors at runtime and are always recoverable.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindOverflow).
//		Path("Header", "mode").
//		GoType("uint64").
//		Spec("B3").
//		Detail("value 9 does not fit in 3 bits").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Unaligned("Header", 31)
//	err := errors.InvalidDiscriminant(path, 6, "DeliveryMode")
//
// All errors implement the standard error interface and support errors.Is/As.
// The package-level sentinels match on Phase and Kind:
//
//	if errors.Is(err, errors.ErrInvalidDiscriminant) { ... }
package errors
