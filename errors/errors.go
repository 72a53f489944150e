// Package errors provides error handling for movets.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints
//
// Usage:
//
//	// Wrap a sentinel with context so errors.Is keeps working
//	return errors.Wrapf(errors.ErrUnresolvedStructReference, "struct %s", tag)
//
//	// Attach a path to a filesystem failure
//	return errors.WrapIO(err, path)
//
//	// Check errors
//	if errors.Is(err, errors.ErrUnsupportedType) {
//	    // handle tuple types
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf   = crdb.AssertionFailedf
	IsAssertionFailure = crdb.IsAssertionFailure
)

// Sentinel errors for the generation pipeline.
// Wrap these with errors.Wrapf() to add context while preserving the type.
var (
	// ErrUnresolvedStructReference indicates a struct type names a struct absent from the package
	ErrUnresolvedStructReference = New("unresolved struct reference")

	// ErrUnsupportedType indicates a type with no mapping rule (tuples)
	ErrUnsupportedType = New("unsupported type: not yet implemented")

	// ErrSerializationFailure indicates the IDL could not be rendered as JSON
	ErrSerializationFailure = New("serialization failure")

	// ErrIOFailure indicates a filesystem read or write failed
	ErrIOFailure = New("i/o failure")

	// ErrMalformedIDL indicates the IDL document could not be decoded
	ErrMalformedIDL = New("malformed IDL")

	// ErrInvalidConfig indicates configuration failed validation
	ErrInvalidConfig = New("invalid configuration")

	// ErrStaleOutput indicates generated files on disk differ from a fresh generation
	ErrStaleOutput = New("generated output is stale")

	// ErrInvalidOutput indicates a generated unit failed the syntax check
	ErrInvalidOutput = New("generated output does not parse")
)

// WrapIO marks err as an I/O failure on path. The original error stays
// reachable through errors.Is, as does ErrIOFailure.
func WrapIO(err error, path string) error {
	if err == nil {
		return nil
	}
	return Mark(Wrapf(err, "%s", path), ErrIOFailure)
}

// IsUnresolvedStructReference checks if an error is or wraps ErrUnresolvedStructReference
func IsUnresolvedStructReference(err error) bool {
	return err != nil && Is(err, ErrUnresolvedStructReference)
}

// IsUnsupportedType checks if an error is or wraps ErrUnsupportedType
func IsUnsupportedType(err error) bool {
	return err != nil && Is(err, ErrUnsupportedType)
}

// IsIOFailure checks if an error is or wraps ErrIOFailure
func IsIOFailure(err error) bool {
	return err != nil && Is(err, ErrIOFailure)
}
