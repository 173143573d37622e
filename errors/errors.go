// Package errors provides error handling for otml.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for CLI users
//   - Marking errors with a category sentinel
//
// Usage:
//
//	// Create new error
//	err := errors.New("feature table is empty")
//
//	// Wrap with context
//	if err := decode(r); err != nil {
//	    return errors.Wrap(err, "failed to decode inventory")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "declare every feature in the \"feature\" array")
//
//	// Check errors
//	if errors.Is(err, grammar.ErrUnknownSymbol) {
//	    // handle unknown symbol
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
)

// User-facing messages and details
var (
	WithHint           = crdb.WithHint
	WithHintf          = crdb.WithHintf
	WithDetail         = crdb.WithDetail
	WithDetailf        = crdb.WithDetailf
	WithSecondaryError = crdb.WithSecondaryError
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Mark           = crdb.Mark
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Category sentinels shared across otml.
// Domain errors are marked with one of these (see Categorize) so callers that
// only care about the category can use errors.Is without knowing every
// domain sentinel.
var (
	// ErrNotFound indicates the requested symbol, feature or file does not exist
	ErrNotFound = New("not found")

	// ErrInvalidInput indicates a malformed or inconsistent inventory source
	ErrInvalidInput = New("invalid input")

	// ErrConflict indicates a duplicated definition
	ErrConflict = New("conflict")
)

// IsNotFoundError checks if an error is or is marked as ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidInputError checks if an error is or is marked as ErrInvalidInput
func IsInvalidInputError(err error) bool {
	return err != nil && Is(err, ErrInvalidInput)
}

// IsConflictError checks if an error is or is marked as ErrConflict
func IsConflictError(err error) bool {
	return err != nil && Is(err, ErrConflict)
}

// Categorize marks err with a category sentinel. errors.Is(result, category)
// holds while errors.Is(result, s) keeps working for every sentinel s
// already in err's chain.
func Categorize(err, category error) error {
	if err == nil {
		return nil
	}
	return Mark(err, category)
}
