// Package errors provides error handling for bnls.
//
// This package re-exports github.com/cockroachdb/errors so every package
// gets stack traces, wrapping and user-facing hints from a single import:
//
//	if err := registry.Validate(); err != nil {
//	    return errors.Wrap(err, "failed to build vocabulary")
//	}
//
//	return errors.WithHintf(err, "remove %q from one of the groups", spelling)
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
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Combination
var (
	CombineErrors = crdb.CombineErrors
	Mark          = crdb.Mark
)

// Sentinel errors shared across bnls. Check with errors.Is, add context with
// errors.Wrap or errors.Mark.
var (
	// ErrNotFound indicates the requested document, category or key does not exist
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates the request or input was malformed
	ErrInvalidRequest = New("invalid request")

	// ErrCollision indicates a spelling was registered for two different targets
	ErrCollision = New("spelling collision")

	// ErrIncompatible indicates a vocabulary extension targets another schema version
	ErrIncompatible = New("incompatible vocabulary version")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsCollisionError checks if an error is or wraps ErrCollision
func IsCollisionError(err error) bool {
	return err != nil && Is(err, ErrCollision)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrNotFound)
}

// NewCollisionError creates a collision error with a formatted message
func NewCollisionError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrCollision)
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidRequest)
}
