// Package errors provides standardized error types for Series operations.
// This package defines SeriesError for consistent error handling across
// all public APIs, with operation context and error wrapping support.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a SeriesError. The set is closed; every failure an
// operation can raise maps onto exactly one kind.
type Kind int

const (
	// TypeMismatch indicates operand dtypes incompatible for the requested
	// operation.
	TypeMismatch Kind = iota
	// UnsupportedDtype indicates an operation called on a dtype outside its
	// declared valid set.
	UnsupportedDtype
	// SizeMismatch indicates two Series operands of incompatible,
	// non-broadcastable sizes.
	SizeMismatch
	// IndexOutOfBounds indicates positional access beyond the series bounds
	// after negative-index normalization.
	IndexOutOfBounds
	// AlignmentError indicates a raw byte buffer whose length is not a
	// multiple of the dtype's physical element width.
	AlignmentError
	// InvalidOperands indicates a structurally wrong call, such as an
	// operation over two bare scalars.
	InvalidOperands
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case TypeMismatch:
		return "type mismatch"
	case UnsupportedDtype:
		return "unsupported dtype"
	case SizeMismatch:
		return "size mismatch"
	case IndexOutOfBounds:
		return "index out of bounds"
	case AlignmentError:
		return "alignment error"
	case InvalidOperands:
		return "invalid operands"
	default:
		return "unknown"
	}
}

// SeriesError represents standardized errors across all Series operations.
type SeriesError struct {
	Kind    Kind   // Error classification
	Op      string // Operation name (e.g., "add", "quantile", "from_binary")
	Message string // Human-readable error description
	Cause   error  // Underlying error cause
}

// Error implements the error interface.
func (e *SeriesError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for error wrapping support.
func (e *SeriesError) Unwrap() error {
	return e.Cause
}

// Is implements error equality checking for errors.Is().
func (e *SeriesError) Is(target error) bool {
	if se, ok := target.(*SeriesError); ok {
		return e.Kind == se.Kind && e.Op == se.Op && e.Message == se.Message
	}
	return false
}

// KindOf returns the kind of err when it is, or wraps, a SeriesError.
func KindOf(err error) (Kind, bool) {
	var se *SeriesError
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return 0, false
}

// IsKind reports whether err is a SeriesError of the given kind.
func IsKind(err error, k Kind) bool {
	kind, ok := KindOf(err)
	return ok && kind == k
}

// Common error constructors for consistent error creation

// NewTypeMismatchError creates an error for incompatible operand dtypes.
// Both offending sides are named in the message.
func NewTypeMismatchError(op string, left, right any) *SeriesError {
	return &SeriesError{
		Kind:    TypeMismatch,
		Op:      op,
		Message: fmt.Sprintf("incompatible operands %v and %v", left, right),
	}
}

// NewOffendingValueError creates a TypeMismatch error naming the first value
// that violates an inferred or requested dtype.
func NewOffendingValueError(op string, value any, dt any) *SeriesError {
	return &SeriesError{
		Kind:    TypeMismatch,
		Op:      op,
		Message: fmt.Sprintf("value %v does not fit dtype %v", value, dt),
	}
}

// NewUnsupportedDtypeError creates an error for operations invoked outside
// their declared dtype set. The valid set is named in the message.
func NewUnsupportedDtypeError(op string, dt any, validSet string) *SeriesError {
	return &SeriesError{
		Kind:    UnsupportedDtype,
		Op:      op,
		Message: fmt.Sprintf("dtype %v not in valid set [%s]", dt, validSet),
	}
}

// NewSizeMismatchError creates an error for non-broadcastable operand sizes.
func NewSizeMismatchError(op string, left, right int) *SeriesError {
	return &SeriesError{
		Kind:    SizeMismatch,
		Op:      op,
		Message: fmt.Sprintf("series sizes %d and %d do not match and neither is 1", left, right),
	}
}

// NewIndexOutOfBoundsError creates an error for positional access outside the
// series bounds.
func NewIndexOutOfBoundsError(op string, index, size int) *SeriesError {
	return &SeriesError{
		Kind:    IndexOutOfBounds,
		Op:      op,
		Message: fmt.Sprintf("index %d out of bounds for series of size %d", index, size),
	}
}

// NewAlignmentError creates an error for misaligned raw binary input.
func NewAlignmentError(op string, byteLen, width int, dt any) *SeriesError {
	return &SeriesError{
		Kind:    AlignmentError,
		Op:      op,
		Message: fmt.Sprintf("buffer of %d bytes is not a multiple of the %d-byte element width of dtype %v", byteLen, width, dt),
	}
}

// NewInvalidOperandsError creates an error for structurally invalid calls.
func NewInvalidOperandsError(op, message string) *SeriesError {
	return &SeriesError{
		Kind:    InvalidOperands,
		Op:      op,
		Message: message,
	}
}

// NewInternalError creates an error wrapping an unexpected internal failure.
func NewInternalError(op string, cause error) *SeriesError {
	return &SeriesError{
		Kind:    InvalidOperands,
		Op:      op,
		Message: "internal error occurred",
		Cause:   cause,
	}
}
