// Package errs provides the unified error type used across all of graphix.
//
// Every subsystem (descriptor builder, declaration loaders, filestore, …)
// returns *errs.Error to its callers. Callers use the Is* predicates to
// handle errors without importing the package that produced them.
//
// Usage:
//
//	// In the builder, report a bad declaration:
//	return nil, errs.UnsupportedType(`field "tags"`, "[]string")
//
//	// In a handler, check the error kind:
//	if errs.IsUnsupportedType(err) {
//	    http.Error(w, err.Error(), http.StatusUnprocessableEntity)
//	}
package errs

import (
	"context"
	"errors"
	"fmt"
)

// ErrKind categorises an error without exposing subsystem-specific codes.
type ErrKind int

const (
	ErrKindUnknown          ErrKind = iota
	ErrKindUnsupportedType          // native type has no dialect mapping
	ErrKindUnknownModifier          // modifier key outside the recognised set
	ErrKindEmptyOverride            // string override present but empty
	ErrKindInvalidInput             // malformed declaration or bad arguments
	ErrKindNotFound                 // no object, no bucket, no file
	ErrKindConnectionFailed         // cannot reach the backend
	ErrKindTimeout                  // deadline exceeded
	ErrKindPermissionDenied         // access denied / auth failure
	ErrKindIOFailed                 // local or remote write/read failure
	ErrKindCanceled                 // caller gave up before completion
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindUnsupportedType:
		return "unsupported_type"
	case ErrKindUnknownModifier:
		return "unknown_modifier"
	case ErrKindEmptyOverride:
		return "empty_override"
	case ErrKindInvalidInput:
		return "invalid_input"
	case ErrKindNotFound:
		return "not_found"
	case ErrKindConnectionFailed:
		return "connection_failed"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindPermissionDenied:
		return "permission_denied"
	case ErrKindIOFailed:
		return "io_failed"
	case ErrKindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by all graphix subsystems.
type Error struct {
	Kind    ErrKind
	Message string
	Cause   error // underlying error, preserved for logging
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// --- Constructors ---

// New creates an *Error with the given kind and message and no cause.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf is New with a formatted message.
func Newf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error with the given kind, message, and an underlying cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// UnsupportedType reports that typ, declared on subject, has no column type.
// subject names the offending declaration, e.g. `field "tags"`.
func UnsupportedType(subject, typ string) *Error {
	return Newf(ErrKindUnsupportedType, "%s: unsupported type %q", subject, typ)
}

// UnknownModifier reports a modifier key that subject does not accept.
func UnknownModifier(subject, key string) *Error {
	return Newf(ErrKindUnknownModifier, "%s: unknown modifier %q", subject, key)
}

// EmptyOverride reports a string modifier that was supplied empty.
func EmptyOverride(subject, key string) *Error {
	return Newf(ErrKindEmptyOverride, "%s: modifier %q must not be empty", subject, key)
}

// --- Predicates ---

// IsUnsupportedType reports whether err is a native type without a mapping.
func IsUnsupportedType(err error) bool {
	return kindOf(err) == ErrKindUnsupportedType
}

// IsUnknownModifier reports whether err is an unrecognised modifier key.
func IsUnknownModifier(err error) bool {
	return kindOf(err) == ErrKindUnknownModifier
}

// IsEmptyOverride reports whether err is an empty string override.
func IsEmptyOverride(err error) bool {
	return kindOf(err) == ErrKindEmptyOverride
}

// IsInvalidInput reports whether err was caused by bad input from the caller.
func IsInvalidInput(err error) bool {
	return kindOf(err) == ErrKindInvalidInput
}

// IsDeclaration reports whether err is any of the declaration errors a user
// can fix by editing their input.
func IsDeclaration(err error) bool {
	switch kindOf(err) {
	case ErrKindUnsupportedType, ErrKindUnknownModifier, ErrKindEmptyOverride, ErrKindInvalidInput:
		return true
	}
	return false
}

// IsNotFound reports whether err represents a missing object, bucket or file.
func IsNotFound(err error) bool {
	return kindOf(err) == ErrKindNotFound
}

// IsTimeout reports whether err was caused by an exceeded deadline.
func IsTimeout(err error) bool {
	return kindOf(err) == ErrKindTimeout
}

// IsCanceled reports whether err was caused by context cancellation.
func IsCanceled(err error) bool {
	return kindOf(err) == ErrKindCanceled
}

// IsConnectionFailed reports whether err is a connectivity failure.
func IsConnectionFailed(err error) bool {
	return kindOf(err) == ErrKindConnectionFailed
}

// IsPermissionDenied reports whether err is an access control failure.
func IsPermissionDenied(err error) bool {
	return kindOf(err) == ErrKindPermissionDenied
}

// IsIOFailed reports whether err is a read or write failure.
func IsIOFailed(err error) bool {
	return kindOf(err) == ErrKindIOFailed
}

// Interrupted wraps a context error with the kind matching its cause:
// timeout for an exceeded deadline, canceled for cancellation, unknown
// otherwise.
func Interrupted(msg string, err error) *Error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(ErrKindTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return Wrap(ErrKindCanceled, msg, err)
	default:
		return Wrap(ErrKindUnknown, msg, err)
	}
}

// KindOf extracts the ErrKind from any error in the chain.
func KindOf(err error) ErrKind {
	return kindOf(err)
}

func kindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindUnknown
}
