package domain

import (
	"errors"
	"fmt"
)

// ErrKind is used to map domain errors to HTTP status codes consistently.
type ErrKind string

const (
	KindValidation     ErrKind = "validation"     // 400
	KindNotFound       ErrKind = "not_found"      // 404
	KindConflict       ErrKind = "conflict"       // 409
	KindRateLimited    ErrKind = "rate_limited"   // 429
	KindInfrastructure ErrKind = "infrastructure" // 503
	KindInternal       ErrKind = "internal"       // 500
)

// Error is a structured domain error.
// - Kind: high-level category for HTTP mapping
// - Code: stable machine code (do not change casually)
// - Message: safe summary for clients (avoid leaking sensitive details)
// - Meta: optional details (field, reason, etc.)
// - Cause: wrapped internal error for logging/diagnostics
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Meta    map[string]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

func WithMeta(err *Error, meta map[string]string) *Error {
	err.Meta = meta
	return err
}

func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ----------------------
// Validation errors (400)
// ----------------------

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindValidation, "invalid_json", "invalid JSON body", cause)
}

func ErrMissingField(field string) *Error {
	return WithMeta(New(KindValidation, "missing_field", "missing required field"), map[string]string{
		"field": field,
	})
}

func ErrInvalidField(field, reason string) *Error {
	return WithMeta(New(KindValidation, "invalid_field", "invalid field"), map[string]string{
		"field":  field,
		"reason": reason,
	})
}

func ErrWeakPassword(reason string) *Error {
	return WithMeta(New(KindValidation, "weak_password", "password does not meet requirements"), map[string]string{
		"reason": reason,
	})
}

// ----------------------
// Not Found (404)
// ----------------------

func ErrUserNotFound() *Error {
	return New(KindNotFound, "user_not_found", "user not found")
}

// ----------------------
// Conflict (409)
// ----------------------

// ErrDuplicateEmail is returned by the registration pre-check; it carries
// the conflicting email so callers can report it.
func ErrDuplicateEmail(email string) *Error {
	return WithMeta(New(KindConflict, "duplicate_email", "email already registered"), map[string]string{
		"email": email,
	})
}

// ErrIntegrityViolation is returned when the storage engine rejects a write
// due to a constraint breach, e.g. two concurrent registrations racing past
// the duplicate pre-check.
func ErrIntegrityViolation(cause error) *Error {
	return Wrap(KindConflict, "integrity_violation", "storage constraint violated", cause)
}

// ----------------------
// Rate limit (429)
// ----------------------

func ErrRateLimited(scope string) *Error {
	return WithMeta(New(KindRateLimited, "rate_limited", "too many requests"), map[string]string{
		"scope": scope,
	})
}

// ----------------------
// Infrastructure / internal (5xx)
// ----------------------

func ErrDBUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "db_unavailable", "database unavailable", cause)
}

func ErrHashFailed(cause error) *Error {
	return Wrap(KindInternal, "hash_failed", "password hashing failed", cause)
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "internal error", cause)
}
