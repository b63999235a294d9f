package domain

import (
	"errors"
	"testing"
)

func TestError_ErrorString_NoCause(t *testing.T) {
	err := New(KindConflict, "duplicate_email", "email already registered")

	msg := err.Error()
	if msg == "" {
		t.Fatal("expected non-empty error string")
	}
}

func TestError_ErrorString_WithCause(t *testing.T) {
	root := errors.New("root cause")
	err := Wrap(KindInternal, "hash_failed", "hash failed", root)

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}
}

func TestError_Unwrap(t *testing.T) {
	root := errors.New("root")
	err := Wrap(KindInternal, "internal_error", "internal", root)

	if errors.Unwrap(err) != root {
		t.Fatalf("unwrap did not return cause")
	}
}

func TestWithMeta_AttachesMeta(t *testing.T) {
	err := ErrMissingField("email")

	if err.Meta == nil {
		t.Fatalf("expected meta to be set")
	}
	if err.Meta["field"] != "email" {
		t.Fatalf("unexpected meta value: %+v", err.Meta)
	}
}

func TestIs_MatchesCode(t *testing.T) {
	err := ErrDuplicateEmail("a@b.com")

	if !Is(err, "duplicate_email") {
		t.Fatalf("expected code match")
	}
	if Is(err, "something_else") {
		t.Fatalf("unexpected code match")
	}
}

func TestIs_NonDomainError(t *testing.T) {
	err := errors.New("plain error")

	if Is(err, "duplicate_email") {
		t.Fatalf("unexpected code match on plain error")
	}
}

func TestErrDuplicateEmail_CarriesEmail(t *testing.T) {
	err := ErrDuplicateEmail("taken@example.com")

	if err.Meta["email"] != "taken@example.com" {
		t.Fatalf("expected conflicting email in meta, got %+v", err.Meta)
	}
	if err.Kind != KindConflict {
		t.Fatalf("expected conflict kind, got %s", err.Kind)
	}
}

func TestErrIntegrityViolation_WrapsCause(t *testing.T) {
	root := errors.New("unique constraint")
	err := ErrIntegrityViolation(root)

	if !Is(err, "integrity_violation") {
		t.Fatalf("expected integrity_violation code")
	}
	if !errors.Is(err, root) {
		t.Fatalf("expected cause to be wrapped")
	}
}
