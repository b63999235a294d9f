package registration

import (
	"context"
	"errors"
	"testing"

	"github.com/ymatsuda/auth-service/internal/domain"
)

func TestRegister_EmptyEmail_ReturnsMissingField(t *testing.T) {
	t.Parallel()

	svc, users, _, _ := newSvcForTest(t)

	_, err := svc.Register(context.Background(), "", "pw")
	requireErrCode(t, err, "missing_field")
	if users.saveCalls != 0 {
		t.Fatalf("expected zero writes, got %d", users.saveCalls)
	}
}

func TestRegister_EmptyPassword_ReturnsMissingField(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvcForTest(t)

	_, err := svc.Register(context.Background(), "a@b.com", "")
	requireErrCode(t, err, "missing_field")
}

func TestRegister_Success_PersistsAndReturnsUser(t *testing.T) {
	t.Parallel()

	svc, users, _, pub := newSvcForTest(t)

	u, err := svc.Register(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if u.ID == "" {
		t.Fatalf("expected user ID set")
	}
	if u.Email != "a@b.com" {
		t.Fatalf("unexpected email: %s", u.Email)
	}
	if u.HashedPassword == "pw" {
		t.Fatalf("plaintext password stored")
	}
	if u.HashedPassword != "hash:pw" {
		t.Fatalf("unexpected hash: %s", u.HashedPassword)
	}
	if !u.IsActive {
		t.Fatalf("expected active user")
	}
	if _, ok := users.byID[u.ID]; !ok {
		t.Fatalf("expected user stored by id")
	}
	if users.saveCalls != 1 {
		t.Fatalf("expected exactly one write, got %d", users.saveCalls)
	}
	if len(pub.published) != 1 || pub.published[0].UserID != u.ID {
		t.Fatalf("expected registered event, got %+v", pub.published)
	}
}

func TestRegister_DuplicateEmail_NoWrite(t *testing.T) {
	t.Parallel()

	svc, users, _, _ := newSvcForTest(t)

	if _, err := svc.Register(context.Background(), "taken@x.com", "pw"); err != nil {
		t.Fatalf("setup register failed: %v", err)
	}

	_, err := svc.Register(context.Background(), "taken@x.com", "anything")
	requireErrCode(t, err, "duplicate_email")

	var de *domain.Error
	if !errors.As(err, &de) || de.Meta["email"] != "taken@x.com" {
		t.Fatalf("expected conflicting email in meta, got %v", err)
	}
	if users.saveCalls != 1 {
		t.Fatalf("expected no second write, got %d", users.saveCalls)
	}
}

func TestRegister_HashFail_ReturnsHashFailed(t *testing.T) {
	t.Parallel()

	svc, users, hasher, _ := newSvcForTest(t)
	hasher.hashFn = func(pw string) (string, error) { return "", errors.New("boom") }

	_, err := svc.Register(context.Background(), "a@b.com", "pw")
	requireErrCode(t, err, "hash_failed")
	if users.saveCalls != 0 {
		t.Fatalf("expected zero writes, got %d", users.saveCalls)
	}
}

func TestRegister_LookupError_Propagates(t *testing.T) {
	t.Parallel()

	svc, users, _, _ := newSvcForTest(t)
	users.findByEmailErr = domain.ErrDBUnavailable(errors.New("down"))

	_, err := svc.Register(context.Background(), "a@b.com", "pw")
	requireErrCode(t, err, "db_unavailable")
}

func TestRegister_SaveConflict_PropagatesIntegrityViolation(t *testing.T) {
	t.Parallel()

	// A concurrent registration racing past the pre-check surfaces as the
	// storage engine's constraint rejection, unchanged.
	svc, users, _, _ := newSvcForTest(t)
	users.saveErr = domain.ErrIntegrityViolation(errors.New("unique_violation"))

	_, err := svc.Register(context.Background(), "a@b.com", "pw")
	requireErrCode(t, err, "integrity_violation")
}

func TestRegister_PublishFailure_DoesNotFailRegistration(t *testing.T) {
	t.Parallel()

	svc, _, _, pub := newSvcForTest(t)
	pub.publishErr = errors.New("broker down")

	u, err := svc.Register(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if u.ID == "" {
		t.Fatalf("expected user persisted despite publish failure")
	}
}

func TestRegister_PureFunctionHasher(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc := NewService(users, HasherFunc(func(pw string) string { return "pure:" + pw }), nil)

	u, err := svc.Register(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if u.HashedPassword != "pure:pw" {
		t.Fatalf("expected injected pure hasher to be used, got %s", u.HashedPassword)
	}
}
