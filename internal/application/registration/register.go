package registration

import (
	"context"

	"github.com/ymatsuda/auth-service/internal/domain"
)

// Register enforces email uniqueness at registration time, hashes the
// password and persists a new user. Exactly one durable write happens on
// success, zero on failure.
//
// The pre-check is check-then-act and not race-free across concurrent
// registrations; the storage engine's unique constraint is the last line
// of defense and surfaces as an integrity_violation conflict, which is
// propagated unchanged.
func (s *Service) Register(ctx context.Context, email, password string) (domain.User, error) {
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if password == "" {
		return domain.User{}, domain.ErrMissingField("password")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, err
	}
	if existing != nil {
		return domain.User{}, domain.ErrDuplicateEmail(email)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, domain.ErrHashFailed(err)
	}

	created, err := s.users.Save(ctx, domain.NewUser(email, hash))
	if err != nil {
		return domain.User{}, err
	}

	s.publishRegistered(ctx, created)

	return created, nil
}
