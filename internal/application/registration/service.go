package registration

import (
	"context"

	"github.com/ymatsuda/auth-service/internal/domain"
	"github.com/ymatsuda/auth-service/internal/logger"
)

// Service coordinates the duplicate pre-check, password hashing and
// persistence of new users.
type Service struct {
	users  UserRepository
	hasher PasswordHasher
	pub    EventPublisher
}

func NewService(users UserRepository, hasher PasswordHasher, pub EventPublisher) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		pub:    pub,
	}
}

// UserByID looks a user up by identifier. Returns (nil, nil) on miss.
func (s *Service) UserByID(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, domain.ErrMissingField("id")
	}
	return s.users.FindByID(ctx, id)
}

// UserByEmail looks a user up by email. Returns (nil, nil) on miss.
func (s *Service) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, domain.ErrMissingField("email")
	}
	return s.users.FindByEmail(ctx, email)
}

// publishRegistered emits the registration event best-effort: a broker
// outage must not fail a registration that is already durably committed.
func (s *Service) publishRegistered(ctx context.Context, u domain.User) {
	if s.pub == nil {
		return
	}
	evt := UserRegisteredEvent{UserID: u.ID, Email: u.Email}
	if err := s.pub.PublishUserRegistered(ctx, evt); err != nil {
		logger.WithCtx(ctx).Warn().
			Err(err).
			Str("user_id", u.ID).
			Msg("user_registered event publish failed")
	}
}
