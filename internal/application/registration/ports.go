package registration

import (
	"context"

	"github.com/ymatsuda/auth-service/internal/domain"
)

/*
UserRepository
--------------
Persistence port for users.
Only describes WHAT registration needs, not HOW it's stored.

Lookups return (nil, nil) when no record matches: absence is an explicit
result, never an error. That includes empty keys, which can never have
been saved. Save returns the user rebuilt from the committed row so
storage-normalized fields round-trip.
*/
type UserRepository interface {
	Save(ctx context.Context, u domain.User) (domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

/*
PasswordHasher
--------------
Abstracts bcrypt / argon2.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// HasherFunc adapts a pure func(plaintext) -> hash to the PasswordHasher
// port, so tests can inject a trivial deterministic hasher.
type HasherFunc func(password string) string

func (f HasherFunc) Hash(password string) (string, error) {
	return f(password), nil
}

/*
EventPublisher
--------------
Publishes registration events to the message broker.
Downstream consumers (e.g. a mailer) react to them; this service does not
send emails itself.
*/
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error
}

// UserRegisteredEvent is the message emitted after a successful registration.
type UserRegisteredEvent struct {
	UserID string
	Email  string
}
