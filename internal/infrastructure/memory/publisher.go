package memory

import (
	"context"

	"github.com/ymatsuda/auth-service/internal/application/registration"
	"github.com/ymatsuda/auth-service/internal/logger"
)

// NoopPublisher logs events instead of publishing them. Used when no
// broker is configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (p *NoopPublisher) PublishUserRegistered(ctx context.Context, evt registration.UserRegisteredEvent) error {
	logger.WithCtx(ctx).Debug().
		Str("user_id", evt.UserID).
		Str("email", evt.Email).
		Msg("noop publish: user registered")
	return nil
}
