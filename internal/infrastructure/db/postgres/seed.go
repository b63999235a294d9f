package postgres

import (
	"context"

	"github.com/ymatsuda/auth-service/internal/domain"
	"github.com/ymatsuda/auth-service/internal/logger"
)

type SeederHasher interface {
	Hash(password string) (string, error)
}

type SeederRepo interface {
	Save(ctx context.Context, u domain.User) (domain.User, error)
}

// SeedUsers inserts a fixed set of demo accounts for dev environments.
// Duplicates are ignored so restarts are safe.
func SeedUsers(ctx context.Context, repo SeederRepo, hasher SeederHasher) {
	type seedUser struct {
		Email string
		Pass  string
	}

	seeds := []seedUser{
		{Email: "demo@example.com", Pass: "DemoPassword123!"},
		{Email: "test@example.com", Pass: "TestPassword123!"},
	}

	for _, s := range seeds {
		hash, err := hasher.Hash(s.Pass)
		if err != nil {
			logger.Logger.Warn().Err(err).Str("email", s.Email).Msg("seed hash failed")
			continue
		}

		if _, err := repo.Save(ctx, domain.NewUser(s.Email, hash)); err != nil {
			// duplicate on restart; nothing to do
			continue
		}
	}

	logger.Logger.Info().Msg("postgres users seeded")
}
