package postgres

import (
	"time"

	"github.com/ymatsuda/auth-service/internal/domain"
)

// userRow mirrors the users relation. Identifiers are stored in canonical
// string form; timestamps and booleans round-trip exactly.
type userRow struct {
	ID             string
	Email          string
	HashedPassword string
	CreatedAt      time.Time
	IsActive       bool
}

func toDomainUser(ur userRow) domain.User {
	return domain.User{
		ID:             ur.ID,
		Email:          ur.Email,
		HashedPassword: ur.HashedPassword,
		CreatedAt:      ur.CreatedAt,
		IsActive:       ur.IsActive,
	}
}
