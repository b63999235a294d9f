package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the domain entity, independent of any storage representation.
// ID and CreatedAt are assigned at construction and never reassigned.
type User struct {
	ID             string
	Email          string
	HashedPassword string
	CreatedAt      time.Time
	IsActive       bool
}

// NewUser constructs a user with a fresh identifier and default activation.
// The identifier is generated here, before any repository is involved.
func NewUser(email, hashedPassword string) User {
	return User{
		ID:             uuid.NewString(),
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
		IsActive:       true,
	}
}
