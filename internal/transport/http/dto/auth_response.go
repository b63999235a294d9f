package dto

import (
	"time"

	"github.com/ymatsuda/auth-service/internal/domain"
)

// UserView is the standard user payload in responses. The password hash
// never leaves the service.
type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserView(u domain.User) UserView {
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RegisterData is returned by register.
type RegisterData struct {
	User UserView `json:"user"`
}

// UserData is returned by user lookup.
type UserData struct {
	User UserView `json:"user"`
}
