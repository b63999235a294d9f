package dto

import (
	"strings"

	"github.com/ymatsuda/auth-service/internal/domain"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Validate() error {
	if r.Email == "" {
		return domain.ErrMissingField("email")
	}
	if r.Password == "" {
		return domain.ErrMissingField("password")
	}
	if len(r.Password) < 12 {
		return domain.ErrWeakPassword("min length 12")
	}
	if !strings.Contains(r.Email, "@") {
		return domain.ErrInvalidField("email", "invalid format")
	}
	return nil
}
