package http_handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ymatsuda/auth-service/internal/application/registration"
	"github.com/ymatsuda/auth-service/internal/domain"
	"github.com/ymatsuda/auth-service/internal/logger"
	"github.com/ymatsuda/auth-service/internal/transport/http/dto"
	"github.com/ymatsuda/auth-service/internal/transport/http/response"
)

type AuthHandler struct {
	svc *registration.Service
}

func NewAuthHandler(svc *registration.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", u.ID).
		Str("email", u.Email).
		Msg("user_registered")

	response.Created(w, dto.RegisterData{User: dto.NewUserView(u)})
}

func (h *AuthHandler) UserByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	u, err := h.svc.UserByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	if u == nil {
		// absent repository result becomes 404 only at the transport edge
		response.WriteError(w, r, domain.ErrUserNotFound())
		return
	}

	response.OK(w, dto.UserData{User: dto.NewUserView(*u)})
}
