package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ymatsuda/auth-service/internal/transport/http/middleware"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	UserByID(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health HealthHandler
	Auth   AuthHandler

	// RegisterRateMW throttles registration; nil disables throttling.
	RegisterRateMW func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)

	r.Route("/auth/v1", func(r chi.Router) {
		if deps.RegisterRateMW != nil {
			r.With(deps.RegisterRateMW).Post("/register", deps.Auth.Register)
		} else {
			r.Post("/register", deps.Auth.Register)
		}

		r.Get("/users/{id}", deps.Auth.UserByID)
	})

	return r, nil
}
