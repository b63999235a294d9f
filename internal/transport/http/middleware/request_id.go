package middleware

import (
	"net/http"

	"github.com/google/uuid"

	appctx "github.com/ymatsuda/auth-service/internal/pkg/context"
)

const HeaderXRequestID = "X-Request-Id"

// RequestID echoes or assigns a request id and stores it on the context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(HeaderXRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		w.Header().Set(HeaderXRequestID, reqID)

		ctx := appctx.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
