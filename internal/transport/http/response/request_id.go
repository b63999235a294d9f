package response

import (
	"net/http"

	appctx "github.com/ymatsuda/auth-service/internal/pkg/context"
)

// RequestIDFromContext extracts the request id set by the middleware, if any.
func RequestIDFromContext(r *http.Request) string {
	return appctx.GetRequestID(r.Context())
}
