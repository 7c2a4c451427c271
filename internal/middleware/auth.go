package middleware

import (
	"context"
	"net/http"
	"strings"

	"giftcases-rest-api/internal/model"
	"giftcases-rest-api/internal/service"
	"giftcases-rest-api/pkg/apierror"
)

// IdentityKey is the key for storing the authenticated identity in
// request context.
const IdentityKey contextKey = "identity"

// NewAuthMiddleware verifies the bearer credential in the Authorization
// header and attaches the embedded identity to the request context.
// Missing credentials get 401, failed verification 403.
func NewAuthMiddleware(tokens *service.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			parts := strings.SplitN(auth, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				writeError(w, apierror.Unauthorized("Authorization required"))
				return
			}

			identity, err := tokens.Verify(parts[1])
			if err != nil {
				writeError(w, apierror.Forbidden("Invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeError writes an API error response.
func writeError(w http.ResponseWriter, err *apierror.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	_, _ = w.Write(err.ToJSON())
}

// IdentityFromContext retrieves the authenticated identity, or nil when
// the request went through no auth middleware.
func IdentityFromContext(ctx context.Context) *model.Identity {
	if id, ok := ctx.Value(IdentityKey).(*model.Identity); ok {
		return id
	}
	return nil
}
