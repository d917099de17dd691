package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/picshare/picshare-go/internal/crypto"
	"github.com/picshare/picshare-go/internal/model"
	"github.com/picshare/picshare-go/internal/repository"
)

type contextKey string

const identityKey contextKey = "identity"

// IdentityResolver maps a verified token subject to a live account.
// Implemented by repository.UserRepository.
type IdentityResolver interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// Auth returns middleware that validates a Bearer token from the
// Authorization header and resolves its subject to a live account. A token
// that verifies but references a missing account fails closed: the token
// payload alone is never trusted.
func Auth(secret string, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				writeJSONError(w, http.StatusUnauthorized, "invalid authorization format")
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			user, err := resolver.GetByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					writeJSONError(w, http.StatusNotFound, "user not found")
					return
				}
				writeJSONError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext extracts the resolved identity from the request context.
func IdentityFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(identityKey).(*model.User)
	return user, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
