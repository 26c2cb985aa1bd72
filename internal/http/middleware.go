package http

import (
	"context"
	"net/http"

	"github.com/rlourenco/catalog-admin/internal/auth"
)

type contextKey string

const (
	userIDKey    = contextKey("user_id")
	userEmailKey = contextKey("user_email")
)

var tokenStore auth.TokenStore

func SetTokenStore(s auth.TokenStore) {
	tokenStore = s
}

// AuthMiddleware requires a valid, non-revoked session token and puts the
// user's identity on the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := auth.TokenClaims(r.Header.Get("Authorization"))
		if err != nil {
			http.Error(w, "missing or invalid token", http.StatusUnauthorized)
			return
		}

		if jti, _ := claims["jti"].(string); jti != "" && tokenStore != nil {
			revoked, err := tokenStore.SessionRevoked(r.Context(), jti)
			if err != nil {
				http.Error(w, "could not verify session", http.StatusInternalServerError)
				return
			}
			if revoked {
				http.Error(w, "session revoked", http.StatusUnauthorized)
				return
			}
		}

		userID, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, userEmailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetUserID(r *http.Request) string {
	if val, ok := r.Context().Value(userIDKey).(string); ok {
		return val
	}
	return ""
}

func GetUserEmail(r *http.Request) string {
	if val, ok := r.Context().Value(userEmailKey).(string); ok {
		return val
	}
	return ""
}
