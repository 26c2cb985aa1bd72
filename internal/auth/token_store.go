package auth

import (
	"context"
	"errors"
	"time"
)

// TokenStore holds short-lived authentication state: pending sign-in
// tokens (stored hashed, consumed exactly once), revoked session IDs, and
// per-email sign-in request counters.
type TokenStore interface {
	SaveSignInToken(ctx context.Context, tokenHash, email string, ttl time.Duration) error
	// RedeemSignInToken consumes the token and returns the email it was
	// issued for, or ErrTokenInvalid when unknown or expired.
	RedeemSignInToken(ctx context.Context, tokenHash string) (string, error)

	RevokeSession(ctx context.Context, jti string, ttl time.Duration) error
	SessionRevoked(ctx context.Context, jti string) (bool, error)

	// CountSignInRequest increments and returns the number of sign-in
	// requests for email within the current window.
	CountSignInRequest(ctx context.Context, email string, window time.Duration) (int64, error)
}

var ErrTokenInvalid = errors.New("sign-in token is invalid or expired")
