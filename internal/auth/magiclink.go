package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rlourenco/catalog-admin/internal/mailer"
	"github.com/rlourenco/catalog-admin/internal/models"
	"github.com/rlourenco/catalog-admin/internal/repo"
)

const (
	signInTokenTTL     = 30 * time.Minute
	signInWindow       = 15 * time.Minute
	maxSignInPerWindow = 5
)

// ErrTooManySignInRequests is returned when an email exceeds the sign-in
// request budget for the current window.
var ErrTooManySignInRequests = errors.New("too many sign-in requests")

// MagicLinkService implements passwordless sign-in: it emails a one-time
// link, and redeeming the link's token yields a session token.
type MagicLinkService struct {
	store      TokenStore
	users      repo.UserRepository
	mail       mailer.Mailer
	appBaseURL string
	fromAddr   string
}

func NewMagicLinkService(store TokenStore, users repo.UserRepository, mail mailer.Mailer, appBaseURL, fromAddr string) *MagicLinkService {
	return &MagicLinkService{
		store:      store,
		users:      users,
		mail:       mail,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
		fromAddr:   fromAddr,
	}
}

// RequestSignIn issues a one-time sign-in token for email and sends the
// link. Unknown emails succeed silently so that callers cannot probe which
// accounts exist.
func (s *MagicLinkService) RequestSignIn(ctx context.Context, email string) error {
	count, err := s.store.CountSignInRequest(ctx, email, signInWindow)
	if err != nil {
		return err
	}
	if count > maxSignInPerWindow {
		return ErrTooManySignInRequests
	}

	user, err := s.users.GetByEmail(email)
	if errors.Is(err, repo.ErrUserNotFound) {
		log.Printf("sign-in requested for unknown email, not sending")
		return nil
	}
	if err != nil {
		return err
	}

	token, err := randomToken(32)
	if err != nil {
		return err
	}
	if err := s.store.SaveSignInToken(ctx, hashToken(token), user.Email, signInTokenTTL); err != nil {
		return err
	}

	link := s.appBaseURL + "/auth/callback?token=" + token
	return s.mail.Send(ctx, mailer.Email{
		From:    s.fromAddr,
		To:      []string{user.Email},
		Subject: "Your sign-in link",
		Body:    fmt.Sprintf("Follow this link to sign in:\n\n%s\n\nThe link expires in %d minutes.", link, int(signInTokenTTL.Minutes())),
	})
}

// Redeem consumes a sign-in token and returns the user with a fresh
// session token. ErrTokenInvalid is returned for unknown, expired, or
// already-used tokens.
func (s *MagicLinkService) Redeem(ctx context.Context, token string) (models.User, string, error) {
	email, err := s.store.RedeemSignInToken(ctx, hashToken(token))
	if err != nil {
		return models.User{}, "", err
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return models.User{}, "", err
	}

	sessionToken, err := GenerateToken(user)
	if err != nil {
		return models.User{}, "", err
	}
	return user, sessionToken, nil
}

// SignOut revokes the session carried by tokenStr until its natural expiry.
func (s *MagicLinkService) SignOut(ctx context.Context, tokenStr string) error {
	token, err := ParseToken(tokenStr)
	if err != nil || !token.Valid {
		return errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return errors.New("invalid token claims")
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return errors.New("token has no session id")
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return errors.New("token has no expiry")
	}
	return s.store.RevokeSession(ctx, jti, time.Until(exp.Time))
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Tokens are stored hashed so a leaked store cannot be replayed.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
