package handlers

import (
	"errors"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/rlourenco/catalog-admin/internal/auth"
	rl "github.com/rlourenco/catalog-admin/internal/http/rate_limiter"
)

// MagicLinkHandler godoc
// @Summary Request a passwordless sign-in link
// @Description Sends a one-time sign-in link to the given email; responds identically for unknown emails
// @Tags auth
// @Accept json
// @Produce json
// @Param request body MagicLinkRequest true "Email to send the link to"
// @Success 202 {object} MessageResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 429 {string} string "Too many requests"
// @Failure 500 {string} string "Internal error"
// @Router /auth/magic-link [post]
func MagicLinkHandler(w http.ResponseWriter, r *http.Request) {
	if !rl.GetVisitor(clientIP(r)).Allow() {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
		return
	}

	var req MagicLinkRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	if err := magicLink.RequestSignIn(r.Context(), req.Email); err != nil {
		if errors.Is(err, auth.ErrTooManySignInRequests) {
			http.Error(w, "too many sign-in requests", http.StatusTooManyRequests)
			return
		}
		log.Printf("magic link request: %v", err)
		http.Error(w, "could not send sign-in link", http.StatusInternalServerError)
		return
	}

	if err := writeJSON(w, http.StatusAccepted, MessageResponse{Message: "check your email for a sign-in link"}); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// MagicLinkCallbackHandler godoc
// @Summary Redeem a sign-in link token
// @Description Consumes the one-time token carried by the emailed link and returns a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param token query string false "Sign-in token (link redirect)"
// @Param request body CallbackRequest false "Sign-in token"
// @Success 200 {object} TokenResponse
// @Failure 400 {string} string "Missing token"
// @Failure 401 {string} string "Invalid or expired token"
// @Failure 500 {string} string "Internal error"
// @Router /auth/callback [post]
func MagicLinkCallbackHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" && r.Body != nil {
		var req CallbackRequest
		if err := readJSON(w, r, &req); err == nil {
			token = req.Token
		}
	}
	if token == "" {
		http.Error(w, "token is required", http.StatusBadRequest)
		return
	}

	user, sessionToken, err := magicLink.Redeem(r.Context(), token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenInvalid) {
			http.Error(w, "invalid or expired sign-in token", http.StatusUnauthorized)
			return
		}
		log.Printf("magic link redeem: %v", err)
		http.Error(w, "could not complete sign-in", http.StatusInternalServerError)
		return
	}

	resp := TokenResponse{
		Token: sessionToken,
		User:  UserResponse{ID: user.ID, Email: user.Email},
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// SessionHandler godoc
// @Summary Return the current session's user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Failure 401 {string} string "No session"
// @Router /auth/session [get]
func SessionHandler(w http.ResponseWriter, r *http.Request) {
	_, claims, err := auth.TokenClaims(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	userID, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	resp := SessionResponse{User: UserResponse{ID: userID, Email: email}}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// LogoutHandler godoc
// @Summary Sign out
// @Description Revokes the current session token until its natural expiry
// @Tags auth
// @Security BearerAuth
// @Success 204 "Signed out"
// @Failure 401 {string} string "No session"
// @Failure 500 {string} string "Internal error"
// @Router /auth/logout [post]
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	authorization := r.Header.Get("Authorization")
	if !strings.HasPrefix(authorization, "Bearer ") {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	if err := magicLink.SignOut(r.Context(), strings.TrimPrefix(authorization, "Bearer ")); err != nil {
		log.Printf("logout: %v", err)
		http.Error(w, "could not sign out", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
