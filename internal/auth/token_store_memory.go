package auth

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// InMemoryTokenStore is the in-process TokenStore used by the test suites.
type InMemoryTokenStore struct {
	mu       sync.Mutex
	tokens   map[string]memoryEntry
	revoked  map[string]time.Time
	counters map[string]int64
}

func NewInMemoryTokenStore() *InMemoryTokenStore {
	return &InMemoryTokenStore{
		tokens:   map[string]memoryEntry{},
		revoked:  map[string]time.Time{},
		counters: map[string]int64{},
	}
}

func (s *InMemoryTokenStore) SaveSignInToken(ctx context.Context, tokenHash, email string, ttl time.Duration) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[tokenHash] = memoryEntry{value: email, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *InMemoryTokenStore) RedeemSignInToken(ctx context.Context, tokenHash string) (string, error) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.tokens[tokenHash]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.tokens, tokenHash)
		return "", ErrTokenInvalid
	}
	delete(s.tokens, tokenHash)
	return entry.value, nil
}

func (s *InMemoryTokenStore) RevokeSession(ctx context.Context, jti string, ttl time.Duration) error {
	_ = ctx

	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = time.Now().Add(ttl)
	return nil
}

func (s *InMemoryTokenStore) SessionRevoked(ctx context.Context, jti string) (bool, error) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.revoked[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(until) {
		delete(s.revoked, jti)
		return false, nil
	}
	return true, nil
}

func (s *InMemoryTokenStore) CountSignInRequest(ctx context.Context, email string, window time.Duration) (int64, error) {
	_ = ctx
	_ = window

	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(email)
	s.counters[key]++
	return s.counters[key], nil
}

// ResetCounters clears the sign-in request counters.
func (s *InMemoryTokenStore) ResetCounters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters = map[string]int64{}
}
