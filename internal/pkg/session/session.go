package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/clock"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

// Session owns the provider's auth token and fans logout out to the
// components that must tear down with it (cache, store, realtime channel).
// The token is issued by the marketplace backend; the client never signs or
// verifies it, it only reads the expiry claim to preempt 401 round trips.
type Session struct {
	mu        sync.RWMutex
	token     string
	expiresAt time.Time
	clock     clock.Clock
	logger    *slog.Logger
	teardowns []func()
}

func New(clk clock.Clock, logger *slog.Logger) *Session {
	return &Session{clock: clk, logger: logger}
}

// SetToken installs a freshly issued token. Expiry is taken from the JWT
// exp claim when present; tokens without one never expire locally.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expiresAt = time.Time{}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		s.logger.Warn("token is not a parseable JWT, skipping expiry check", "error", err)
		return
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.expiresAt = exp.Time
	}
}

// Token returns the current token, or ErrAuthExpired / ErrNoToken when it
// cannot be used for a handshake.
func (s *Session) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", errs.ErrNoToken
	}
	if !s.expiresAt.IsZero() && !s.clock.Now().Before(s.expiresAt) {
		return "", errs.ErrAuthExpired
	}
	return s.token, nil
}

func (s *Session) Authenticated() bool {
	_, err := s.Token()
	return err == nil
}

// OnLogout registers a teardown hook. Hooks run in registration order.
func (s *Session) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardowns = append(s.teardowns, fn)
}

// Logout drops the token and runs every registered teardown. Used both for
// user-initiated logout and the AuthExpired / AccountDeactivated signals.
func (s *Session) Logout() {
	s.mu.Lock()
	s.token = ""
	s.expiresAt = time.Time{}
	hooks := make([]func(), len(s.teardowns))
	copy(hooks, s.teardowns)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}
