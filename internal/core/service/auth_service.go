package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/port"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// AuthService holds the current session. There is at most one user at a time.
type AuthService struct {
	mu      sync.RWMutex
	auth    port.Authenticator
	current *domain.User
	logger  zerolog.Logger
}

func NewAuthService(auth port.Authenticator, logger zerolog.Logger) *AuthService {
	return &AuthService{auth: auth, logger: logger}
}

// Login replaces the current session with the authenticated user.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	user, err := s.auth.Authenticate(ctx, creds)
	if err != nil {
		return domain.User{}, fmt.Errorf("login: %w", err)
	}

	s.mu.Lock()
	s.current = &user
	s.mu.Unlock()

	s.logger.Info().Str("user_id", user.ID).Msg("logged in")
	return user, nil
}

func (s *AuthService) Logout() {
	s.mu.Lock()
	prev := s.current
	s.current = nil
	s.mu.Unlock()

	if prev != nil {
		s.logger.Info().Str("user_id", prev.ID).Msg("logged out")
	}
}

func (s *AuthService) CurrentUser() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.User{}, false
	}
	return *s.current, true
}

// RequireUser returns the session user or ErrNotAuthenticated.
func (s *AuthService) RequireUser() (domain.User, error) {
	user, ok := s.CurrentUser()
	if !ok {
		return domain.User{}, ErrNotAuthenticated
	}
	return user, nil
}
