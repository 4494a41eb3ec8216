package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/campus-hub/registrar-service/internal/models"
	"github.com/campus-hub/registrar-service/internal/repositories"
)

// Session is an authenticated run of the application.
type Session struct {
	Token     string          `json:"token"`
	Username  string          `json:"username"`
	Role      models.UserRole `json:"role"`
	StartedAt time.Time       `json:"started_at"`
}

type authService struct {
	repo   repositories.Repository
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewAuthService creates the credential gate. Sessions live in memory and
// end with the process.
func NewAuthService(repo repositories.Repository, logger *slog.Logger) AuthService {
	return &authService{
		repo:     repo,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Authenticate checks the credential pair against the account store. An
// unknown username, an inactive account and a wrong password all produce the
// same ErrInvalidCredentials, never revealing which part failed.
func (s *authService) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	account, err := s.repo.UserAccount().GetActiveByUsername(ctx, username)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			s.logger.Warn("Authentication failed", "username", username)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("Authentication failed", "username", username)
		return nil, ErrInvalidCredentials
	}

	session := &Session{
		Token:     uuid.New().String(),
		Username:  account.Username,
		Role:      account.Role,
		StartedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	s.logger.Info("Session opened", "username", session.Username, "role", session.Role)
	return session, nil
}

func (s *authService) Current(token string) (*Session, error) {
	s.mu.Lock()
	session, ok := s.sessions[token]
	s.mu.Unlock()

	if !ok {
		return nil, ErrNotAuthenticated
	}
	return session, nil
}

func (s *authService) Logout(token string) {
	s.mu.Lock()
	session, ok := s.sessions[token]
	delete(s.sessions, token)
	s.mu.Unlock()

	if ok {
		s.logger.Info("Session closed", "username", session.Username)
	}
}
