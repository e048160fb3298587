package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/drakehanguyen/devpockit/internal/auth"
	"github.com/drakehanguyen/devpockit/internal/config"
	"github.com/drakehanguyen/devpockit/internal/domain"
	"github.com/drakehanguyen/devpockit/internal/events"
	"github.com/drakehanguyen/devpockit/internal/repository"
)

// ErrInvalidCredentials is the single failure signal for login. Missing
// user, wrong password and inactive account all collapse into it so
// callers cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService coordinates registration, login and user record management.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL()),
		dispatcher: dispatcher,
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new account. Uniqueness of email and username is
// enforced by the store; duplicates surface as repository errors.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (*domain.User, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
		Email:    user.Email,
		Username: user.Username,
	})
	return user, nil
}

// Authenticate verifies credentials: lookup, password check, active
// check, in that order, fail-fast. Every failure yields (nil, nil).
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, nil
	}
	if !user.IsActive {
		return nil, nil
	}
	return user, nil
}

// Login authenticates and mints an access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, exp, err := s.tokenMgr.Issue(user.Username)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.EventUserLoggedIn, user.ID, events.UserLoggedInPayload{Username: user.Username})
	return user, token, exp, nil
}

// Logout acknowledges without invalidating: tokens are stateless and
// there is no blacklist.
func (s *AuthService) Logout(_ context.Context, _ string) error {
	return nil
}

// GetUser loads a user record by id.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateUser persists changes to an existing record.
func (s *AuthService) UpdateUser(ctx context.Context, user *domain.User) error {
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.publish(ctx, events.EventUserUpdated, user.ID, events.UserUpdatedPayload{Username: user.Username})
	return nil
}

// DeleteUser removes a user record.
func (s *AuthService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.EventUserDeleted, id, nil)
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, userID int64, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}
