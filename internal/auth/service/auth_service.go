package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/jenga-25-26J/jenga-backend/internal/auth/domain"
	"github.com/jenga-25-26J/jenga-backend/internal/auth/repository"
	"github.com/jenga-25-26J/jenga-backend/internal/auth/token"
)

// AuthService handles registration, login and credential maintenance.
type AuthService struct {
	users  *repository.UserRepository
	tokens *token.Service
}

func NewAuthService(users *repository.UserRepository, tokens *token.Service) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a user with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, firstName, lastName, email, password, role string) (*domain.User, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if role == "" {
		role = domain.RoleUser
	}
	id, err := s.users.Insert(ctx, firstName, lastName, email, string(hash), role)
	if err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

// Login verifies credentials and issues a bearer token. Inactive accounts
// fail the same way as wrong passwords so callers cannot probe account
// state.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !user.IsActive() {
		return nil, "", domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, signed, nil
}

// ResetPassword replaces the password after verifying the old one.
func (s *AuthService) ResetPassword(ctx context.Context, email, oldPassword, newPassword string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, string(hash))
}

// UpdateProfile changes the user's name fields after re-verifying the
// password.
func (s *AuthService) UpdateProfile(ctx context.Context, email, password, firstName, lastName string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.ErrInvalidCredentials
	}
	return s.users.UpdateProfile(ctx, user.ID, firstName, lastName)
}

// ListUsers is admin-only; the role check happens in the HTTP layer.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.ListAll(ctx)
}

// DeleteUser removes a user account.
func (s *AuthService) DeleteUser(ctx context.Context, userID int64) error {
	removed, err := s.users.Delete(ctx, userID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrUserNotFound
	}
	return nil
}
