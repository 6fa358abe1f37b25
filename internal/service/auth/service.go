// Package auth authenticates users by email and password and resolves the
// acting user of a request.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"duo-blog/internal/domain/entity"
	"duo-blog/internal/repository"
)

// ErrInvalidCredentials covers unknown emails, wrong passwords and users
// that no longer exist. Callers cannot tell them apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials is a login attempt.
type Credentials struct {
	Email    string
	Password string
}

// AuthService validates logins against the user store.
type AuthService struct {
	users repository.UserRepository
	// dummyHash is compared against when the email is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte
}

func NewAuthService(users repository.UserRepository) *AuthService {
	hash, _ := bcrypt.GenerateFromPassword([]byte("duo-blog-dummy-password"), bcrypt.DefaultCost)
	return &AuthService{users: users, dummyHash: hash}
}

// Authenticate returns the user whose email and password match creds.
func (s *AuthService) Authenticate(ctx context.Context, creds Credentials) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || creds.Password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if u == nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(creds.Password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// CurrentUser loads the user a validated token refers to.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*entity.User, error) {
	if userID <= 0 {
		return nil, ErrInvalidCredentials
	}
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
