package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"duo-blog/internal/domain/entity"
)

type stubUsers struct {
	users map[string]*entity.User
	err   error
}

func (s *stubUsers) Get(_ context.Context, id int64) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users[email], nil
}

func (s *stubUsers) Create(context.Context, *entity.User) error { return nil }

func (s *stubUsers) Count(context.Context) (int64, error) { return int64(len(s.users)), nil }

func newTestService(t *testing.T) (*AuthService, *stubUsers) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &stubUsers{users: map[string]*entity.User{
		"erin@example.com": {ID: 5, Email: "erin@example.com", PasswordHash: string(hash)},
	}}
	return NewAuthService(repo), repo
}

func TestAuthService_Authenticate(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name    string
		creds   Credentials
		wantID  int64
		wantErr error
	}{
		{name: "valid", creds: Credentials{Email: "erin@example.com", Password: "s3cret-pass"}, wantID: 5},
		{name: "email is normalized", creds: Credentials{Email: " Erin@Example.com", Password: "s3cret-pass"}, wantID: 5},
		{name: "wrong password", creds: Credentials{Email: "erin@example.com", Password: "nope"}, wantErr: ErrInvalidCredentials},
		{name: "unknown email", creds: Credentials{Email: "frank@example.com", Password: "s3cret-pass"}, wantErr: ErrInvalidCredentials},
		{name: "empty email", creds: Credentials{Password: "s3cret-pass"}, wantErr: ErrInvalidCredentials},
		{name: "empty password", creds: Credentials{Email: "erin@example.com"}, wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := svc.Authenticate(context.Background(), tt.creds)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, u)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, u.ID)
		})
	}
}

func TestAuthService_Authenticate_RepoError(t *testing.T) {
	svc, repo := newTestService(t)
	repo.err = errors.New("db down")

	_, err := svc.Authenticate(context.Background(), Credentials{Email: "erin@example.com", Password: "x"})
	assert.ErrorIs(t, err, repo.err)
	assert.False(t, errors.Is(err, ErrInvalidCredentials))
}

func TestAuthService_CurrentUser(t *testing.T) {
	svc, _ := newTestService(t)

	u, err := svc.CurrentUser(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "erin@example.com", u.Email)

	for _, id := range []int64{0, -1, 404} {
		_, err := svc.CurrentUser(context.Background(), id)
		assert.ErrorIs(t, err, ErrInvalidCredentials, "id %d", id)
	}
}
