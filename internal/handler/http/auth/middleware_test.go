package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duo-blog/internal/domain/entity"
	authservice "duo-blog/internal/service/auth"
)

type stubResolver struct {
	users map[int64]*entity.User
	err   error
}

func (s stubResolver) CurrentUser(_ context.Context, id int64) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, authservice.ErrInvalidCredentials
}

func TestAuthz(t *testing.T) {
	ti := newTestIssuer(t)
	valid, err := ti.Issue(7)
	require.NoError(t, err)
	orphan, err := ti.Issue(8)
	require.NoError(t, err)

	resolver := stubResolver{users: map[int64]*entity.User{7: {ID: 7, Name: "gus"}}}

	tests := []struct {
		name     string
		header   string
		resolver stubResolver
		want     int
	}{
		{name: "valid token", header: "Bearer " + valid, resolver: resolver, want: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + valid, resolver: resolver, want: http.StatusOK},
		{name: "missing header", header: "", resolver: resolver, want: http.StatusUnauthorized},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", resolver: resolver, want: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", resolver: resolver, want: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer abc.def.ghi", resolver: resolver, want: http.StatusUnauthorized},
		{name: "deleted user", header: "Bearer " + orphan, resolver: resolver, want: http.StatusUnauthorized},
		{name: "store failure", header: "Bearer " + valid, resolver: stubResolver{err: errors.New("db down")}, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *entity.User
			h := Authz(ti, tt.resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/articles", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				require.NotNil(t, seen)
				assert.Equal(t, int64(7), seen.ID)
			} else {
				assert.Nil(t, seen)
			}
			if tt.want == http.StatusUnauthorized {
				assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestUserFromContext(t *testing.T) {
	_, ok := UserFromContext(context.Background())
	assert.False(t, ok)

	_, ok = UserFromContext(WithUser(context.Background(), nil))
	assert.False(t, ok)

	u, ok := UserFromContext(WithUser(context.Background(), &entity.User{ID: 3}))
	require.True(t, ok)
	assert.Equal(t, int64(3), u.ID)
}
