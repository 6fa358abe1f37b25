package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duo-blog/internal/domain/entity"
	authservice "duo-blog/internal/service/auth"
)

type stubAuthenticator struct {
	user *entity.User
	err  error
}

func (s stubAuthenticator) Authenticate(context.Context, authservice.Credentials) (*entity.User, error) {
	return s.user, s.err
}

func TestTokenHandler(t *testing.T) {
	ti := newTestIssuer(t)

	tests := []struct {
		name string
		body string
		auth stubAuthenticator
		want int
	}{
		{name: "success", body: `{"email":"a@b.c","password":"pw"}`, auth: stubAuthenticator{user: &entity.User{ID: 11}}, want: http.StatusOK},
		{name: "malformed json", body: `{"email":`, want: http.StatusBadRequest},
		{name: "bad credentials", body: `{"email":"a@b.c","password":"no"}`, auth: stubAuthenticator{err: authservice.ErrInvalidCredentials}, want: http.StatusUnauthorized},
		{name: "store failure", body: `{"email":"a@b.c","password":"pw"}`, auth: stubAuthenticator{err: errors.New("db down")}, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := TokenHandler{Auth: tt.auth, Issuer: ti}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(tt.body)))

			require.Equal(t, tt.want, rec.Code)
			if tt.want != http.StatusOK {
				assert.NotContains(t, rec.Body.String(), "db down")
				return
			}

			var resp tokenResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, "Bearer", resp.TokenType)
			assert.Equal(t, int64(3600), resp.ExpiresIn)

			id, err := ti.Parse(resp.Token)
			require.NoError(t, err)
			assert.Equal(t, int64(11), id)
		})
	}
}
