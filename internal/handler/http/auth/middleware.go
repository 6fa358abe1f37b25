package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"duo-blog/internal/domain/entity"
	"duo-blog/internal/handler/http/respond"
	"duo-blog/internal/observability/logging"
	authservice "duo-blog/internal/service/auth"
)

type ctxKey string

const ctxUser ctxKey = "user"

// UserResolver loads the user a token refers to.
type UserResolver interface {
	CurrentUser(ctx context.Context, userID int64) (*entity.User, error)
}

// Authz requires a valid bearer token and puts the acting user in the
// request context. It wraps individual routes, so public routes never
// pass through it.
func Authz(issuer *TokenIssuer, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			defer func() { RecordAuthzCheckDuration(time.Since(start).Seconds()) }()

			logger := logging.FromContext(r.Context())

			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				RecordAuthzFailure("missing_token")
				unauthorized(w)
				return
			}
			userID, err := issuer.Parse(tokenString)
			if err != nil {
				RecordAuthzFailure("invalid_token")
				logger.Debug("rejected bearer token", slog.String("error", err.Error()))
				unauthorized(w)
				return
			}

			user, err := users.CurrentUser(r.Context(), userID)
			if err != nil {
				if errors.Is(err, authservice.ErrInvalidCredentials) {
					RecordAuthzFailure("unknown_user")
					unauthorized(w)
					return
				}
				respond.SafeError(w, http.StatusInternalServerError, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// UserFromContext returns the user stored by Authz.
func UserFromContext(ctx context.Context) (*entity.User, bool) {
	u, ok := ctx.Value(ctxUser).(*entity.User)
	return u, ok && u != nil
}

func WithUser(ctx context.Context, u *entity.User) context.Context {
	return context.WithValue(ctx, ctxUser, u)
}

func bearerToken(header string) (string, bool) {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="duo-blog"`)
	respond.Message(w, http.StatusUnauthorized, "unauthorized")
}
