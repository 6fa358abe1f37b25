package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"duo-blog/internal/domain/entity"
	"duo-blog/internal/handler/http/respond"
	"duo-blog/internal/observability/logging"
	authservice "duo-blog/internal/service/auth"
)

// Authenticator checks a login attempt.
type Authenticator interface {
	Authenticate(ctx context.Context, creds authservice.Credentials) (*entity.User, error)
}

type loginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"correct-horse-battery"`
}

type tokenResponse struct {
	Token     string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType string `json:"token_type" example:"Bearer"`
	ExpiresIn int64  `json:"expires_in" example:"86400"`
}

type TokenHandler struct {
	Auth   Authenticator
	Issuer *TokenIssuer
}

// ServeHTTP issues a token
// @Summary      Issue a JWT
// @Description  Authenticates with email and password and returns a bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "Credentials"
// @Success      200 {object} tokenResponse
// @Failure      400 {object} respond.ErrorBody "Malformed request"
// @Failure      401 {object} respond.ErrorBody "Invalid credentials"
// @Failure      429 {object} respond.ErrorBody "Too many requests"
// @Router       /auth/token [post]
func (h TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := logging.FromContext(r.Context())

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RecordAuthRequest("invalid_request", time.Since(start))
		respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Auth.Authenticate(r.Context(), authservice.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			logger.Warn("authentication failed", slog.String("reason", "invalid_credentials"))
			RecordAuthRequest("failure", time.Since(start))
			respond.Message(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		RecordAuthRequest("error", time.Since(start))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	signed, err := h.Issuer.Issue(u.ID)
	if err != nil {
		RecordAuthRequest("error", time.Since(start))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	logger.Info("authentication successful", slog.Int64("user_id", u.ID))
	RecordAuthRequest("success", time.Since(start))
	respond.JSON(w, http.StatusOK, tokenResponse{
		Token:     signed,
		TokenType: "Bearer",
		ExpiresIn: int64(h.Issuer.expiry.Seconds()),
	})
}
