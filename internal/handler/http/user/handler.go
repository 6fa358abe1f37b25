// Package user provides the account registration endpoint.
package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"duo-blog/internal/domain/entity"
	"duo-blog/internal/handler/http/respond"
	"duo-blog/internal/observability/logging"
	userUC "duo-blog/internal/usecase/user"
)

type Registrar interface {
	Register(ctx context.Context, in userUC.RegisterInput) (*entity.User, error)
}

type DTO struct {
	ID        int64     `json:"id" example:"7"`
	Email     string    `json:"email" example:"alice@example.com"`
	Name      string    `json:"name" example:"alice"`
	Age       int       `json:"age" example:"30"`
	CreatedAt time.Time `json:"created_at" example:"2026-01-02T10:00:00Z"`
}

// validationResponse lists the offending fields by their JSON name.
type validationResponse struct {
	Error  string            `json:"error" example:"validation failed"`
	Fields map[string]string `json:"errors,omitempty"`
}

type RegisterHandler struct{ Svc Registrar }

// ServeHTTP registers a user
// @Summary      Register an account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user body userUC.RegisterInput true "Account"
// @Success      201 {object} DTO
// @Failure      400 {object} validationResponse
// @Failure      409 {object} respond.ErrorBody "Email already registered"
// @Failure      429 {object} respond.ErrorBody
// @Failure      500 {object} respond.ErrorBody
// @Router       /users [post]
func (h RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var in userUC.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Svc.Register(r.Context(), in)
	if err != nil {
		var verr *userUC.ValidationError
		switch {
		case errors.As(err, &verr):
			respond.JSON(w, http.StatusBadRequest, validationResponse{Error: "validation failed", Fields: verr.Fields})
		case errors.Is(err, userUC.ErrDuplicateEmail):
			respond.Message(w, http.StatusConflict, "email already registered")
		default:
			logging.FromContext(r.Context()).Error("registration failed",
				slog.String("error", respond.SanitizeError(err)))
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/users/%d", u.ID))
	respond.JSON(w, http.StatusCreated, DTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Age:       u.Age,
		CreatedAt: u.CreatedAt,
	})
}
