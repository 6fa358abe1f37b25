// Package comment provides the HTTP handlers for listing and posting
// comments on an article.
package comment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"duo-blog/internal/domain/entity"
	"duo-blog/internal/handler/http/auth"
	"duo-blog/internal/handler/http/pathutil"
	"duo-blog/internal/handler/http/respond"
	commentUC "duo-blog/internal/usecase/comment"
	"duo-blog/internal/utils/text"
)

var contentSanitizer = text.NewSanitizer()

// Service is the part of the comment use case the handlers call.
type Service interface {
	Create(ctx context.Context, c *entity.Comment, currentUser *entity.User) (*entity.Comment, error)
	ListByArticle(ctx context.Context, articleID int64) ([]*entity.Comment, error)
}

type DTO struct {
	ID         int64     `json:"id" example:"1"`
	ArticleID  int64     `json:"article_id" example:"1"`
	AuthorID   int64     `json:"author_id,omitempty" example:"7"`
	AuthorName string    `json:"author_name,omitempty" example:"alice"`
	Content    string    `json:"content" example:"Nice post!"`
	CreatedAt  time.Time `json:"created_at" example:"2026-01-02T10:00:00Z"`
}

type commentRequest struct {
	Content string `json:"content" example:"Nice post!"`
}

type listResponse struct {
	Data []DTO `json:"data"`
}

// Register mounts the comment routes. authz guards posting.
func Register(mux *http.ServeMux, svc Service, authz func(http.Handler) http.Handler) {
	mux.Handle("GET /articles/{id}/comments", ListHandler{Svc: svc})
	mux.Handle("POST /articles/{id}/comments", authz(CreateHandler{Svc: svc}))
}

type ListHandler struct{ Svc Service }

// ServeHTTP lists comments
// @Summary      List comments of an article
// @Tags         comments
// @Produce      json
// @Param        id path int true "Article ID"
// @Success      200 {object} listResponse
// @Failure      404 {object} respond.ErrorBody
// @Failure      500 {object} respond.ErrorBody
// @Router       /articles/{id}/comments [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Message(w, http.StatusNotFound, "article not found")
		return
	}

	comments, err := h.Svc.ListByArticle(r.Context(), id)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, toDTO(c))
	}
	respond.JSON(w, http.StatusOK, listResponse{Data: dtos})
}

type CreateHandler struct{ Svc Service }

// ServeHTTP posts a comment
// @Summary      Comment on an article
// @Tags         comments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id      path int            true "Article ID"
// @Param        comment body commentRequest true "Comment"
// @Success      201 {object} DTO
// @Failure      400 {object} respond.ErrorBody
// @Failure      401 {object} respond.ErrorBody
// @Failure      500 {object} respond.ErrorBody
// @Router       /articles/{id}/comments [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	// an unparsable id is treated like a missing parent
	id, _ := pathutil.PathID(r, "id")

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Svc.Create(r.Context(), &entity.Comment{ArticleID: id, Content: req.Content}, user)
	if err != nil {
		if errors.Is(err, commentUC.ErrInvalidComment) {
			respond.Message(w, http.StatusBadRequest, "comment cannot be registered")
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(created))
}

func toDTO(c *entity.Comment) DTO {
	dto := DTO{ID: c.ID, ArticleID: c.ArticleID, Content: contentSanitizer.Sanitize(c.Content), CreatedAt: c.CreatedAt}
	if c.Author != nil {
		dto.AuthorID = c.Author.ID
		dto.AuthorName = c.Author.Name
	}
	return dto
}
