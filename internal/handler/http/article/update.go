package article

import (
	"encoding/json"
	"errors"
	"net/http"

	"duo-blog/internal/domain/entity"
	"duo-blog/internal/handler/http/auth"
	"duo-blog/internal/handler/http/pathutil"
	"duo-blog/internal/handler/http/respond"
	artUC "duo-blog/internal/usecase/article"
)

type UpdateHandler struct{ Svc Service }

// ServeHTTP modifies an article
// @Summary      Modify an article
// @Description  Replaces title and content of an article written by the caller. Missing articles and articles of other users are refused with the same message.
// @Tags         articles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id      path int            true "Article ID"
// @Param        article body articleRequest true "Article"
// @Success      200 {object} DTO
// @Failure      400 {object} rejectedResponse
// @Failure      401 {object} respond.ErrorBody
// @Failure      404 {object} respond.ErrorBody
// @Failure      500 {object} respond.ErrorBody
// @Router       /articles/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Message(w, http.StatusNotFound, "article not found")
		return
	}

	var req articleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Svc.Modify(r.Context(), &entity.Article{ID: id, Title: req.Title, Content: req.Content}, user)
	if err != nil {
		var me *artUC.ModificationError
		if errors.As(err, &me) {
			respond.JSON(w, http.StatusBadRequest, rejectedResponse{Article: req, ErrorMessage: me.Message})
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(updated))
}
