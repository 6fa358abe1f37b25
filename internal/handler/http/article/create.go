package article

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"duo-blog/internal/domain/entity"
	"duo-blog/internal/handler/http/auth"
	"duo-blog/internal/handler/http/respond"
	artUC "duo-blog/internal/usecase/article"
)

type CreateHandler struct{ Svc Service }

// ServeHTTP creates an article
// @Summary      Create an article
// @Description  Creates an article authored by the caller.
// @Tags         articles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        article body articleRequest true "Article"
// @Success      201 {object} DTO
// @Header       201 {string} Location "URL of the new article"
// @Failure      400 {object} rejectedResponse
// @Failure      401 {object} respond.ErrorBody
// @Failure      500 {object} respond.ErrorBody
// @Router       /articles [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req articleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a := &entity.Article{Title: req.Title, Content: req.Content}
	if err := h.Svc.Create(r.Context(), a, user); err != nil {
		var ce *artUC.CreationError
		if errors.As(err, &ce) {
			respond.JSON(w, http.StatusBadRequest, rejectedResponse{Article: req, ErrorMessage: ce.Message})
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/articles/%d", a.ID))
	respond.JSON(w, http.StatusCreated, toDTO(a))
}
