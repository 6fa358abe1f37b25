package article

import (
	"net/http"

	"duo-blog/internal/handler/http/pathutil"
	"duo-blog/internal/handler/http/respond"
)

type GetHandler struct{ Svc Service }

// ServeHTTP returns one article
// @Summary      Get an article
// @Tags         articles
// @Produce      json
// @Param        id path int true "Article ID"
// @Success      200 {object} DTO
// @Failure      404 {object} respond.ErrorBody
// @Failure      500 {object} respond.ErrorBody
// @Router       /articles/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Message(w, http.StatusNotFound, "article not found")
		return
	}

	a, err := h.Svc.FindByID(r.Context(), id)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	if a == nil {
		respond.Message(w, http.StatusNotFound, "article not found")
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(a))
}
