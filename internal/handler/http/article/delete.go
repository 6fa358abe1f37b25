package article

import (
	"errors"
	"net/http"

	"duo-blog/internal/handler/http/auth"
	"duo-blog/internal/handler/http/pathutil"
	"duo-blog/internal/handler/http/respond"
	artUC "duo-blog/internal/usecase/article"
)

type DeleteHandler struct{ Svc Service }

// ServeHTTP deletes an article
// @Summary      Delete an article
// @Tags         articles
// @Security     BearerAuth
// @Param        id path int true "Article ID"
// @Success      204 "No Content"
// @Failure      401 {object} respond.ErrorBody
// @Failure      403 {object} respond.ErrorBody "Not the author"
// @Failure      404 {object} respond.ErrorBody
// @Failure      500 {object} respond.ErrorBody
// @Router       /articles/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	switch err := h.Svc.Delete(r.Context(), id, user); {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, artUC.ErrArticleNotFound):
		respond.Message(w, http.StatusNotFound, "article not found")
	case errors.Is(err, artUC.ErrNotAuthor):
		respond.Message(w, http.StatusForbidden, "you are not the author of this article")
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}
