package article

import (
	"net/http"

	"duo-blog/internal/handler/http/respond"
)

type SearchHandler struct{ Svc Service }

type searchResponse struct {
	Data []DTO `json:"data"`
}

// ServeHTTP searches articles
// @Summary      Search articles
// @Description  Case-insensitive search over title and content. A blank query returns an empty list.
// @Tags         articles
// @Produce      json
// @Param        query query string false "Search text"
// @Success      200 {object} searchResponse
// @Failure      500 {object} respond.ErrorBody
// @Router       /articles/search [get]
func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Svc.FindByQuery(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, searchResponse{Data: toDTOs(articles)})
}
