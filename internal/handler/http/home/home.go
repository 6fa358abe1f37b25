// Package home serves the API root.
package home

import (
	"net/http"

	"duo-blog/internal/handler/http/respond"
)

type response struct {
	Service string            `json:"service" example:"duo-blog"`
	Version string            `json:"version" example:"1.0.0"`
	Links   map[string]string `json:"links"`
}

// Handler answers GET / with the service name and entry points.
type Handler struct {
	Service string
	Version string
}

// ServeHTTP home
// @Summary      API root
// @Tags         home
// @Produce      json
// @Success      200 {object} response
// @Router       / [get]
func (h Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, response{
		Service: h.Service,
		Version: h.Version,
		Links: map[string]string{
			"articles": "/articles",
			"search":   "/articles/search",
			"register": "/users",
			"token":    "/auth/token",
			"health":   "/health",
			"docs":     "/swagger/index.html",
		},
	})
}
