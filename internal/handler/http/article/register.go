package article

import (
	"log/slog"
	"net/http"
)

// Register mounts the article routes. authz guards the routes that write.
func Register(mux *http.ServeMux, svc Service, authz func(http.Handler) http.Handler, logger *slog.Logger) {
	mux.Handle("GET /articles", ListHandler{Svc: svc, Logger: logger})
	mux.Handle("GET /articles/search", SearchHandler{Svc: svc})
	mux.Handle("GET /articles/{id}", GetHandler{Svc: svc})

	mux.Handle("POST /articles", authz(CreateHandler{Svc: svc}))
	mux.Handle("PUT /articles/{id}", authz(UpdateHandler{Svc: svc}))
	mux.Handle("DELETE /articles/{id}", authz(DeleteHandler{Svc: svc}))
}
