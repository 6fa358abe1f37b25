package article

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"duo-blog/internal/common/pagination"
	"duo-blog/internal/handler/http/respond"
	"duo-blog/internal/observability/logging"
)

// invalidPageMessage is shown when the requested page cannot be served and
// page 1 is returned instead.
const invalidPageMessage = "The requested page does not exist. Showing the first page."

type ListHandler struct {
	Svc    Service
	Logger *slog.Logger
}

// ServeHTTP lists articles
// @Summary      List articles
// @Description  Returns one page of articles, newest first, with the surrounding page window. An unknown page falls back to page 1 and sets error_message.
// @Tags         articles
// @Produce      json
// @Param        page query int false "1-based page number" default(1) minimum(1)
// @Success      200 {object} pagination.Response[DTO]
// @Failure      500 {object} respond.ErrorBody
// @Router       /articles [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	logger := h.logger(r)

	var errorMessage string
	page, err := pagination.ParsePage(r)
	if err != nil {
		pagination.LogError(logger, r.URL.Query().Get("page"), err, "validation")
		errorMessage = invalidPageMessage
	}

	window, err := h.Svc.FindByPageNumber(ctx, page)
	if errors.Is(err, pagination.ErrInvalidPage) {
		pagination.LogError(logger, strconv.Itoa(page), err, "out_of_range")
		errorMessage = invalidPageMessage
		page = 1
		window, err = h.Svc.FindByPageNumber(ctx, page)
	}
	if err != nil {
		logger.Error("failed to list articles",
			slog.Int("page", page),
			slog.String("error", respond.SanitizeError(err)))
		pagination.RecordError("database")
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := pagination.NewResponse(toDTOs(window.Items()), pagination.NewMetadata(window))
	resp.ErrorMessage = errorMessage

	pagination.RecordRequest(http.StatusOK, page)
	logger.Debug("article page served",
		slog.Int("page", window.CurrentPage()),
		slog.Int("start_page", window.StartPage()),
		slog.Int("end_page", window.EndPage()),
		slog.Int("returned_count", len(resp.Data)),
		slog.Duration("duration", time.Since(start)))

	respond.JSON(w, http.StatusOK, resp)
}

func (h ListHandler) logger(r *http.Request) *slog.Logger {
	if h.Logger != nil {
		return logging.WithRequestID(r.Context(), h.Logger)
	}
	return logging.FromContext(r.Context())
}
