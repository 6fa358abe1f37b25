package pagination

import (
	"log/slog"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_pagination_requests_total",
			Help: "Total number of paginated article list requests",
		},
		[]string{"status", "page_range"},
	)

	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_pagination_errors_total",
			Help: "Total number of pagination errors",
		},
		[]string{"type"},
	)
)

func RecordRequest(statusCode int, page int) {
	RequestsTotal.WithLabelValues(strconv.Itoa(statusCode), pageRangeBucket(page)).Inc()
}

func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

// LogError records a rejected page request at warn level; these are caller
// mistakes, not server faults.
func LogError(logger *slog.Logger, page string, err error, errorType string) {
	logger.Warn("pagination error",
		slog.String("page", page),
		slog.String("error", err.Error()),
		slog.String("error_type", errorType))
	RecordError(errorType)
}

func pageRangeBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
