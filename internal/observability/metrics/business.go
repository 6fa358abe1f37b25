package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track blog activity.
var (
	ArticlesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "blog_articles_total",
			Help: "Total number of articles in the database",
		},
	)

	UsersTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "blog_users_total",
			Help: "Total number of registered users",
		},
	)

	CommentsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "blog_comments_total",
			Help: "Total number of comments in the database",
		},
	)

	// ArticleOperationsTotal counts article service calls by operation and result.
	ArticleOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_article_operations_total",
			Help: "Article operations by operation and result",
		},
		[]string{"operation", "result"},
	)

	// OwnershipDeniedTotal counts modify/delete attempts by someone other than the author.
	OwnershipDeniedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_ownership_denied_total",
			Help: "Article operations rejected because the caller is not the author",
		},
		[]string{"operation"},
	)

	UsersRegisteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blog_users_registered_total",
			Help: "Number of successful user registrations",
		},
	)

	CommentsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blog_comments_created_total",
			Help: "Number of comments created",
		},
	)

	StatsRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_stats_refresh_total",
			Help: "Runs of the entity statistics job by status",
		},
		[]string{"status"},
	)
)

// Result labels for ArticleOperationsTotal.
const (
	ResultSuccess  = "success"
	ResultInvalid  = "invalid"
	ResultNotFound = "not_found"
	ResultDenied   = "denied"
	ResultError    = "error"
)

func RecordArticleOperation(operation, result string) {
	ArticleOperationsTotal.WithLabelValues(operation, result).Inc()
}

func RecordOwnershipDenied(operation string) {
	OwnershipDeniedTotal.WithLabelValues(operation).Inc()
}

func RecordUserRegistered() {
	UsersRegisteredTotal.Inc()
}

func RecordCommentCreated() {
	CommentsCreatedTotal.Inc()
}

// UpdateEntityTotals sets the entity count gauges.
// It is called by the statistics job after each successful refresh.
func UpdateEntityTotals(articles, users, comments int64) {
	ArticlesTotal.Set(float64(articles))
	UsersTotal.Set(float64(users))
	CommentsTotal.Set(float64(comments))
}

// RecordStatsRefresh counts one statistics job run.
func RecordStatsRefresh(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	StatsRefreshTotal.WithLabelValues(status).Inc()
}
