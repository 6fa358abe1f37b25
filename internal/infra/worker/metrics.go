package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cron job metrics. Run outcomes are counted by metrics.StatsRefreshTotal.
var (
	CronJobDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "worker_cron_job_duration_seconds",
		Help:    "Duration of cron job execution in seconds",
		Buckets: []float64{.01, .05, .1, .5, 1, 5, 30},
	}, []string{"job"})

	CronJobLastSuccessTimestamp = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "worker_cron_job_last_success_timestamp",
		Help: "Unix timestamp of the last successful cron job run",
	}, []string{"job"})
)

func recordJobDuration(job string, seconds float64) {
	CronJobDurationSeconds.WithLabelValues(job).Observe(seconds)
}

func recordLastSuccess(job string) {
	CronJobLastSuccessTimestamp.WithLabelValues(job).SetToCurrentTime()
}
