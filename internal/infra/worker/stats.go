// Package worker runs the background jobs of the API process.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"duo-blog/internal/handler/http/respond"
	"duo-blog/internal/observability/metrics"
)

const statsJobName = "entity_stats"

// DefaultStatsTimeout bounds one refresh when StatsJob.Timeout is unset.
const DefaultStatsTimeout = 30 * time.Second

// Counter is implemented by every repository the job counts.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Stats is the result of one refresh.
type Stats struct {
	Articles int64
	Users    int64
	Comments int64
}

// StatsJob periodically counts articles, users and comments and publishes
// the totals as gauges.
type StatsJob struct {
	Articles Counter
	Users    Counter
	Comments Counter
	Timeout  time.Duration
	Logger   *slog.Logger
}

// Run performs one refresh. The three counts run concurrently; the first
// failure cancels the others and leaves the gauges untouched.
func (j *StatsJob) Run(ctx context.Context) (Stats, error) {
	start := time.Now()
	timeout := j.Timeout
	if timeout <= 0 {
		timeout = DefaultStatsTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stats Stats
	eg, egCtx := errgroup.WithContext(ctx)
	count := func(name string, c Counter, dst *int64) {
		eg.Go(func() error {
			if c == nil {
				return nil
			}
			n, err := c.Count(egCtx)
			if err != nil {
				return fmt.Errorf("count %s: %w", name, err)
			}
			*dst = n
			return nil
		})
	}
	count("articles", j.Articles, &stats.Articles)
	count("users", j.Users, &stats.Users)
	count("comments", j.Comments, &stats.Comments)

	err := eg.Wait()
	recordJobDuration(statsJobName, time.Since(start).Seconds())
	metrics.RecordStatsRefresh(err == nil)
	if err != nil {
		return Stats{}, err
	}

	metrics.UpdateEntityTotals(stats.Articles, stats.Users, stats.Comments)
	recordLastSuccess(statsJobName)
	return stats, nil
}

// Start schedules Run on schedule (standard 5-field cron syntax) and runs
// it once immediately. Stopping the returned scheduler waits for a running
// refresh to finish.
func (j *StatsJob) Start(ctx context.Context, schedule string) (*cron.Cron, error) {
	if j.Articles == nil && j.Users == nil && j.Comments == nil {
		return nil, errors.New("stats job: nothing to count")
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { j.runLogged(ctx) }); err != nil {
		return nil, fmt.Errorf("stats job: schedule %q: %w", schedule, err)
	}
	c.Start()
	go j.runLogged(ctx)

	j.logger().Info("stats job started", slog.String("schedule", schedule))
	return c, nil
}

func (j *StatsJob) runLogged(ctx context.Context) {
	stats, err := j.Run(ctx)
	if err != nil {
		j.logger().Error("stats refresh failed", slog.String("error", respond.SanitizeError(err)))
		return
	}
	j.logger().Debug("stats refreshed",
		slog.Int64("articles", stats.Articles),
		slog.Int64("users", stats.Users),
		slog.Int64("comments", stats.Comments))
}

func (j *StatsJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
