// Package resilience groups the failure-handling helpers used around the
// database: a gobreaker-based circuit breaker (circuitbreaker) and retry
// with exponential backoff and jitter (retry).
//
//	dcb := circuitbreaker.NewDBCircuitBreaker(db)
//	repo := postgres.NewArticleRepo(dcb)
//
//	err := retry.WithBackoff(ctx, retry.DBConnectConfig(), func() error {
//	    return db.PingContext(ctx)
//	})
package resilience
