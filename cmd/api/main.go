package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"duo-blog/internal/config"
	pgRepo "duo-blog/internal/infra/adapter/persistence/postgres"
	"duo-blog/internal/infra/db"
	"duo-blog/internal/infra/worker"
	"duo-blog/internal/observability/logging"
	"duo-blog/internal/observability/tracing"
	"duo-blog/internal/resilience/circuitbreaker"
	"duo-blog/internal/utils/text"
	pkgconfig "duo-blog/pkg/config"

	artUC "duo-blog/internal/usecase/article"
	commentUC "duo-blog/internal/usecase/comment"
	userUC "duo-blog/internal/usecase/user"

	hhttp "duo-blog/internal/handler/http"
	hauth "duo-blog/internal/handler/http/auth"
	authservice "duo-blog/internal/service/auth"

	_ "duo-blog/docs" // swagger docs
)

// @title           duo-blog API
// @version         1.0
// @description     Blog service: articles, comments and user accounts.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT bearer token. Send "Bearer {token}" in the Authorization header.

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

// run wires the service and blocks until shutdown. Deferred cleanups run
// before main decides the exit code.
func run(logger *slog.Logger) error {
	appCfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	issuer, err := initTokenIssuer(appCfg)
	if err != nil {
		return err
	}
	version := pkgconfig.GetEnvString("VERSION", "dev")

	shutdownTracing, err := initTracing(logger, version)
	if err != nil {
		return fmt.Errorf("initialize tracing: %w", err)
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	database, err := initDatabase()
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	components, err := setupServer(logger, database, appCfg, issuer, version)
	if err != nil {
		return err
	}

	go hhttp.StartRateLimitCleanup(ctx, components.AuthLimiter,
		appCfg.Auth.RateLimit.CleanupInterval, appCfg.Auth.RateLimit.IdleTimeout)

	if appCfg.Stats.Enabled {
		scheduler, err := components.Stats.Start(ctx, appCfg.Stats.Schedule)
		if err != nil {
			return fmt.Errorf("start stats job: %w", err)
		}
		defer func() { <-scheduler.Stop().Done() }()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	srv := newServer(ctx, pkgconfig.GetEnvString("HTTP_ADDR", ":8080"), components.Handler)
	return runServer(srv, quit, cancel, logger, version)
}

// initTracing exports spans over OTLP/HTTP when OTEL_EXPORTER_OTLP_ENDPOINT
// is set; otherwise spans only feed trace IDs into logs and headers.
func initTracing(logger *slog.Logger, version string) (func(context.Context) error, error) {
	cfg := tracing.Config{ServiceVersion: version}
	if endpoint := pkgconfig.GetEnvString("OTEL_EXPORTER_OTLP_ENDPOINT", ""); endpoint != "" {
		exporter, err := tracing.NewOTLPExporter(context.Background(), endpoint)
		if err != nil {
			return nil, err
		}
		cfg.Exporter = exporter
		logger.Info("trace export enabled", slog.String("endpoint", endpoint))
	}
	return tracing.Init(cfg)
}

var errMissingJWTSecret = errors.New("JWT_SECRET must be set")

// initTokenIssuer requires JWT_SECRET to be at least 32 bytes.
func initTokenIssuer(cfg *config.AppConfig) (*hauth.TokenIssuer, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errMissingJWTSecret
	}
	issuer, err := hauth.NewTokenIssuer([]byte(secret), cfg.Auth.JWTExpiry())
	if err != nil {
		return nil, fmt.Errorf("invalid JWT configuration: %w", err)
	}
	return issuer, nil
}

// initDatabase opens the database connection and creates the schema.
func initDatabase() (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	database, err := db.Open(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := db.MigrateUp(ctx, database); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return database, nil
}

// ServerComponents holds what main needs after the routes are built.
type ServerComponents struct {
	Handler     http.Handler
	AuthLimiter *hhttp.RateLimiter
	Stats       *worker.StatsJob
}

func setupServer(logger *slog.Logger, database *sql.DB, cfg *config.AppConfig, issuer *hauth.TokenIssuer, version string) (*ServerComponents, error) {
	breaker := circuitbreaker.NewDBCircuitBreaker(database)
	articleRepo := pgRepo.NewArticleRepo(breaker)
	commentRepo := pgRepo.NewCommentRepo(breaker)
	userRepo := pgRepo.NewUserRepo(breaker)

	sanitizer := text.NewSanitizer()
	artSvc := &artUC.Service{Repo: articleRepo, Sanitizer: sanitizer}
	commentSvc := &commentUC.Service{Repo: commentRepo, Articles: articleRepo, Sanitizer: sanitizer}
	userSvc := userUC.NewService(userRepo, userUC.Options{
		MinPasswordLength: cfg.Auth.MinPasswordLength,
		BcryptCost:        cfg.Auth.BcryptCost,
	})
	authSvc := authservice.NewAuthService(userRepo)

	limiter := hhttp.NewRateLimiter(cfg.Auth.RateLimit.RequestsPerMinute, cfg.Auth.RateLimit.Burst)
	limiter.TrustForwardedFor = pkgconfig.GetEnvBool("TRUST_PROXY_HEADERS", false)
	if err := limiter.SetTrustedProxies(pkgconfig.GetEnvStringList("TRUSTED_PROXIES", nil)); err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}

	handler := hhttp.NewRouter(hhttp.RouterConfig{
		Logger:         logger,
		Version:        version,
		Articles:       artSvc,
		Comments:       commentSvc,
		Users:          userSvc,
		Auth:           authSvc,
		Issuer:         issuer,
		AuthLimiter:    limiter,
		Health:         &hhttp.HealthHandler{DB: database, Breaker: breaker, RateLimiter: limiter, Version: version},
		Ready:          &hhttp.ReadyHandler{DB: database},
		RequestTimeout: pkgconfig.GetEnvDuration("HTTP_REQUEST_TIMEOUT", hhttp.DefaultRequestTimeout),
		MaxBodyBytes:   int64(pkgconfig.GetEnvPositiveInt("HTTP_MAX_BODY_BYTES", hhttp.DefaultMaxBodyBytes)),
	})

	return &ServerComponents{
		Handler:     handler,
		AuthLimiter: limiter,
		Stats: &worker.StatsJob{
			Articles: articleRepo,
			Users:    userRepo,
			Comments: commentRepo,
			Timeout:  cfg.Stats.Timeout,
			Logger:   logger,
		},
	}, nil
}

func newServer(ctx context.Context, addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}
}

// runServer serves until a signal arrives on quit and then shuts down
// gracefully. A listener failure is returned instead.
func runServer(srv *http.Server, quit <-chan os.Signal, cancel context.CancelFunc, logger *slog.Logger, version string) error {
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", srv.Addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		cancel()
		if err != nil {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	case <-quit:
	}
	logger.Info("shutting down server...")

	// stop background goroutines (rate limit cleanup, stats job)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
