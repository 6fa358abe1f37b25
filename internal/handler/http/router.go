package http

import (
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"duo-blog/internal/handler/http/article"
	"duo-blog/internal/handler/http/auth"
	"duo-blog/internal/handler/http/comment"
	"duo-blog/internal/handler/http/home"
	"duo-blog/internal/handler/http/requestid"
	"duo-blog/internal/handler/http/user"
	"duo-blog/internal/observability/tracing"
)

const (
	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxBodyBytes   = 1 << 20
)

// UseCases bundles what the authenticated routes need to resolve the
// acting user and what the token endpoint needs to log users in.
type UseCases interface {
	auth.Authenticator
	auth.UserResolver
}

// RouterConfig lists everything NewRouter mounts.
type RouterConfig struct {
	Logger   *slog.Logger
	Version  string
	Articles article.Service
	Comments comment.Service
	Users    user.Registrar
	Auth     UseCases
	Issuer   *auth.TokenIssuer

	// AuthLimiter throttles registration and token requests per client IP.
	AuthLimiter *RateLimiter
	Health      *HealthHandler
	Ready       *ReadyHandler

	RequestTimeout time.Duration
	MaxBodyBytes   int64
}

// NewRouter returns the full handler: routes plus the global middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	limit := func(h http.Handler) http.Handler { return h }
	if cfg.AuthLimiter != nil {
		limit = cfg.AuthLimiter.Limit
	}

	authz := auth.Authz(cfg.Issuer, cfg.Auth)
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", home.Handler{Service: tracing.ServiceName, Version: cfg.Version})
	article.Register(mux, cfg.Articles, authz, cfg.Logger)
	comment.Register(mux, cfg.Comments, authz)
	mux.Handle("POST /users", limit(user.RegisterHandler{Svc: cfg.Users}))
	mux.Handle("POST /auth/token", limit(auth.TokenHandler{Auth: cfg.Auth, Issuer: cfg.Issuer}))

	if cfg.Health != nil {
		mux.Handle("GET /health", cfg.Health)
	}
	if cfg.Ready != nil {
		mux.Handle("GET /ready", cfg.Ready)
	}
	mux.Handle("GET /live", LiveHandler{})
	mux.Handle("GET /metrics", MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return Chain(mux,
		requestid.Middleware,
		Recover(cfg.Logger),
		tracing.Middleware,
		Logging(cfg.Logger),
		MetricsMiddleware,
		Timeout(cfg.RequestTimeout),
		LimitRequestBody(cfg.MaxBodyBytes),
	)
}
