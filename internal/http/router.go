// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, compression and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/tbourn/game-reviews-api/docs" // registers the OpenAPI document
	"github.com/tbourn/game-reviews-api/internal/apperr"
	"github.com/tbourn/game-reviews-api/internal/config"
	"github.com/tbourn/game-reviews-api/internal/domain"
	"github.com/tbourn/game-reviews-api/internal/http/handlers"
	"github.com/tbourn/game-reviews-api/internal/http/middleware"
	"github.com/tbourn/game-reviews-api/internal/query"
	"github.com/tbourn/game-reviews-api/internal/repo"
	"github.com/tbourn/game-reviews-api/internal/services"
)

// maxBodyBytes caps every request body.
const maxBodyBytes = 1 << 20

// maskedHeaders are logged as [REDACTED] on top of Authorization and
// cookies: proxy credentials and the client addresses set by proxies.
var maskedHeaders = []string{"Proxy-Authorization", "X-Forwarded-For", "X-Real-IP"}

// unlimitedPaths are never rate limited.
var unlimitedPaths = []string{"/health", "/ready", "/metrics"}

// sqlRepo adapts the repository free functions to the repository interfaces
// expected by the services. This keeps services decoupled from the concrete
// repo package while reusing existing functions.
type sqlRepo struct{}

// ListReviews proxies repo.ListReviews.
func (sqlRepo) ListReviews(ctx context.Context, db *gorm.DB, stmt query.Statement) ([]domain.ReviewRow, error) {
	return repo.ListReviews(ctx, db, stmt)
}

// CountReviews proxies repo.CountReviews.
func (sqlRepo) CountReviews(ctx context.Context, db *gorm.DB, stmt query.Statement) (int64, error) {
	return repo.CountReviews(ctx, db, stmt)
}

// GetReviewWithCount proxies repo.GetReviewWithCount.
func (sqlRepo) GetReviewWithCount(ctx context.Context, db *gorm.DB, id int64) (*domain.ReviewDetail, error) {
	return repo.GetReviewWithCount(ctx, db, id)
}

// InsertReview proxies repo.InsertReview.
func (sqlRepo) InsertReview(ctx context.Context, db *gorm.DB, in repo.NewReview) (*domain.Review, error) {
	return repo.InsertReview(ctx, db, in)
}

// IncrementReviewVotes proxies repo.IncrementReviewVotes.
func (sqlRepo) IncrementReviewVotes(ctx context.Context, db *gorm.DB, id int64, inc int) (*domain.Review, error) {
	return repo.IncrementReviewVotes(ctx, db, id, inc)
}

// DeleteReview proxies repo.DeleteReview.
func (sqlRepo) DeleteReview(ctx context.Context, db *gorm.DB, id int64) error {
	return repo.DeleteReview(ctx, db, id)
}

// ListComments proxies repo.ListComments.
func (sqlRepo) ListComments(ctx context.Context, db *gorm.DB, stmt query.Statement) ([]domain.CommentRow, error) {
	return repo.ListComments(ctx, db, stmt)
}

// CountComments proxies repo.CountComments.
func (sqlRepo) CountComments(ctx context.Context, db *gorm.DB, stmt query.Statement) (int64, error) {
	return repo.CountComments(ctx, db, stmt)
}

// InsertComment proxies repo.InsertComment.
func (sqlRepo) InsertComment(ctx context.Context, db *gorm.DB, reviewID int64, author, body *string) (*domain.Comment, error) {
	return repo.InsertComment(ctx, db, reviewID, author, body)
}

// IncrementCommentVotes proxies repo.IncrementCommentVotes.
func (sqlRepo) IncrementCommentVotes(ctx context.Context, db *gorm.DB, id int64, inc int) (*domain.Comment, error) {
	return repo.IncrementCommentVotes(ctx, db, id, inc)
}

// DeleteComment proxies repo.DeleteComment.
func (sqlRepo) DeleteComment(ctx context.Context, db *gorm.DB, id int64) error {
	return repo.DeleteComment(ctx, db, id)
}

// ListCategories proxies repo.ListCategories.
func (sqlRepo) ListCategories(ctx context.Context, db *gorm.DB) ([]domain.Category, error) {
	return repo.ListCategories(ctx, db)
}

// InsertCategory proxies repo.InsertCategory.
func (sqlRepo) InsertCategory(ctx context.Context, db *gorm.DB, slug string, description *string) (*domain.Category, error) {
	return repo.InsertCategory(ctx, db, slug, description)
}

// ListUsers proxies repo.ListUsers.
func (sqlRepo) ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	return repo.ListUsers(ctx, db)
}

// GetUser proxies repo.GetUser.
func (sqlRepo) GetUser(ctx context.Context, db *gorm.DB, username string) (*domain.User, error) {
	return repo.GetUser(ctx, db, username)
}

// RateLimiter is the limiter mounted by RegisterRoutes and the label it is
// reported under in http_rate_limited_total.
type RateLimiter struct {
	Limiter middleware.Limiter
	Backend string
	close   func() error
}

// Close releases the backend connection, if any.
func (rl RateLimiter) Close() error {
	if rl.close == nil {
		return nil
	}
	return rl.close()
}

// NewRateLimiter builds the limiter described by cfg. With REDIS_ADDR set
// the limit is shared through a Redis sliding window of one minute holding
// RATE_RPS*60 requests (at least RATE_BURST); if Redis does not answer a
// ping the in-memory token bucket is used instead.
func NewRateLimiter(ctx context.Context, cfg config.Config) RateLimiter {
	memory := RateLimiter{Limiter: middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst), Backend: "memory"}
	if cfg.RedisAddr == "" {
		return memory
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Str("redis_addr", cfg.RedisAddr).Msg("redis unavailable, rate limiting in memory")
		_ = client.Close()
		return memory
	}
	log.Info().Str("redis_addr", cfg.RedisAddr).Msg("rate limiting through redis")

	perWindow := int(cfg.RateRPS * 60)
	if perWindow < cfg.RateBurst {
		perWindow = cfg.RateBurst
	}
	return RateLimiter{
		Limiter: middleware.NewRedisRateLimiter(client, perWindow, time.Minute),
		Backend: "redis",
		close:   client.Close,
	}
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine, then mounts the public API under cfg.APIBasePath. A zero rl falls
// back to the in-memory limiter.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: validate/propagate correlation id
//  3. Access log (redacting unless LOG_REDACT=false)
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per IP)
//  8. CORS and Security headers
//  9. Gzip (optional)
func RegisterRoutes(r *gin.Engine, db *gorm.DB, rl RateLimiter, cfg config.Config) error {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging
	if cfg.LogRedact {
		r.Use(middleware.RedactingLogger(middleware.RedactOptions{
			MaskHeaders: maskedHeaders,
		}))
	} else {
		r.Use(middleware.Logger())
	}

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit
	r.Use(limitBody(maxBodyBytes))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Rate limiter per IP
	if rl.Limiter == nil {
		rl = RateLimiter{Limiter: middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst), Backend: "memory"}
	}
	r.Use(middleware.RateLimit(rl.Limiter, middleware.RateLimitOptions{
		SkipPaths: unlimitedPaths,
		Backend:   rl.Backend,
	}))

	// 8) CORS posture (safe defaults: allow all if none configured)
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
		HTMLPrefixes: []string{"/swagger/"},
	}))

	// 9) Compression
	if cfg.GzipEnabled {
		r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	}

	// Fallbacks
	r.NoRoute(func(c *gin.Context) { handlers.Fail(c, apperr.ErrRouteNotExist) })
	r.NoMethod(func(c *gin.Context) { handlers.Fail(c, apperr.ErrMethodNotAllowed) })

	// Liveness/readiness
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/ready", readiness(db))

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db
	wl, err := cfg.ReviewWhitelist()
	if err != nil {
		return err
	}
	pager := cfg.Paginator()
	exists := services.NewExistence(db)

	h := handlers.New(
		services.NewReviewService(db, sqlRepo{}, wl, pager, exists),
		services.NewCommentService(db, sqlRepo{}, query.DefaultCommentWhitelist(), pager, exists),
		&services.CategoryService{DB: db, Repo: sqlRepo{}},
		&services.UserService{DB: db, Repo: sqlRepo{}},
		apperr.NewClassifier(!cfg.Production()),
	)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.GET("", h.GetEndpoints)

		// Categories
		api.GET("/categories", h.ListCategories)
		api.POST("/categories", h.CreateCategory)

		// Reviews
		api.GET("/reviews", h.ListReviews)
		api.POST("/reviews", h.CreateReview)
		api.GET("/reviews/:review_id", h.GetReview)
		api.PATCH("/reviews/:review_id", h.PatchReview)
		api.DELETE("/reviews/:review_id", h.DeleteReview)

		// Comments
		api.GET("/reviews/:review_id/comments", h.ListComments)
		api.POST("/reviews/:review_id/comments", h.CreateComment)
		api.PATCH("/comments/:comment_id", h.PatchComment)
		api.DELETE("/comments/:comment_id", h.DeleteComment)

		// Users
		api.GET("/users", h.ListUsers)
		api.GET("/users/:username", h.GetUser)
	}
	return nil
}

// corsMiddleware returns the CORS chain. Without an allowlist every origin
// is accepted (credentials off); with one, allowed origins are echoed.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	base := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	if len(origins) == 0 {
		base.AllowAllOrigins = true
		return []gin.HandlerFunc{
			// Force ACAO: * even for requests without an Origin header.
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(base),
		}
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	base.AllowOrigins = origins
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(base),
	}
}

// readiness reports 503 while the database does not answer a ping.
func readiness(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("readiness check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
