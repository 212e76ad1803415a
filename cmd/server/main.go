// Command server runs the board game reviews API.
//
// @title           Board Game Reviews API
// @version         1.0
// @description     Categories, reviews, comments and users of a board game review site.
// @license.name    MIT
// @BasePath        /api
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/game-reviews-api/internal/config"
	httpapi "github.com/tbourn/game-reviews-api/internal/http"
	"github.com/tbourn/game-reviews-api/internal/observability"
	"github.com/tbourn/game-reviews-api/internal/repo"
	"github.com/tbourn/game-reviews-api/internal/sysutil"
)

func main() {
	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	log.Logger = sysutil.NewLogger(os.Stdout, cfg.LogPretty, cfg.OTEL.ServiceName)
	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Tracing
	shutdownTracing, err := observability.Setup(ctx, cfg.OTEL, observability.BuildInfo{
		Version:     sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), "dev"),
		Environment: cfg.AppEnv,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	// Storage
	db, err := repo.Open(ctx, repo.Options{
		Driver:         cfg.DB.Driver,
		Path:           cfg.DB.Path,
		DSN:            cfg.DB.URL,
		ConnectTimeout: cfg.DB.ConnectTimeout,
		Silent:         cfg.Production(),
	})
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}
	if cfg.OTEL.Enabled {
		if err := repo.EnableTracing(db); err != nil {
			log.Warn().Err(err).Msg("gorm tracing disabled")
		}
	}

	// Router
	limiter := httpapi.NewRateLimiter(ctx, cfg)
	defer func() { _ = limiter.Close() }()

	r := gin.New()
	if err := httpapi.RegisterRoutes(r, db, limiter, cfg); err != nil {
		log.Fatal().Err(err).Msg("register routes")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	// Graceful shutdown
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.AppEnv).
			Str("db", cfg.DB.Driver).
			Str("rate_limit", limiter.Backend).
			Msg("game reviews API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	cancel()

	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if err := shutdownTracing(ctx2); err != nil {
		log.Error().Err(err).Msg("tracer shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server stopped")
}
