// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver) and PostgreSQL, schema migrations and tracing.
package repo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	sqlite "github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/game-reviews-api/internal/domain"
)

// Supported values for Options.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options selects and tunes the store opened by Open.
type Options struct {
	Driver         string        // "sqlite" (default) or "postgres"
	Path           string        // SQLite file path
	DSN            string        // PostgreSQL connection string
	ConnectTimeout time.Duration // total budget for the initial PostgreSQL ping
	Silent         bool          // silence the GORM logger
}

// Open opens the store named by opts.Driver.
func Open(ctx context.Context, opts Options) (*gorm.DB, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverSQLite:
		return OpenSQLite(opts.Path, gormConfig(opts.Silent))
	case DriverPostgres:
		return OpenPostgres(ctx, opts.DSN, opts.ConnectTimeout, gormConfig(opts.Silent))
	default:
		return nil, fmt.Errorf("repo: unsupported driver %q", opts.Driver)
	}
}

func gormConfig(silent bool) *gorm.Config {
	cfg := &gorm.Config{}
	if silent {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	return cfg
}

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
// Foreign keys are enabled in the DSN so every pooled connection enforces them.
func OpenSQLite(path string, cfg ...*gorm.Config) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	gcfg := &gorm.Config{}
	if len(cfg) > 0 && cfg[0] != nil {
		gcfg = cfg[0]
	}
	db, err := gorm.Open(sqlite.Open(withForeignKeys(path)), gcfg)
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

func withForeignKeys(path string) string {
	if strings.Contains(path, "foreign_keys") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}

// OpenPostgres connects to PostgreSQL and pings it with exponential backoff
// until it answers or timeout elapses. A zero timeout means 30s.
func OpenPostgres(ctx context.Context, dsn string, timeout time.Duration, cfg ...*gorm.Config) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("repo: postgres DSN is empty")
	}
	gcfg := &gorm.Config{}
	if len(cfg) > 0 && cfg[0] != nil {
		gcfg = cfg[0]
	}
	db, err := gorm.Open(postgres.Open(dsn), gcfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	eb := backoff.NewExponentialBackOff()
	eb.MaxElapsedTime = timeout
	ping := func() error {
		pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return sqlDB.PingContext(pctx)
	}
	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Dur("retry_in", wait).Msg("postgres not ready")
	}
	if err := backoff.RetryNotify(ping, backoff.WithContext(eb, ctx), notify); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("repo: postgres unreachable: %w", err)
	}
	return db, nil
}

// AutoMigrate creates or updates the schema. Parents are migrated before
// the tables that reference them.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Category{},
		&domain.User{},
		&domain.Review{},
		&domain.Comment{},
	)
}

// EnableTracing registers the OpenTelemetry GORM plugin so every statement
// becomes a child span of the request span. Metrics are left to Prometheus.
func EnableTracing(db *gorm.DB) error {
	return db.Use(tracing.NewPlugin(tracing.WithoutMetrics()))
}
