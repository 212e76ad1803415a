// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, storage, listing limits, rate limiting,
// and observability.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/tbourn/game-reviews-api/internal/query"
	"github.com/tbourn/game-reviews-api/internal/utils"
)

// Application environments. Production hides the cause of 500 responses.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "game-reviews-api")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// DBConfig selects the store.
type DBConfig struct {
	Driver         string        // sqlite|postgres
	Path           string        // SQLite file
	URL            string        // PostgreSQL DSN
	ConnectTimeout time.Duration // budget for the first PostgreSQL ping
}

// ListConfig tunes review and comment listings.
type ListConfig struct {
	DefaultLimit int      // page size when ?limit is absent
	MaxLimit     int      // larger limits are clamped
	SortColumns  []string // review sort whitelist; empty means all columns
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test
	AppEnv            string        // development|production

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	LogRedact      bool   // access log with query/header redaction
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes
	GzipEnabled    bool   // gzip responses

	// Storage and listings
	DB   DBConfig
	List ListConfig

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)
	RedisAddr string  // shared limiter backend; empty keeps it in memory

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Observability
	OTEL OTELConfig
}

// Production reports whether the service runs with production posture.
func (c Config) Production() bool { return c.AppEnv == EnvProduction }

// ReviewWhitelist builds the review sort whitelist from List.SortColumns.
// created_at stays the default when it is allowed; otherwise the first
// configured column is.
func (c Config) ReviewWhitelist() (query.Whitelist, error) {
	cols := c.List.SortColumns
	if len(cols) == 0 {
		return query.DefaultReviewWhitelist(), nil
	}
	def := cols[0]
	for _, col := range cols {
		if col == "created_at" {
			def = col
			break
		}
	}
	return query.NewWhitelist(def, cols...)
}

// Paginator returns the listing paginator.
func (c Config) Paginator() query.Paginator {
	return query.Paginator{DefaultLimit: c.List.DefaultLimit, MaxLimit: c.List.MaxLimit}
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables (after merging a
// .env file when one exists), applies defaults, normalizes values, and
// validates the result.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),
		AppEnv:            strings.ToLower(getenv("APP_ENV", EnvDevelopment)),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		LogRedact:      getbool("LOG_REDACT", true),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/api")),
		GzipEnabled:    getbool("GZIP_ENABLED", false),

		// Storage
		DB: DBConfig{
			Driver:         strings.ToLower(getenv("DB_DRIVER", "sqlite")),
			Path:           getenv("DB_PATH", "reviews.db"),
			URL:            getenv("DATABASE_URL", ""),
			ConnectTimeout: getdur("DB_CONNECT_TIMEOUT", 30*time.Second),
		},
		List: ListConfig{
			DefaultLimit: getint("LIST_DEFAULT_LIMIT", 10),
			MaxLimit:     getint("LIST_MAX_LIMIT", 100),
			SortColumns:  utils.SplitCSV(strings.ToLower(getenv("REVIEW_SORT_COLUMNS", ""))),
		},

		// Rate limiting
		RateRPS:   getfloat("RATE_RPS", 5.0),
		RateBurst: getint("RATE_BURST", 10),
		RedisAddr: getenv("REDIS_ADDR", ""),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: utils.SplitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "game-reviews-api"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}
	if cfg.AppEnv == "prod" {
		cfg.AppEnv = EnvProduction
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	switch cfg.AppEnv {
	case EnvDevelopment, EnvProduction:
	default:
		return cfg, errors.New("APP_ENV must be development or production")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	switch cfg.DB.Driver {
	case "sqlite":
		if strings.TrimSpace(cfg.DB.Path) == "" {
			return cfg, errors.New("DB_PATH must not be empty")
		}
	case "postgres":
		if strings.TrimSpace(cfg.DB.URL) == "" {
			return cfg, errors.New("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return cfg, errors.New("DB_DRIVER must be sqlite or postgres")
	}
	if cfg.DB.ConnectTimeout <= 0 {
		return cfg, errors.New("DB_CONNECT_TIMEOUT must be > 0")
	}
	if cfg.List.DefaultLimit < 1 {
		return cfg, errors.New("LIST_DEFAULT_LIMIT must be >= 1")
	}
	if cfg.List.MaxLimit < cfg.List.DefaultLimit {
		return cfg, errors.New("LIST_MAX_LIMIT must be >= LIST_DEFAULT_LIMIT")
	}
	if err := validateSortColumns(cfg.List.SortColumns); err != nil {
		return cfg, err
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// validateSortColumns rejects override entries that are not review columns.
func validateSortColumns(cols []string) error {
	if len(cols) == 0 {
		return nil
	}
	known := query.DefaultReviewWhitelist()
	for _, c := range cols {
		if !known.Contains(c) {
			return fmt.Errorf("REVIEW_SORT_COLUMNS: unknown review column %q", c)
		}
	}
	return nil
}

// ---- env helpers ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
