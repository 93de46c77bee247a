package config

import (
	"time"

	"github.com/heartmarshall/jisho-backend/internal/domain"
	"github.com/heartmarshall/jisho-backend/internal/kana"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Lookup    LookupConfig    `yaml:"lookup"`
	Kana      KanaConfig      `yaml:"kana"`
	Deinflect DeinflectConfig `yaml:"deinflect"`
	Importer  ImporterConfig  `yaml:"importer"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// LookupConfig holds the default lookup settings. HTTP requests may override
// each of them.
type LookupConfig struct {
	Deconjugate          bool     `yaml:"deconjugate"           env:"LOOKUP_DECONJUGATE"`
	BilingualFirst       bool     `yaml:"bilingual_first"       env:"LOOKUP_BILINGUAL_FIRST"       env-default:"false"`
	DisabledDictionaries []string `yaml:"disabled_dictionaries" env:"LOOKUP_DISABLED_DICTIONARIES" env-separator:","`
}

// KanaConfig controls half-width katakana handling.
type KanaConfig struct {
	HalfWidthMode  string `yaml:"half_width_mode"  env:"KANA_HALF_WIDTH_MODE"  env-default:"legacy"`
	RouteHalfWidth bool   `yaml:"route_half_width" env:"KANA_ROUTE_HALF_WIDTH" env-default:"false"`
}

// DeinflectConfig holds deinflection settings. An empty RulesPath selects the
// built-in rule table.
type DeinflectConfig struct {
	RulesPath string `yaml:"rules_path" env:"DEINFLECT_RULES_PATH"`
	MaxDepth  int    `yaml:"max_depth"  env:"DEINFLECT_MAX_DEPTH"  env-default:"10"`
}

// ImporterConfig holds dictionary import settings.
type ImporterConfig struct {
	BatchSize int `yaml:"batch_size" env:"IMPORTER_BATCH_SIZE" env-default:"1000"`
}

// CORSConfig holds Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// RateLimitConfig holds per-client request limits for the lookup API.
// A zero RequestsPerMinute disables limiting.
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATE_LIMIT_REQUESTS_PER_MINUTE"`
	Burst             int           `yaml:"burst"               env:"RATE_LIMIT_BURST"               env-default:"50"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP_INTERVAL"    env-default:"5m"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}

// newConfig returns a Config holding the defaults whose zero value is a valid
// setting. cleanenv only fills env-default into fields that are still zero
// after the file is read, so an explicit false or 0 would be overwritten.
func newConfig() *Config {
	return &Config{
		Lookup:    LookupConfig{Deconjugate: true},
		RateLimit: RateLimitConfig{RequestsPerMinute: 600},
		Metrics:   MetricsConfig{Enabled: true},
	}
}

// Settings returns the configured defaults as per-call lookup settings.
func (c LookupConfig) Settings() domain.LookupSettings {
	return domain.LookupSettings{
		DisabledDictionaries: domain.NewDictionarySet(c.DisabledDictionaries...),
		ShouldDeconjugate:    c.Deconjugate,
		BilingualFirst:       c.BilingualFirst,
	}
}

// Normalizer returns the kana normalizer described by c. Call it only after
// Validate has accepted the mode.
func (c KanaConfig) Normalizer() kana.Normalizer {
	mode, _ := kana.ParseHalfWidthMode(c.HalfWidthMode)
	return kana.Normalizer{Mode: mode, RouteHalfWidth: c.RouteHalfWidth}
}
