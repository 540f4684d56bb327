package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Upstream UpstreamConfig
	Redis    RedisConfig
	Session  SessionConfig
	CORS     CORSConfig
	Log      LogConfig
	Cache    CacheConfig
	Reports  ReportsConfig
	Employee EmployeeConfig
	Features FeatureConfig
}

// UpstreamConfig points the gateway at the academy REST API.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SessionConfig governs gateway session lifetime and backing store.
type SessionConfig struct {
	TTL      time.Duration
	UseRedis bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CacheConfig tunes the shared upstream response cache.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// ReportsConfig controls export storage and background rendering.
type ReportsConfig struct {
	StorageDir        string
	SignedURLSecret   string
	SignedURLTTL      time.Duration
	WorkerConcurrency int
}

// EmployeeConfig controls the time-tracking endpoints.
type EmployeeConfig struct {
	Enabled       bool
	PhotoDir      string
	MaxPhotoBytes int64
}

// FeatureConfig gates optional gateway surfaces.
type FeatureConfig struct {
	Impersonation bool
	Payments      bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Upstream = UpstreamConfig{
		BaseURL: strings.TrimRight(v.GetString("UPSTREAM_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("UPSTREAM_TIMEOUT"), 30*time.Second),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Session = SessionConfig{
		TTL:      parseDuration(v.GetString("SESSION_TTL"), 12*time.Hour),
		UseRedis: v.GetBool("SESSION_USE_REDIS"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Cache = CacheConfig{
		Enabled:    v.GetBool("ENABLE_RESPONSE_CACHE"),
		DefaultTTL: parseDuration(v.GetString("RESPONSE_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Reports = ReportsConfig{
		StorageDir:        v.GetString("REPORTS_STORAGE_DIR"),
		SignedURLSecret:   v.GetString("REPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:      parseDuration(v.GetString("REPORTS_SIGNED_URL_TTL"), 24*time.Hour),
		WorkerConcurrency: v.GetInt("REPORTS_WORKER_CONCURRENCY"),
	}

	maxPhoto := v.GetInt64("EMPLOYEE_MAX_PHOTO_SIZE")
	if maxPhoto <= 0 {
		maxPhoto = 5 * 1024 * 1024
	}
	cfg.Employee = EmployeeConfig{
		Enabled:       v.GetBool("ENABLE_EMPLOYEE_TRACKING"),
		PhotoDir:      v.GetString("EMPLOYEE_PHOTO_DIR"),
		MaxPhotoBytes: maxPhoto,
	}

	cfg.Features = FeatureConfig{
		Impersonation: v.GetBool("ENABLE_IMPERSONATION"),
		Payments:      v.GetBool("ENABLE_PAYMENTS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("UPSTREAM_BASE_URL", "http://localhost:3000/api")
	v.SetDefault("UPSTREAM_TIMEOUT", "30s")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SESSION_TTL", "12h")
	v.SetDefault("SESSION_USE_REDIS", false)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_RESPONSE_CACHE", true)
	v.SetDefault("RESPONSE_CACHE_TTL", "5m")

	v.SetDefault("REPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("REPORTS_SIGNED_URL_SECRET", "dev_reports_secret")
	v.SetDefault("REPORTS_SIGNED_URL_TTL", "24h")
	v.SetDefault("REPORTS_WORKER_CONCURRENCY", 1)

	v.SetDefault("ENABLE_EMPLOYEE_TRACKING", true)
	v.SetDefault("EMPLOYEE_PHOTO_DIR", "./punch-photos")
	v.SetDefault("EMPLOYEE_MAX_PHOTO_SIZE", 5*1024*1024)

	v.SetDefault("ENABLE_IMPERSONATION", false)
	v.SetDefault("ENABLE_PAYMENTS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
