package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"

	StorageLocal = "local"
	StorageS3    = "s3"
)

// DefaultCulturalGroups lists the performing ensembles a student artist may join.
var DefaultCulturalGroups = []string{
	"Dulaang Batangan",
	"Indak Yaman Dance Varsity",
	"Diwayanis Dance Theatre",
	"Melophiles",
	"Sandugo Dance Group",
	"Pariralang Bulwagan",
	"Coro Batangueño",
}

type Config struct {
	Env       string
	Port      int
	APIPrefix string
	WebDir    string

	Database       DatabaseConfig
	Redis          RedisConfig
	JWT            JWTConfig
	Session        SessionConfig
	CSRF           CSRFConfig
	CORS           CORSConfig
	Log            LogConfig
	Dashboard      DashboardConfig
	Storage        StorageConfig
	Cleanup        CleanupConfig
	RateLimit      RateLimitConfig
	CulturalGroups []string
}

type DatabaseConfig struct {
	Driver       string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// SessionConfig controls the browser session cookie and the login redirect target.
type SessionConfig struct {
	CookieName string
	HashKey    string
	BlockKey   string
	Secure     bool
	LoginPath  string
}

// CSRFConfig toggles CSRF protection for form submissions.
type CSRFConfig struct {
	Enabled bool
	AuthKey string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// DashboardConfig tunes distribution caching.
type DashboardConfig struct {
	CacheTTL time.Duration
}

// StorageConfig selects where event images live.
type StorageConfig struct {
	Driver          string
	Dir             string
	S3Bucket        string
	S3Region        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string
	SignedURLSecret string
	SignedURLTTL    time.Duration
	MaxUploadBytes  int64
}

// CleanupConfig sizes the background image cleanup queue.
type CleanupConfig struct {
	Workers int
	Retries int
}

// RateLimitConfig bounds login attempts per client IP.
type RateLimitConfig struct {
	LoginRequests int
	LoginWindow   time.Duration
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
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.WebDir = v.GetString("WEB_DIR")

	cfg.Database = DatabaseConfig{
		Driver:       strings.ToLower(v.GetString("DB_DRIVER")),
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 8*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.Session = SessionConfig{
		CookieName: v.GetString("SESSION_COOKIE_NAME"),
		HashKey:    v.GetString("SESSION_HASH_KEY"),
		BlockKey:   v.GetString("SESSION_BLOCK_KEY"),
		Secure:     v.GetBool("SESSION_SECURE"),
		LoginPath:  v.GetString("LOGIN_PATH"),
	}

	cfg.CSRF = CSRFConfig{
		Enabled: v.GetBool("CSRF_ENABLED"),
		AuthKey: v.GetString("CSRF_AUTH_KEY"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Dashboard = DashboardConfig{
		CacheTTL: parseDuration(v.GetString("DASHBOARD_CACHE_TTL"), 5*time.Minute),
	}

	maxUpload := v.GetInt64("IMAGE_MAX_UPLOAD_SIZE")
	if maxUpload <= 0 {
		maxUpload = 5 * 1024 * 1024
	}
	cfg.Storage = StorageConfig{
		Driver:          strings.ToLower(v.GetString("STORAGE_DRIVER")),
		Dir:             v.GetString("STORAGE_DIR"),
		S3Bucket:        v.GetString("S3_BUCKET"),
		S3Region:        v.GetString("S3_REGION"),
		S3AccessKey:     v.GetString("S3_ACCESS_KEY"),
		S3SecretKey:     v.GetString("S3_SECRET_KEY"),
		S3Endpoint:      v.GetString("S3_ENDPOINT"),
		SignedURLSecret: v.GetString("IMAGE_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("IMAGE_SIGNED_URL_TTL"), time.Hour),
		MaxUploadBytes:  maxUpload,
	}

	cfg.Cleanup = CleanupConfig{
		Workers: v.GetInt("CLEANUP_WORKERS"),
		Retries: v.GetInt("CLEANUP_RETRIES"),
	}

	cfg.RateLimit = RateLimitConfig{
		LoginRequests: v.GetInt("LOGIN_RATE_LIMIT"),
		LoginWindow:   parseDuration(v.GetString("LOGIN_RATE_WINDOW"), time.Minute),
	}

	cfg.CulturalGroups = splitAndTrim(v.GetString("CULTURAL_GROUPS"))
	if len(cfg.CulturalGroups) == 0 {
		cfg.CulturalGroups = append([]string(nil), DefaultCulturalGroups...)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("WEB_DIR", "./web")

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "arts_admin")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "8h")
	v.SetDefault("JWT_ISSUER", "arts-admin-api")

	v.SetDefault("SESSION_COOKIE_NAME", "arts_admin_session")
	v.SetDefault("SESSION_HASH_KEY", "dev_session_hash_key_change_me_32b")
	v.SetDefault("SESSION_BLOCK_KEY", "")
	v.SetDefault("SESSION_SECURE", false)
	v.SetDefault("LOGIN_PATH", "/login")

	v.SetDefault("CSRF_ENABLED", false)
	v.SetDefault("CSRF_AUTH_KEY", "dev_csrf_auth_key_32_bytes_long!")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DASHBOARD_CACHE_TTL", "5m")

	v.SetDefault("STORAGE_DRIVER", StorageLocal)
	v.SetDefault("STORAGE_DIR", ".")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_REGION", "ap-southeast-1")
	v.SetDefault("S3_ACCESS_KEY", "")
	v.SetDefault("S3_SECRET_KEY", "")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("IMAGE_SIGNED_URL_SECRET", "dev_image_secret")
	v.SetDefault("IMAGE_SIGNED_URL_TTL", "1h")
	v.SetDefault("IMAGE_MAX_UPLOAD_SIZE", 5*1024*1024)

	v.SetDefault("CLEANUP_WORKERS", 1)
	v.SetDefault("CLEANUP_RETRIES", 3)

	v.SetDefault("LOGIN_RATE_LIMIT", 10)
	v.SetDefault("LOGIN_RATE_WINDOW", "1m")

	v.SetDefault("CULTURAL_GROUPS", "")
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
