package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	UploadProviderCloudinary = "cloudinary"
	UploadProviderS3         = "s3"

	defaultDBDriver     = "sqlite"
	defaultDBConnection = "./data/memento.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_time_format=sqlite"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret string
	JWTExpiry time.Duration

	// HTTP
	CORSAllowedOrigins []string
	AuthRateLimit      int // Requests per AuthRateWindow per client IP on register/login
	AuthRateWindow     time.Duration

	// Observability (optional)
	SentryDSN      string
	MetricsEnabled bool // Serve Prometheus metrics on /metrics

	// Uploads. Clients upload media directly to the provider with a signature
	// issued by the API.
	UploadProvider   string // "cloudinary" or "s3"
	UploadRootFolder string

	// Uploads - Cloudinary
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	// Uploads - S3-compatible (AWS S3, MinIO, Cloudflare R2, DigitalOcean Spaces, etc.)
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string        // Optional: for S3-compatible services
	S3PresignExpiry time.Duration // Lifetime of presigned upload URLs
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Memento API"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		Port:    envString("PORT", "8000"),

		// Database
		DBDriver:     envString("DB_DRIVER", defaultDBDriver),
		DBConnection: envString("DB_CONNECTION", defaultDBConnection),

		// Security
		JWTSecret: envRequired("JWT_SECRET"),
		JWTExpiry: envDuration("JWT_EXPIRY", 24*time.Hour),

		// HTTP
		CORSAllowedOrigins: envList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		AuthRateLimit:      envInt("AUTH_RATE_LIMIT", 10),
		AuthRateWindow:     envDuration("AUTH_RATE_WINDOW", time.Minute),

		// Observability
		SentryDSN:      envString("SENTRY_DSN", ""),
		MetricsEnabled: envBool("METRICS_ENABLED", true),

		// Uploads
		UploadProvider:   envString("UPLOAD_PROVIDER", UploadProviderCloudinary),
		UploadRootFolder: envString("UPLOAD_ROOT_FOLDER", "memento"),

		CloudinaryCloudName: envString("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    envString("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: envString("CLOUDINARY_API_SECRET", ""),

		S3Region:        envString("S3_REGION", "us-east-1"),
		S3Bucket:        envString("S3_BUCKET", ""),
		S3AccessKey:     envString("S3_ACCESS_KEY", ""),
		S3SecretKey:     envString("S3_SECRET_KEY", ""),
		S3Endpoint:      envString("S3_ENDPOINT", ""),
		S3PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", 15*time.Minute),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures the upload provider is fully configured for production deployments.
// Development tolerates missing credentials so the API can run without a media host.
// LoadDatabase reads only the database settings. Used by tools that never
// serve HTTP and so don't need APP_ENV or JWT_SECRET.
func LoadDatabase() (driver, connection string) {
	_ = godotenv.Load()
	return envString("DB_DRIVER", defaultDBDriver), envString("DB_CONNECTION", defaultDBConnection)
}

func validateProduction(cfg *Config) {
	missing := cfg.MissingUploadSettings()
	if len(missing) > 0 {
		slog.Error("production deployment requires upload credentials",
			"provider", cfg.UploadProvider,
			"missing", strings.Join(missing, ","),
		)
		os.Exit(1)
	}
}

// MissingUploadSettings lists the env vars the selected upload provider
// still needs.
func (c *Config) MissingUploadSettings() []string {
	var missing []string
	require := func(key, value string) {
		if value == "" {
			missing = append(missing, key)
		}
	}

	switch c.UploadProvider {
	case UploadProviderS3:
		require("S3_BUCKET", c.S3Bucket)
		require("S3_ACCESS_KEY", c.S3AccessKey)
		require("S3_SECRET_KEY", c.S3SecretKey)
	case UploadProviderCloudinary:
		require("CLOUDINARY_CLOUD_NAME", c.CloudinaryCloudName)
		require("CLOUDINARY_API_KEY", c.CloudinaryAPIKey)
		require("CLOUDINARY_API_SECRET", c.CloudinaryAPISecret)
	default:
		missing = append(missing, "UPLOAD_PROVIDER")
	}

	return missing
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return i
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

// envList reads a comma separated list, dropping empty entries.
func envList(key string, def []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
