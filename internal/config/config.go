package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Mood and risk record store: "postgres" or "mongo"
	StoreDriver     string
	MongoDBURI      string
	MongoDBDatabase string

	// JWT (tokens are issued by the identity service)
	JWTSecret string

	// Admin
	AdminUserIDs string
	AdminToken   string

	// Server
	Port        string
	CORSOrigins string

	// Observability
	SentryDSN        string
	AppEnv           string
	LogRetentionDays int

	// Analytics
	SelfDefaultWindowDays      int
	SupporterDefaultWindowDays int
	OverviewConcurrency        int
	AnalyticsTimezone          string
	RequestTimeout             time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "mindcircle"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		StoreDriver:     getEnv("STORE_DRIVER", StoreDriverPostgres),
		MongoDBURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDBDatabase: getEnv("MONGODB_DATABASE", "mindcircle"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		AdminUserIDs: getEnv("ADMIN_USER_IDS", ""),
		AdminToken:   getEnv("ADMIN_TOKEN", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		SentryDSN:        getEnv("SENTRY_DSN", ""),
		AppEnv:           getEnv("APP_ENV", "development"),
		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),

		SelfDefaultWindowDays:      parseInt(getEnv("SELF_DEFAULT_WINDOW_DAYS", "7"), 7),
		SupporterDefaultWindowDays: parseInt(getEnv("SUPPORTER_DEFAULT_WINDOW_DAYS", "30"), 30),
		OverviewConcurrency:        parseInt(getEnv("OVERVIEW_CONCURRENCY", "4"), 4),
		AnalyticsTimezone:          getEnv("ANALYTICS_TIMEZONE", "UTC"),
		RequestTimeout:             parseDuration(getEnv("ANALYTICS_REQUEST_TIMEOUT", "10s")),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// Location resolves AnalyticsTimezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.AnalyticsTimezone)
	if err != nil {
		slog.Warn("invalid analytics timezone, using UTC", "timezone", c.AnalyticsTimezone, "error", err)
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
