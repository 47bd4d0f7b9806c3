package config

import (
	"os"
	"strconv"
	"time"
	_ "time/tzdata"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host                 string
	Port                 string
	User                 string
	Password             string
	Name                 string
	SSLMode              string
	MaxOpenConns         int
	MaxIdleConns         int
	ConnMaxLifetimeSec   int
	TimeZone             string
	StatementTimeoutSec  int
	ConnectAttempts      int
	ConnectRetryDelaySec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint         string
	AccessKey        string
	SecretKey        string
	Bucket           string
	UseSSL           bool
	PresignExpirySec int
}

// PresignExpiry is the lifetime of presigned download links.
func (c MinIOConfig) PresignExpiry() time.Duration {
	return time.Duration(c.PresignExpirySec) * time.Second
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	TokenTTLMin int
	EmailDomain string
}

// TokenTTL is the lifetime of issued tokens.
func (c AuthConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMin) * time.Minute
}

// RedisConfig holds the change-feed and cache connection settings.
// An empty Addr disables Redis.
type RedisConfig struct {
	Addr             string
	Password         string
	DB               int
	EventChannel     string
	TrackCachePrefix string
	TrackCacheTTLSec int
}

// AMQPConfig holds the change event exchange settings. An empty URL disables AMQP.
type AMQPConfig struct {
	URL      string
	Exchange string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost     string
	Port        string
	Timezone    string
	CatalogFile string
	Database    DatabaseConfig
	MinIO       MinIOConfig
	Auth        AuthConfig
	Redis       RedisConfig
	AMQP        AMQPConfig
}

// Location resolves Timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:     getEnv("APP_HOST", "localhost:8080"),
		Port:        getEnv("PORT", "8080"),
		Timezone:    getEnv("APP_TIMEZONE", "Asia/Jakarta"),
		CatalogFile: getEnv("CATALOG_FILE", ""),
		Database: DatabaseConfig{
			Host:                 getEnv("DB_HOST", ""),
			Port:                 getEnv("DB_PORT", "5432"),
			User:                 getEnv("DB_USER", ""),
			Password:             getEnv("DB_PASSWORD", ""),
			Name:                 getEnv("DB_NAME", ""),
			SSLMode:              getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:         getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:         getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec:   getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			TimeZone:             getEnv("APP_TIMEZONE", "Asia/Jakarta"),
			StatementTimeoutSec:  getEnvInt("DB_STATEMENT_TIMEOUT_SEC", 30),
			ConnectAttempts:      getEnvInt("DB_CONNECT_ATTEMPTS", 5),
			ConnectRetryDelaySec: getEnvInt("DB_CONNECT_RETRY_DELAY_SEC", 2),
		},
		MinIO: MinIOConfig{
			Endpoint:         getEnv("MINIO_ENDPOINT", ""),
			AccessKey:        getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:        getEnv("MINIO_SECRET_KEY", ""),
			Bucket:           getEnv("MINIO_BUCKET", ""),
			UseSSL:           getEnvBool("MINIO_USE_SSL", false),
			PresignExpirySec: getEnvInt("PRESIGN_EXPIRY_SEC", 900),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", ""),
			JWTIssuer:   getEnv("JWT_ISSUER", "sitrack"),
			TokenTTLMin: getEnvInt("JWT_TTL_MIN", 480),
			EmailDomain: getEnv("EMAIL_DOMAIN", "sitrack.gov.id"),
		},
		Redis: RedisConfig{
			Addr:             getEnv("REDIS_ADDR", ""),
			Password:         getEnv("REDIS_PASSWORD", ""),
			DB:               getEnvInt("REDIS_DB", 0),
			EventChannel:     getEnv("REDIS_EVENT_CHANNEL", "sitrack:changes"),
			TrackCachePrefix: getEnv("TRACK_CACHE_PREFIX", "sitrack:track:"),
			TrackCacheTTLSec: getEnvInt("TRACK_CACHE_TTL_SEC", 60),
		},
		AMQP: AMQPConfig{
			URL:      getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "sitrack.changes"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
