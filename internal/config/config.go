package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string
	LogLevel    string
	LogFormat   string

	OTLPEndpoint string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	// SeedDemoData provisions a demo tenant at startup. Development only.
	SeedDemoData bool

	Storage StorageConfig
}

// StorageConfig points at the hosted object-storage service and names the
// buckets the data layer writes to.
type StorageConfig struct {
	Endpoint   string
	ServiceKey string

	DocumentsBucket string
	PaychecksBucket string
	AvatarsBucket   string

	// PublicAvatars switches avatar pointers to deterministic public URLs
	// instead of bucket-relative paths.
	PublicAvatars bool

	DocumentURLTTL time.Duration
	PaycheckURLTTL time.Duration
	AvatarURLTTL   time.Duration
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "workfolio"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		LogFormat:   getenv("LOG_FORMAT", "json"),

		OTLPEndpoint: getenv("OTLP_ENDPOINT", "localhost:4317"),

		DBType:            getenv("DB_TYPE", "postgres"),
		DBHost:            getenv("DB_HOST", "localhost"),
		DBPort:            getenv("DB_PORT", "5432"),
		DBName:            getenv("DB_NAME", "workfolio"),
		DBUser:            getenv("DB_USER", "workfolio"),
		DBPassword:        getenv("DB_PASSWORD", ""),
		DBSSLMode:         getenv("DB_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DB_MAX_IDLE_CONN", 10),
		DBMaxOpenConn:     getenvInt("DB_MAX_OPEN_CONN", 50),
		DBConnMaxLifetime: getenvInt("DB_CONN_MAX_LIFETIME", 3600),
		DBConnMaxIdleTime: getenvInt("DB_CONN_MAX_IDLE_TIME", 600),

		SeedDemoData: getenvBool("SEED_DEMO_DATA", false),

		Storage: StorageConfig{
			Endpoint:        strings.TrimRight(getenv("STORAGE_ENDPOINT", "http://localhost:54321/storage/v1"), "/"),
			ServiceKey:      strings.TrimSpace(getenv("STORAGE_SERVICE_KEY", "")),
			DocumentsBucket: getenv("STORAGE_BUCKET_DOCUMENTS", "documents"),
			PaychecksBucket: getenv("STORAGE_BUCKET_PAYCHECKS", "paychecks"),
			AvatarsBucket:   getenv("STORAGE_BUCKET_AVATARS", "avatars"),
			PublicAvatars:   getenvBool("STORAGE_PUBLIC_AVATARS", false),
			DocumentURLTTL:  getenvDuration("STORAGE_DOCUMENT_URL_TTL", 60*time.Second),
			PaycheckURLTTL:  getenvDuration("STORAGE_PAYCHECK_URL_TTL", 120*time.Second),
			AvatarURLTTL:    getenvDuration("STORAGE_AVATAR_URL_TTL", 300*time.Second),
		},
	}
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return fallback
}
