package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string
	DBLogLevel string

	JWTSecret           string
	JWTTTL              time.Duration
	SessionCookieSecure bool

	MediaBackend string
	MediaDir     string
	MediaURL     string
	AWSRegion    string
	AWSBucket    string
	AWSAccessKey string
	AWSSecretKey string

	CORSAllowedOrigins []string

	LogLevel  string
	LogFormat string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "blogicum"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBPath:     getEnv("DB_PATH", "blogicum.db"),
		DBLogLevel: getEnv("DB_LOG_LEVEL", "warn"),

		JWTSecret:           getEnv("JWT_SECRET", "default-secret"),
		JWTTTL:              getDuration("JWT_TTL", 24*time.Hour),
		SessionCookieSecure: getBool("SESSION_COOKIE_SECURE", false),

		MediaBackend: getEnv("MEDIA_BACKEND", "local"),
		MediaDir:     getEnv("MEDIA_DIR", "media"),
		MediaURL:     getEnv("MEDIA_URL", "/media"),
		AWSRegion:    getEnv("AWS_REGION", ""),
		AWSBucket:    getEnv("AWS_BUCKET_NAME", ""),
		AWSAccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),

		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

// DatabaseURL returns the DSN for the configured driver.
func (c *Config) DatabaseURL() string {
	switch c.DBDriver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	case "sqlite":
		return fmt.Sprintf("file:%s?_foreign_keys=on", c.DBPath)
	default:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultVal
	}
	return value
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultVal
	}
	return value
}

func getList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
