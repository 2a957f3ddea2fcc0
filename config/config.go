package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Placeholder secrets used when the environment leaves them unset. They are
// public, so release builds refuse to run with them.
const (
	DefaultJWTSecret     = "default-secret"
	DefaultSessionSecret = "default-session-secret"
)

var ErrDefaultSecret = errors.New("signing secret left at its default")

type Config struct {
	Port           string
	DBDriver       string
	SQLitePath     string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	JWTSecret      string
	JWTTTL         time.Duration
	SessionSecret  string
	CookieSecure   bool
	AdminUserID    uint
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string
	AllowedOrigins []string
	GinMode        string
}

// LoadEnvFile loads the first .env file found, or the explicit path when one is given.
func LoadEnvFile(path string) {
	candidates := []string{".env", "../.env"}
	if path != "" {
		candidates = []string{path}
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			logrus.WithError(err).WithField("path", p).Warn("Error loading env file")
			return
		}
		logrus.WithField("path", p).Info("Loaded env file")
		return
	}
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		SQLitePath:     getEnv("SQLITE_PATH", "posts.db"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", "blog"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		JWTSecret:      getEnv("JWT_SECRET", DefaultJWTSecret),
		JWTTTL:         getDuration("JWT_TTL", 24*time.Hour),
		SessionSecret:  getEnv("SESSION_SECRET", DefaultSessionSecret),
		CookieSecure:   getBool("COOKIE_SECURE", false),
		AdminUserID:    getUint("ADMIN_USER_ID", 1),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 10*time.Second),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		GinMode:        ginMode(getEnv("GIN_MODE", "release")),
	}
}

// Validate rejects the placeholder signing secrets in release mode and warns
// about them otherwise.
func (c *Config) Validate() error {
	var unset []string
	if c.JWTSecret == DefaultJWTSecret {
		unset = append(unset, "JWT_SECRET")
	}
	if c.SessionSecret == DefaultSessionSecret {
		unset = append(unset, "SESSION_SECRET")
	}
	if len(unset) == 0 {
		return nil
	}

	entry := logrus.WithField("keys", strings.Join(unset, ","))
	if c.GinMode == "release" {
		entry.Error("Refusing to start with default signing secrets")
		return fmt.Errorf("%w: %s", ErrDefaultSecret, strings.Join(unset, ", "))
	}
	entry.Warn("Using default signing secrets, tokens and cookies can be forged")
	return nil
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// SQLiteDSN enables foreign keys so comment rows cascade with their post.
func (c *Config) SQLiteDSN() string {
	const params = "_foreign_keys=on&_busy_timeout=5000"
	if strings.Contains(c.SQLitePath, "?") {
		return c.SQLitePath + "&" + params
	}
	return c.SQLitePath + "?" + params
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		logrus.WithFields(logrus.Fields{"key": key, "value": raw}).Warn("Invalid duration, using default")
		return defaultVal
	}
	return d
}

func getBool(key string, defaultVal bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "value": raw}).Warn("Invalid boolean, using default")
		return defaultVal
	}
	return b
}

func getUint(key string, defaultVal uint) uint {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		logrus.WithFields(logrus.Fields{"key": key, "value": raw}).Warn("Invalid id, using default")
		return defaultVal
	}
	return uint(n)
}

func ginMode(raw string) string {
	switch raw {
	case "debug", "release", "test":
		return raw
	}
	logrus.WithField("value", raw).Warn("Unknown GIN_MODE, using release")
	return "release"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
