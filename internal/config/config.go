package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/reserfast/reserfast-api/internal/constants"
	"github.com/reserfast/reserfast-api/internal/utils"
)

type Config struct {
	Port    string
	GinMode string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string

	SessionStore  string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	SessionSecret string
	SessionMaxAge int

	LogLevel  string
	LogFormat string
	Timezone  string

	UploadDir      string
	MediaURL       string
	MaxUploadBytes int64

	AllowOverbooking   bool
	LoginRatePerMinute int

	AdminUsername string
	AdminPassword string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		utils.Logger.WithError(err).Warn("failed to load .env file")
	}

	return &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		DBDriver:   getEnv("DB_DRIVER", "mysql"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "reserfast"),
		DBPassword: getEnv("DB_PASSWORD", "reserfast"),
		DBName:     getEnv("DB_NAME", "reserfast"),
		DBPath:     getEnv("DB_PATH", "reserfast.db"),

		SessionStore:  getEnv("SESSION_STORE", "redis"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		SessionMaxAge: ParseInt("SESSION_MAX_AGE", 3600),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		Timezone:  getEnv("TIMEZONE", "America/Santiago"),

		UploadDir:      getEnv("UPLOAD_DIR", "media"),
		MediaURL:       getEnv("MEDIA_URL", "/media"),
		MaxUploadBytes: int64(ParseInt("MAX_UPLOAD_BYTES", int(constants.DefaultMaxUploadBytes))),

		AllowOverbooking:   ParseBool("RESERVATION_ALLOW_OVERBOOKING", false),
		LoginRatePerMinute: ParseInt("LOGIN_RATE_PER_MINUTE", 10),

		AdminUsername: getEnv("ADMIN_USERNAME", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			utils.Logger.Warnf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}

// ParseInt reads an env var as int with default.
func ParseInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			utils.Logger.Warnf("invalid integer for %s: %s", key, v)
			return def
		}
		return n
	}
	return def
}
