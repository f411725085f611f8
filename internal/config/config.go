package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is read once at startup and handed to each collaborator's
// constructor. Nothing reads the environment after Load returns.
type Config struct {
	Env  string
	Port int

	DBURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	AccessTTL time.Duration

	// one-time email codes (verification / password reset)
	CodeTTL time.Duration

	AdminEmail    string
	AdminPassword string
	AdminName     string

	WeatherAPIKey   string
	WeatherBaseURL  string
	WeatherCacheTTL time.Duration

	ImageStoreURL string

	AllowedOrigins []string
	MaxBodyBytes   int64

	// weather proxy quota, per client per minute
	WeatherRateLimit int

	OtelEndpoint string
}

func Load() Config {
	env := getEnv("APP_ENV", "dev")
	port := getEnvInt("PORT", 8080)

	return Config{
		Env:   env,
		Port:  port,
		DBURL: buildDBURL(),

		RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),
		AccessTTL: getEnvDuration("JWT_ACCESS_TTL", 15*time.Minute),
		CodeTTL:   getEnvDuration("EMAIL_CODE_TTL", 10*time.Minute),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AdminName:     getEnv("ADMIN_NAME", "Administrator"),

		WeatherAPIKey:   getEnv("WEATHER_API_KEY", ""),
		WeatherBaseURL:  getEnv("WEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		WeatherCacheTTL: getEnvDuration("WEATHER_CACHE_TTL", 5*time.Minute),

		ImageStoreURL: getEnv("IMAGE_STORE_URL", ""),

		AllowedOrigins: []string{getEnv("CORS_ORIGIN", "http://localhost:3000")},
		MaxBodyBytes:   int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),

		WeatherRateLimit: getEnvInt("WEATHER_RATE_LIMIT", 30),

		OtelEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

func buildDBURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "traveltrack")
	pass := getEnv("DB_PASSWORD", "traveltrack")
	name := getEnv("DB_NAME", "traveltrack")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return d
	}
	return fallback
}
