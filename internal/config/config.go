package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	Env            string
	Port           string
	MongoURI       string
	DBName         string
	JWTSecret      string
	AccessTokenTTL time.Duration

	TelegramBotToken      string
	TelegramAPIURL        string
	TelegramWebhookSecret string

	ShopName string
	Currency string
	Timezone string

	CORSOrigins        []string
	RateLimitPerMinute int
	RateLimitBurst     int

	AdminEmail        string
	AdminPassword     string
	AdminLogRetention time.Duration
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = FromEnv()
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() Config {
	return Config{
		Env:            getEnvOrDefault("APP_ENV", "development"),
		Port:           getEnvOrDefault("PORT", "8080"),
		MongoURI:       getEnvOrDefault("MONGO_URI", ""),
		DBName:         getEnvOrDefault("DB_NAME", "cafe"),
		JWTSecret:      getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL: getDurationEnv("ACCESS_TOKEN_TTL", 60, time.Minute),

		TelegramBotToken:      getEnvOrDefault("TELEGRAM_BOT_TOKEN", ""),
		TelegramAPIURL:        getEnvOrDefault("TELEGRAM_API_URL", "https://api.telegram.org"),
		TelegramWebhookSecret: getEnvOrDefault("TELEGRAM_WEBHOOK_SECRET", ""),

		ShopName: getEnvOrDefault("SHOP_NAME", "Refresh Cafe"),
		Currency: getEnvOrDefault("CURRENCY", "د.ل"),
		Timezone: getEnvOrDefault("TIMEZONE", "Africa/Tripoli"),

		CORSOrigins:        getListEnv("CORS_ORIGINS", []string{"http://localhost:5173"}),
		RateLimitPerMinute: getIntEnv("RATE_LIMIT_PER_MINUTE", 20),
		RateLimitBurst:     getIntEnv("RATE_LIMIT_BURST", 5),

		AdminEmail:        strings.ToLower(getEnvOrDefault("ADMIN_EMAIL", "")),
		AdminPassword:     getEnvOrDefault("ADMIN_PASSWORD", ""),
		AdminLogRetention: getDurationEnv("ADMIN_LOG_RETENTION", 30, 24*time.Hour),
	}
}

// Location resolves Timezone, falling back to UTC for unknown zone names.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("unknown TIMEZONE %q, using UTC: %v", c.Timezone, err)
		return time.UTC
	}
	return loc
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue)) * unit
}

func getListEnv(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
