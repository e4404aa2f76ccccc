package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"getloanoffer/logger"
)

// Lead store backends.
const (
	LeadStoreMemory   = "memory"
	LeadStoreFile     = "file"
	LeadStorePostgres = "postgres"
)

type Config struct {
	Port      string
	StaticDir string
	LogLevel  string

	// Redis is optional; an empty address selects the in-process cache.
	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	LeadStore   string
	LeadsJSON   string
	LeadsCSV    string
	DatabaseURL string

	SheetWebhookURL string
	WebhookTimeout  time.Duration

	RateLimit       int
	RateLimitWindow time.Duration

	CurrencySymbol string
	NumberGrouping string
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() *Config {
	return &Config{
		Port:            getenvOrDefault("PORT", "5000"),
		StaticDir:       getenvOrDefault("STATIC_DIR", "public"),
		LogLevel:        getenvOrDefault("LOG_LEVEL", "INFO"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		CacheTTL:        getenvDuration("CACHE_TTL", 10*time.Minute),
		LeadStore:       strings.ToLower(getenvOrDefault("LEAD_STORE", LeadStoreFile)),
		LeadsJSON:       getenvOrDefault("LEADS_JSON", "leads.json"),
		LeadsCSV:        getenvOrDefault("LEADS_CSV", "leads.csv"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		SheetWebhookURL: os.Getenv("SHEET_WEBHOOK_URL"),
		WebhookTimeout:  getenvDuration("WEBHOOK_TIMEOUT", 10*time.Second),
		RateLimit:       getenvInt("RATE_LIMIT", 5),
		RateLimitWindow: getenvDuration("RATE_LIMIT_WINDOW", time.Minute),
		CurrencySymbol:  getenvOrDefault("CURRENCY_SYMBOL", "₹"),
		NumberGrouping:  strings.ToLower(getenvOrDefault("NUMBER_GROUPING", "indian")),
	}
}

func getenvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		logger.Warn("invalid integer in environment, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		logger.Warn("invalid duration in environment, using default", "key", key, "value", v, "default", def.String())
		return def
	}
	return d
}
