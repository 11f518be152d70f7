package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort string

	PostgresDSN string
	RedisAddr   string

	// FreshnessWindow is how long a cached batch is served before a new
	// fetch is triggered.
	FreshnessWindow time.Duration

	// RetentionDays bounds cache growth: rows older than this are purged
	// by the scheduled job.
	RetentionDays int
	PurgeCronSpec string

	// WebRoot, when set, serves the SPA frontend from that directory.
	WebRoot string
}

func Load() *Config {
	cfg := &Config{
		AppPort:         getEnv("APP_PORT", "9000"),
		PostgresDSN:     getEnv("POSTGRES_DSN", "host=localhost user=newsradar password=newsradar dbname=newsradar port=5432 sslmode=disable TimeZone=UTC"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		FreshnessWindow: time.Duration(getEnvInt("FRESH_WINDOW_MINUTES", 30)) * time.Minute,
		RetentionDays:   getEnvInt("RETENTION_DAYS", 7),
		PurgeCronSpec:   getEnv("PURGE_CRON_SPEC", "0 3 * * *"),
		WebRoot:         getEnv("WEB_ROOT", ""),
	}

	log.Printf("config loaded: port=%s window=%s retention=%dd", cfg.AppPort, cfg.FreshnessWindow, cfg.RetentionDays)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("warn: invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}
