package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr    string
	BaseURL string

	// DatabaseDSN selects Postgres when set; otherwise SQLitePath is used.
	DatabaseDSN string
	SQLitePath  string

	CodeLength    int
	CustomCodeMin int
	CustomCodeMax int

	CacheTTL        time.Duration
	RateLimitPerDay int
}

func Load() Config {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "shortr.db"
	}

	return Config{
		Addr:            addr,
		BaseURL:         baseURL,
		DatabaseDSN:     os.Getenv("DATABASE_DSN"),
		SQLitePath:      sqlitePath,
		CodeLength:      8,
		CustomCodeMin:   6,
		CustomCodeMax:   16,
		CacheTTL:        envDuration("CACHE_TTL_SECONDS", time.Hour),
		RateLimitPerDay: envInt("RATE_LIMIT_PER_DAY", 100),
	}
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	sec, err := strconv.Atoi(v)
	if err != nil || sec <= 0 {
		return def
	}
	return time.Duration(sec) * time.Second
}
