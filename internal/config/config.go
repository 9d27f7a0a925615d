package config

import (
	"context"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds application configuration from environment.
type Config struct {
	HTTPPort      string
	StoreBackend  string // memory, sqlite or postgres
	SQLitePath    string
	DatabaseURL   string
	DBPoolSize    int
	RedisURL      string // empty disables the list cache
	RedisPoolSize int
	CacheTTL      int      // seconds
	KafkaBrokers  []string // empty disables the change feed
	KafkaTopic    string
	JWTSecret     string // empty disables auth on write routes
}

var (
	cfg     *Config
	cfgOnce sync.Once
)

// Get returns the application config (loads once from env).
func Get() *Config {
	cfgOnce.Do(func() {
		cfg = &Config{
			HTTPPort:      getEnv("HTTP_PORT", "8080"),
			StoreBackend:  getEnv("STORE_BACKEND", "sqlite"),
			SQLitePath:    getEnv("SQLITE_PATH", "todos.db"),
			DatabaseURL:   os.Getenv("DATABASE_URL"),
			DBPoolSize:    getIntEnv("DB_POOL_SIZE", 100),
			RedisURL:      os.Getenv("REDIS_URL"),
			RedisPoolSize: getIntEnv("REDIS_POOL_SIZE", 100),
			CacheTTL:      getIntEnv("CACHE_TTL_SEC", 300),
			KafkaBrokers:  getSliceEnv("KAFKA_BROKERS"),
			KafkaTopic:    getEnv("KAFKA_TODO_TOPIC", "todo-changes"),
			JWTSecret:     os.Getenv("JWT_SECRET"),
		}
	})
	return cfg
}

// GetJWTSecret returns JWT secret from config (for middleware that only has context).
func GetJWTSecret(ctx context.Context) string {
	return Get().JWTSecret
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func getSliceEnv(key string) []string {
	var out []string
	for _, s := range strings.Split(os.Getenv(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
