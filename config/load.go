package config

import (
	"log/slog"
	"os"
	"strconv"
)

func Load() App {
	cfg := App{
		Port:              getenv("APP_PORT", "8080"),
		DatabasePath:      getenv("DATABASE_PATH", "bookstore.db"),
		JWTSecret:         getenv("JWT_SECRET", "local_dev_secret"),
		AdminUsername:     getenv("ADMIN_USERNAME", "library"),
		AdminPassword:     getenv("ADMIN_PASSWORD", "1234"),
		LowStockThreshold: getenvInt("LOW_STOCK_THRESHOLD", 5),
		Env:               getenv("APP_ENV", "dev"),
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int64) int64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		slog.Warn("invalid int env, using default", "key", k, "value", v)
		return def
	}
	return n
}
