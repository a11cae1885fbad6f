package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimezone string

	// RedisAddr is optional; empty disables the statistics cache.
	RedisAddr string

	LogLevel string
	LogFile  string
}

func Load() (*Config, error) {
	// loads .env in dev
	_ = godotenv.Load(".env")

	cfg := &Config{
		ServerAddr: getenv("SERVER_ADDR", ":8080"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),
		DBTimezone: getenv("DB_TIMEZONE", "Asia/Jakarta"),
		RedisAddr:  os.Getenv("REDIS_ADDR"),
		LogLevel:   getenv("LOG_LEVEL", "info"),
		LogFile:    os.Getenv("LOG_FILE"),
	}

	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBUser == "" || cfg.DBName == "" {
		return nil, fmt.Errorf("DB environment variables not configured")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
