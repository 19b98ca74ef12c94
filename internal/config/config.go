package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort     string
	DatabaseDSN  string // vacío => fallback a sqlite local
	SQLitePath   string
	CORSOrigins  string
	QueryTimeout time.Duration // tope por consulta contra la base
}

func Load() *Config {
	// .env es opcional, en producción las variables vienen del entorno
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:     getEnv("HTTP_PORT", "3000"),
		DatabaseDSN:  getEnv("DATABASE_DSN", ""),
		SQLitePath:   getEnv("SQLITE_PATH", "sqlfinance.db"),
		CORSOrigins:  getEnv("CORS_ALLOWED_ORIGINS", "*"),
		QueryTimeout: time.Duration(getEnvInt("QUERY_TIMEOUT_SECONDS", 10)) * time.Second,
	}

	if cfg.DatabaseDSN == "" {
		log.Println("[WARN] DATABASE_DSN no definido, usando sqlite local:", cfg.SQLitePath)
	}

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
		log.Printf("[WARN] %s inválido (%q), usando %d", key, v, def)
		return def
	}
	return n
}
