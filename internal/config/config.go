package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	CatalogPath  string
	DatabaseURL  string
	RedisURL     string
	LLMAPIKey    string
	LLMBaseURL   string
	LLMModel     string
	Port         string
	MetricsPort  string
	ClosingDelay int // seconds between a recommendation and its closing pitch
}

func Load() *Config {
	// .env from the project root, then the current directory.
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load()
	return &Config{
		CatalogPath:  getEnv("CATALOG_PATH", "data/products.csv"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		LLMAPIKey:    os.Getenv("LLM_API_KEY"),
		LLMBaseURL:   getEnv("LLM_BASE_URL", "https://open.bigmodel.cn/api/paas/v4"),
		LLMModel:     getEnv("LLM_MODEL", "glm-4-0520"),
		Port:         getEnv("PORT", "8080"),
		MetricsPort:  getEnv("METRICS_PORT", "9090"),
		ClosingDelay: getEnvInt("CLOSING_DELAY_SECONDS", 10),
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getEnvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}
