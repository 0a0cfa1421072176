package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DatabaseURL           string
	Neo4jURI              string
	Neo4jUser             string
	Neo4jPassword         string
	WorkerCount           int
	LogLevel              string
	Locale                string
	GameCatalog           string
	ExcludeGlobs          []string
	FingerprintDimensions int
}

// DefaultExcludes skips folders that never hold comparable definitions.
var DefaultExcludes = []string{
	".git/**",
	"*.md",
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	return &Config{
		DatabaseURL:           getEnv("DATABASE_URL", "postgres://localhost:5432/modscan?sslmode=disable"),
		Neo4jURI:              getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:             getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:         getEnv("NEO4J_PASSWORD", "password"),
		WorkerCount:           getEnvInt("WORKER_COUNT", 8),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		Locale:                getEnv("MODSCAN_LOCALE", "en"),
		GameCatalog:           getEnv("GAME_CATALOG", ""),
		ExcludeGlobs:          getEnvList("EXCLUDE_GLOBS", DefaultExcludes),
		FingerprintDimensions: getEnvInt("FINGERPRINT_DIMENSIONS", 64),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("Invalid integer, using default")
		return fallback
	}
	return n
}

// getEnvList splits a comma separated variable, dropping empty entries.
func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
