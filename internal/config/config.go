// Package config loads service settings from the environment. Missing or
// malformed values are collected and reported together.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
)

type Config struct {
	Port         string
	JWTSecret    string
	JWTTTL       time.Duration
	StoreBackend string
	MongoURI     string
	DBName       string
	ResendAPIKey string
	FromEmail    string
	SeedDemo     bool
	CORSOrigins  []string
}

// Load reads the process environment. Call godotenv.Load first if a .env
// file should be honoured.
func Load() (*Config, error) {
	var errs []string

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		JWTSecret:    getRequiredEnv("JWT_SECRET", &errs),
		JWTTTL:       getDurationEnv("JWT_TTL", 30*24*time.Hour, &errs),
		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
		MongoURI:     getEnv("MONGODB_URI", ""),
		DBName:       getEnv("DB_NAME", "trustledger"),
		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "Trust Ledger <noreply@example.com>"),
		SeedDemo:     getBoolEnv("SEED_DEMO", false, &errs),
		CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "*")),
	}

	switch cfg.StoreBackend {
	case BackendMemory:
	case BackendMongo:
		if cfg.MongoURI == "" {
			errs = append(errs, "MONGODB_URI is required when STORE_BACKEND=mongo")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid STORE_BACKEND %q (want memory or mongo)", cfg.StoreBackend))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getRequiredEnv(key string, errs *[]string) string {
	value := os.Getenv(key)
	if value == "" {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
	}
	return value
}

func getDurationEnv(key string, fallback time.Duration, errs *[]string) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		*errs = append(*errs, fmt.Sprintf("invalid duration for %s: %q", key, raw))
		return fallback
	}
	return d
}

func getBoolEnv(key string, fallback bool, errs *[]string) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid boolean for %s: %q", key, raw))
		return fallback
	}
	return b
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
