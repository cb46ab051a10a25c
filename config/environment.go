package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type Environment struct {
	Port           int
	StoreDriver    string
	DataFile       string
	SeedFile       string
	DatabaseURL    string
	RedisURL       string
	RedisKey       string
	AllowedOrigins []string
	LogLevel       string
	LogFormat      string
	IsProduction   bool
}

// Load reads the environment. Call godotenv first if a .env file should be
// honoured.
func Load() Environment {
	return Environment{
		Port:        envInt("PORT", 8080),
		StoreDriver: strings.ToLower(envStr("SHEET_STORE_DRIVER", DriverFile)),
		DataFile:    envStr("SHEET_DATA_FILE", "./store/data.json"),
		// an explicitly empty SHEET_SEED_FILE disables seeding
		SeedFile:       envStrAllowEmpty("SHEET_SEED_FILE", "./scripts/sheet.json"),
		DatabaseURL:    envStr("DB_URL", "file:question-tracker.db"),
		RedisURL:       envStr("REDIS_URL", "redis://localhost:6379/0"),
		RedisKey:       envStr("SHEET_REDIS_KEY", "question-tracker:sheet"),
		AllowedOrigins: envList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
		LogLevel:       envStr("LOG_LEVEL", "info"),
		LogFormat:      envStr("LOG_FORMAT", "json"),
		IsProduction:   os.Getenv("RAILWAY_ENVIRONMENT_NAME") != "",
	}
}

// Validate checks values that have a fixed set of options.
func (e Environment) Validate() error {
	switch e.StoreDriver {
	case DriverFile, DriverSQLite, DriverPostgres, DriverRedis:
	default:
		return fmt.Errorf("SHEET_STORE_DRIVER must be one of file, sqlite, postgres, redis, got %q", e.StoreDriver)
	}
	if e.Port <= 0 || e.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", e.Port)
	}
	if e.StoreDriver == DriverFile && e.DataFile == "" {
		return fmt.Errorf("SHEET_DATA_FILE is required for the file driver")
	}
	return nil
}

// Addr is the listen address.
func (e Environment) Addr() string {
	return "0.0.0.0:" + strconv.Itoa(e.Port)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envStrAllowEmpty(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
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
