package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	SurrealURL  string
	SurrealNS   string
	SurrealDB   string
	SurrealUser string
	SurrealPass string
	JWTSecret   string
	JWTTTL      time.Duration
	BcryptCost  int
	CORSOrigin  string
}

// Load reads the configuration from the process environment once at startup.
// A .env file in the working directory is applied first when present.
// Missing required values abort startup.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:        getenv("API_ADDR", ":8080"),
		SurrealURL:  os.Getenv("SURREAL_URL"),
		SurrealNS:   getenv("SURREAL_NAMESPACE", "prep"),
		SurrealDB:   getenv("SURREAL_DATABASE", "prep"),
		SurrealUser: getenv("SURREAL_USER", "root"),
		SurrealPass: getenv("SURREAL_PASS", "root"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTTTL:      time.Duration(getenvInt("JWT_TTL_SECONDS", 604800)) * time.Second,
		BcryptCost:  getenvInt("BCRYPT_COST", 8),
		CORSOrigin:  getenv("CORS_ALLOW_ORIGIN", "*"),
	}

	if cfg.SurrealURL == "" {
		return Config{}, fmt.Errorf("SURREAL_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
