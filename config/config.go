package config

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string
	Port       string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	JWTSecret  string
	// Front-desk operator login. Auth is off unless both the hash and
	// JWT_SECRET are set.
	DeskUsername     string
	DeskPasswordHash string
	TokenTTL         time.Duration
}

var (
	cfg  *Config
	once sync.Once
)

// LoadConfig reads .env (if present) once and returns the shared config.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: .env file not found. Relying on environment variables.")
		}
		cfg = FromEnv()
	})
	return cfg
}

// FromEnv builds a Config from the current environment without touching
// the .env file.
func FromEnv() *Config {
	return &Config{
		AppEnv:           getenv("APP_ENV", "development"),
		Port:             getenv("PORT", "8080"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBHost:           os.Getenv("DB_HOST"),
		DBPort:           getenv("DB_PORT", "3306"),
		DBName:           os.Getenv("DB_NAME"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		DeskUsername:     getenv("DESK_USERNAME", "frontdesk"),
		DeskPasswordHash: os.Getenv("DESK_PASSWORD_HASH"),
		TokenTTL:         parseDuration(os.Getenv("TOKEN_TTL"), 8*time.Hour),
	}
}

func (c *Config) IsDev() bool {
	return c.AppEnv == "development"
}

// LedgerEnabled reports whether a MariaDB visit ledger is configured.
func (c *Config) LedgerEnabled() bool {
	return c.DBHost != "" && c.DBName != ""
}

func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != "" && c.DeskPasswordHash != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid TOKEN_TTL %q, using %s", s, fallback)
		return fallback
	}
	return d
}
