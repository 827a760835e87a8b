// Package config reads the service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverBadger   = "badger"
)

type Config struct {
	Port string `validate:"required,numeric"`

	StorageDriver string `validate:"required,oneof=memory file redis postgres badger"`
	DataDir       string `validate:"required_if=StorageDriver file"`
	BadgerPath    string `validate:"required_if=StorageDriver badger"`

	DBHost     string `validate:"required_if=StorageDriver postgres"`
	DBPort     string `validate:"required_if=StorageDriver postgres"`
	DBUser     string `validate:"required_if=StorageDriver postgres"`
	DBPassword string
	DBName     string `validate:"required_if=StorageDriver postgres"`

	RedisHost     string `validate:"required_if=StorageDriver redis"`
	RedisPort     string
	RedisPassword string
	RedisDB       int `validate:"gte=0,lte=15"`

	// JWTSecret empty means single-owner mode: no login, one fixed user.
	JWTSecret string `validate:"omitempty,min=16"`
	JWTIssuer string `validate:"required"`
	TokenTTL  time.Duration `validate:"gt=0"`

	// RateLimit of 0 disables the limiter.
	RateLimit  int           `validate:"gte=0"`
	RateWindow time.Duration `validate:"gt=0"`
}

var validate = validator.New()

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: read env file: %w", err)
		}
		log.Println("No .env file found, using the process environment")
	}

	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		StorageDriver: getEnv("STORAGE_DRIVER", DriverFile),
		DataDir:       getEnv("DATA_DIR", "./data"),
		BadgerPath:    getEnv("BADGER_PATH", "./data/badger"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTIssuer:     getEnv("JWT_ISSUER", "kanso-history"),
	}

	var err error
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = getInt("RATE_LIMIT", 100); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RateWindow, err = getDuration("RATE_WINDOW", time.Minute); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// SingleOwner reports whether the API runs without authentication.
func (c *Config) SingleOwner() bool {
	return c.JWTSecret == ""
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be a duration like 15m: %w", key, err)
	}
	return d, nil
}
