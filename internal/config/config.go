package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

var ErrMissingJWTSecret = errors.New("config: JWT_SECRET must be set")

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	StorageDriver      string
	HTTPPort           string
	LogLevel           logrus.Level
	CORSAllowedOrigins []string

	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// PostgresDSN builds the lib/pq connection string for the configured database.
func (c *Config) PostgresDSN() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}

// ProcessDatabaseVariables reads only the Postgres connection settings. It
// backs tools such as the migration runner that never issue tokens.
func ProcessDatabaseVariables() (*Config, error) {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("godotenv.Load: %w", err)
	}

	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:    "localhost",
		PostgresPort:       "5433",
		PostgresDB:         "postgres",
		PostgresUsername:   "postgres",
		PostgresPassword:   "testpassword",
		StorageDriver:      StorageDriverPostgres,
		HTTPPort:           "9446",
		LogLevel:           logrus.InfoLevel,
		CORSAllowedOrigins: []string{"*"},
		TokenTTL:           30 * time.Minute,
		BcryptCost:         bcrypt.DefaultCost,
	}

	envPostgresAddress := os.Getenv("POSTGRES_ADDRESS")
	envPostgresPort := os.Getenv("POSTGRES_PORT")
	envPostgresDB := os.Getenv("POSTGRES_DB")
	envPostgresUsername := os.Getenv("POSTGRES_USERNAME")
	envPostgresPassword := os.Getenv("POSTGRES_PASSWORD")

	if len(envPostgresAddress) != 0 {
		env.PostgresAddress = envPostgresAddress
	}

	if len(envPostgresPort) != 0 {
		env.PostgresPort = envPostgresPort
	}

	if len(envPostgresDB) != 0 {
		env.PostgresDB = envPostgresDB
	}

	if len(envPostgresUsername) != 0 {
		env.PostgresUsername = envPostgresUsername
	}

	if len(envPostgresPassword) != 0 {
		env.PostgresPassword = envPostgresPassword
	}

	return &env, nil
}

// ProcessEnvironmentVariables reads the full server configuration.
func ProcessEnvironmentVariables() (*Config, error) {
	env, err := ProcessDatabaseVariables()
	if err != nil {
		return nil, err
	}

	envStorageDriver := os.Getenv("STORAGE_DRIVER")
	envHTTPPort := os.Getenv("HTTP_PORT")
	envLogLevel := os.Getenv("LOG_LEVEL")
	envJWTSecret := os.Getenv("JWT_SECRET")
	envTokenTTL := os.Getenv("TOKEN_TTL")
	envBcryptCost := os.Getenv("BCRYPT_COST")
	envCORSAllowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")

	if len(envStorageDriver) != 0 {
		switch envStorageDriver {
		case StorageDriverPostgres, StorageDriverMemory:
			env.StorageDriver = envStorageDriver
		default:
			return nil, fmt.Errorf("config: unknown STORAGE_DRIVER %q", envStorageDriver)
		}
	}

	if len(envHTTPPort) != 0 {
		env.HTTPPort = envHTTPPort
	}

	if len(envLogLevel) != 0 {
		level, err := logrus.ParseLevel(envLogLevel)
		if err != nil {
			return nil, fmt.Errorf("config: LOG_LEVEL: %w", err)
		}
		env.LogLevel = level
	}

	if len(envTokenTTL) != 0 {
		ttl, err := time.ParseDuration(envTokenTTL)
		if err != nil {
			return nil, fmt.Errorf("config: TOKEN_TTL: %w", err)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("config: TOKEN_TTL must be positive, got %s", ttl)
		}
		env.TokenTTL = ttl
	}

	if len(envBcryptCost) != 0 {
		cost, err := strconv.Atoi(envBcryptCost)
		if err != nil {
			return nil, fmt.Errorf("config: BCRYPT_COST: %w", err)
		}
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, fmt.Errorf("config: BCRYPT_COST must be in [%d, %d], got %d", bcrypt.MinCost, bcrypt.MaxCost, cost)
		}
		env.BcryptCost = cost
	}

	if len(envCORSAllowedOrigins) != 0 {
		env.CORSAllowedOrigins = splitList(envCORSAllowedOrigins)
	}

	// JWT_SECRET has no default.
	if len(envJWTSecret) == 0 {
		return nil, ErrMissingJWTSecret
	}
	env.JWTSecret = envJWTSecret

	return env, nil
}

// splitList splits a comma separated value, dropping blank entries.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
