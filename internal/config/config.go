package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ProjectID         string
	Region            string
	FirestoreDatabase string
	LogLevel          string
	Port              string
	DefaultCurrency   string
}

// New reads the API configuration from the environment. A .env file in the working
// directory is loaded first when present; variables already set are not overridden.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	return &Config{
		ProjectID:         os.Getenv("PROJECTID"),
		Region:            os.Getenv("REGION"),
		FirestoreDatabase: os.Getenv("FIRESTOREDATABASE"),
		LogLevel:          os.Getenv("LOGLEVEL"),
		Port:              getEnvOr("PORT", "8080"),
		DefaultCurrency:   getEnvOr("DEFAULTCURRENCY", "USD"),
	}, nil
}

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
