package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// dotEnvPathVar overrides the default .env location.
const dotEnvPathVar = "RPNCALC_DOTENV"

// loadDotEnv loads environment variables from .env, or from the file named by
// RPNCALC_DOTENV, when present. Existing process environment variables are
// not overridden.
func loadDotEnv() error {
	path := os.Getenv(dotEnvPathVar)
	if path == "" {
		path = ".env"
	}

	err := godotenv.Load(path)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load %s: %w", path, err)
}
