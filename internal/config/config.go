// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the habit tracking server.
type Config struct {
	// DataDir is where the SQLite database lives.
	DataDir string

	// AuthToken is the bearer token the hosting platform pairs with.
	AuthToken string

	// OwnerNumber is the phone number returned by the validate tool.
	OwnerNumber string

	// WindowDays is the trailing window for analytics completion rates.
	WindowDays int

	// MaxNoteLength caps completion note length in characters.
	MaxNoteLength int
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first if present; real environment variables
// win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:       getEnv("HABITFLOW_DATA_DIR", defaultDataDir()),
		AuthToken:     os.Getenv("HABITFLOW_TOKEN"),
		OwnerNumber:   os.Getenv("HABITFLOW_OWNER_NUMBER"),
		WindowDays:    getEnvInt("HABITFLOW_WINDOW_DAYS", 7),
		MaxNoteLength: getEnvInt("HABITFLOW_MAX_NOTE_LENGTH", 500),
	}

	return cfg, cfg.Validate()
}

// Validate checks configuration bounds.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("HABITFLOW_DATA_DIR must not be empty")
	}
	if c.WindowDays < 1 || c.WindowDays > 365 {
		return fmt.Errorf("HABITFLOW_WINDOW_DAYS must be 1-365, got %d", c.WindowDays)
	}
	if c.MaxNoteLength < 1 {
		return fmt.Errorf("HABITFLOW_MAX_NOTE_LENGTH must be positive, got %d", c.MaxNoteLength)
	}
	return nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".habitflow"
	}
	return filepath.Join(home, ".habitflow")
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
