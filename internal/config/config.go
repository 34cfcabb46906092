package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Config holds runtime settings read from the environment.
type Config struct {
	LogLevel           string
	OutputDir          string
	NotionAPIKey       string
	NotionParentPageID string
}

// Load reads an optional .env file from the given paths (the working
// directory's .env when none are given) and then the environment. Variables
// already set in the environment take precedence over the file.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	return &Config{
		LogLevel:           getenv("LOG_LEVEL", "info"),
		OutputDir:          getenv("OUTPUT_DIR", "output"),
		NotionAPIKey:       os.Getenv("NOTION_API_KEY"),
		NotionParentPageID: os.Getenv("NOTION_PARENT_PAGE_ID"),
	}, nil
}

// Validate checks that the settings needed for the requested run are present.
func (c *Config) Validate(withNotion bool) error {
	if c.OutputDir == "" {
		return errors.New("output directory is not set")
	}
	if !withNotion {
		return nil
	}
	if c.NotionAPIKey == "" {
		return errors.New("NOTION_API_KEY is not set")
	}
	if c.NotionParentPageID == "" {
		return errors.New("NOTION_PARENT_PAGE_ID is not set")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
