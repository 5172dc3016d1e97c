package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Config holds the settings shared by the server and the CLI
type Config struct {
	Port        string `json:"port"`
	DBType      string `json:"db_type"` // "json" or "postgres"
	DatabaseURL string `json:"database_url"`
	DBFile      string `json:"db_file"`
}

const defaultDatabaseURL = "host=localhost user=zombies password=zombies dbname=zombie_outbreak sslmode=disable"

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Port:        "8080",
		DBType:      "json",
		DatabaseURL: defaultDatabaseURL,
		DBFile:      "db.json",
	}
}

// Load builds a Config from the defaults, then the JSON file at path (skipped
// when path is empty), then the PORT, DB_TYPE, DATABASE_URL and DB_FILE
// environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	overrideFromEnv(&cfg.Port, "PORT")
	overrideFromEnv(&cfg.DBType, "DB_TYPE")
	overrideFromEnv(&cfg.DatabaseURL, "DATABASE_URL")
	overrideFromEnv(&cfg.DBFile, "DB_FILE")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the store type is known and has what it needs
func (c *Config) Validate() error {
	switch c.DBType {
	case "json":
		if c.DBFile == "" {
			return errors.New("db_file is required for the json store")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("database_url is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown db_type %q", c.DBType)
	}
	if c.Port == "" {
		return errors.New("port is required")
	}
	return nil
}

func overrideFromEnv(field *string, key string) {
	if v := os.Getenv(key); v != "" {
		*field = v
	}
}
