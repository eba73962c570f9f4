package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "DELIVERY"

// SourceFiles names the five tabular inputs, relative to DataPath unless
// absolute. Files ending in .xlsx are read as workbooks.
type SourceFiles struct {
	Orders       string `envconfig:"ORDERS_FILE" default:"orders.csv"`
	Drivers      string `envconfig:"DRIVERS_FILE" default:"drivers_data.csv"`
	Products     string `envconfig:"PRODUCTS_FILE" default:"products_data.csv"`
	Customers    string `envconfig:"CUSTOMERS_FILE" default:"customers_data.csv"`
	MissingItems string `envconfig:"MISSING_ITEMS_FILE" default:"missing_items_data.csv"`
}

// AppConfig holds the complete application configuration.
type AppConfig struct {
	SourceFiles

	DataPath            string `envconfig:"DATA_PATH"`
	Delimiter           string `envconfig:"DELIMITER" default:","`
	KMeansSeed          int64  `envconfig:"KMEANS_SEED" default:"42"`
	EnableMermaidCharts bool   `envconfig:"ENABLE_MERMAID_CHARTS" default:"false"`
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}

	// 3. Resolve Data Path
	if cfg.DataPath == "" {
		if exeDir != "" {
			cfg.DataPath = exeDir
		} else {
			cfg.DataPath = "."
		}
	}

	return cfg, nil
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() (*AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the parser cannot honour.
func (c *AppConfig) Validate() error {
	if len([]rune(c.Delimiter)) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	return nil
}

// DelimiterRune returns the configured field separator.
func (c *AppConfig) DelimiterRune() rune {
	return []rune(c.Delimiter)[0]
}

// SourcePath resolves a configured source file against DataPath.
func (c *AppConfig) SourcePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataPath, name)
}
