// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// DefaultConfigDir is the default configuration directory
	DefaultConfigDir = ".moodlog/configs"
	// DefaultConfigFile is the default configuration filename
	DefaultConfigFile = "config.json"
	// DefaultDBPath is the sqlite path relative to the home directory
	DefaultDBPath = ".moodlog/db/moodlog.db"
)

// envBindings maps config keys to the environment variables that override them
var envBindings = map[string]string{
	"database.type":         "MOODLOG_DB_TYPE",
	"database.sqlite_path":  "MOODLOG_DB_PATH",
	"database.postgres_dsn": "MOODLOG_DB_DSN",
	"server.port":           "MOODLOG_PORT",
	"journal.timezone":      "MOODLOG_TIMEZONE",
	"logging.level":         "MOODLOG_LOG_LEVEL",
}

// Load reads configuration from ~/.moodlog/configs/config.json
func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(homeDir, DefaultConfigDir))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults
	}

	return unmarshal(v)
}

// LoadFromPath loads configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		// BindEnv only fails when given no key
		_ = v.BindEnv(key, env)
	}
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	// Server defaults
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)

	// Database defaults
	v.SetDefault("database.type", d.Database.Type)
	v.SetDefault("database.sqlite_path", d.Database.SQLitePath)
	v.SetDefault("database.postgres_dsn", "")

	// Journal defaults
	v.SetDefault("journal.timezone", d.Journal.Timezone)
	v.SetDefault("journal.default_range", d.Journal.DefaultRange)

	// Seed defaults
	v.SetDefault("seed.enabled", d.Seed.Enabled)
	v.SetDefault("seed.years", d.Seed.Years)
	v.SetDefault("seed.min_records", d.Seed.MinRecords)
	v.SetDefault("seed.min_history_days", d.Seed.MinHistoryDays)
	v.SetDefault("seed.random_seed", d.Seed.RandomSeed)

	// Logging defaults
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	// Validate database type
	if !isValidType(cfg.Database.Type, DatabaseTypes) {
		return fmt.Errorf("database.type must be 'sqlite' or 'postgres', got '%s'", cfg.Database.Type)
	}

	// Validate database connection info
	if cfg.Database.Type == "sqlite" && cfg.Database.SQLitePath == "" {
		return fmt.Errorf("database.sqlite_path is required when type is 'sqlite'")
	}
	if cfg.Database.Type == "postgres" && cfg.Database.PostgresDSN == "" {
		return fmt.Errorf("database.postgres_dsn is required when type is 'postgres'")
	}

	// Validate server port
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	if _, err := cfg.Journal.Location(); err != nil {
		return fmt.Errorf("journal.timezone: %w", err)
	}
	if !isValidType(cfg.Journal.DefaultRange, Ranges) {
		return fmt.Errorf("journal.default_range must be one of %v, got '%s'", Ranges, cfg.Journal.DefaultRange)
	}

	if cfg.Seed.Years < 1 {
		return fmt.Errorf("seed.years must be at least 1, got %d", cfg.Seed.Years)
	}
	if cfg.Seed.MinRecords < 0 {
		return fmt.Errorf("seed.min_records must not be negative, got %d", cfg.Seed.MinRecords)
	}
	if cfg.Seed.MinHistoryDays < 0 {
		return fmt.Errorf("seed.min_history_days must not be negative, got %d", cfg.Seed.MinHistoryDays)
	}

	if !isValidType(cfg.Logging.Level, LogLevels) {
		return fmt.Errorf("logging.level must be one of %v, got '%s'", LogLevels, cfg.Logging.Level)
	}
	if !isValidType(cfg.Logging.Format, LogFormats) {
		return fmt.Errorf("logging.format must be 'console' or 'json', got '%s'", cfg.Logging.Format)
	}

	return nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get user home directory: %w", err)
	}

	configPath := filepath.Join(homeDir, DefaultConfigDir)
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Database: DatabaseConfig{
			Type:       "sqlite",
			SQLitePath: filepath.Join(homeDir, DefaultDBPath),
		},
		Journal: JournalConfig{
			Timezone:     "Local",
			DefaultRange: "week",
		},
		Seed: SeedConfig{
			Enabled:        true,
			Years:          2,
			MinRecords:     100,
			MinHistoryDays: 365,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks cfg after overrides were applied on top of a loaded file
func (c *Config) Validate() error {
	return validate(c)
}
