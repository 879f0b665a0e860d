// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"
	"time"
	_ "time/tzdata" // journal.timezone must resolve on hosts without zoneinfo
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Journal  JournalConfig  `mapstructure:"journal"`
	Seed     SeedConfig     `mapstructure:"seed"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns host:port for the HTTP listener
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Type        string `mapstructure:"type"` // "sqlite" or "postgres"
	SQLitePath  string `mapstructure:"sqlite_path"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
}

// JournalConfig controls how records are presented and analyzed
type JournalConfig struct {
	Timezone     string `mapstructure:"timezone"`      // IANA name or "Local"
	DefaultRange string `mapstructure:"default_range"` // day, week or month
}

// Location resolves the configured timezone
func (j JournalConfig) Location() (*time.Location, error) {
	if j.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(j.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", j.Timezone, err)
	}
	return loc, nil
}

// SeedConfig controls synthetic history for thin journals
type SeedConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Years          int    `mapstructure:"years"`
	MinRecords     int    `mapstructure:"min_records"`
	MinHistoryDays int    `mapstructure:"min_history_days"`
	RandomSeed     uint64 `mapstructure:"random_seed"` // 0 seeds from the clock
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// Valid values for enumerated settings
var (
	DatabaseTypes = []string{"sqlite", "postgres"}
	Ranges        = []string{"day", "week", "month"}
	LogLevels     = []string{"debug", "info", "warn", "error"}
	LogFormats    = []string{"console", "json"}
)

// isValidType is a generic helper to check if a type is in a list of valid types
func isValidType(aType string, validTypes []string) bool {
	for _, valid := range validTypes {
		if aType == valid {
			return true
		}
	}
	return false
}
