// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Command moodlog is a local-first activity and mood journal served over MCP.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags (e.g. -X main.Version=1.2.0).
var Version string

var (
	configPath string
	dbType     string
	dbPath     string
	dbDSN      string
	timezone   string
	logLevel   string
	port       int
)

var rootCmd = &cobra.Command{
	Use:   "moodlog",
	Short: "Activity and mood journal with pattern analysis",
	Long: `moodlog records what you do and how you feel, and finds the times of day,
weekdays and activity pairings that leave you most satisfied.

It runs as an MCP server over stdio (the default for editors and agents) or
over HTTP, and offers the same operations directly from the command line.

Configuration is read from ~/.moodlog/configs/config.json. Environment
variables (MOODLOG_DB_TYPE, MOODLOG_DB_PATH, MOODLOG_DB_DSN, MOODLOG_PORT,
MOODLOG_TIMEZONE, MOODLOG_LOG_LEVEL) override the file, and flags override both.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&dbType, "db-type", "", "Database type (sqlite or postgres)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db-path", "", "Database path (for sqlite)")
	rootCmd.PersistentFlags().StringVar(&dbDSN, "db-dsn", "", "Database DSN (for postgres)")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "", "IANA timezone used for days, weeks and hours")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().IntVar(&port, "port", 0, "Server port (HTTP mode only)")
}

func main() {
	rootCmd.Version = version()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func version() string {
	if Version == "" {
		return "dev"
	}
	return Version
}
