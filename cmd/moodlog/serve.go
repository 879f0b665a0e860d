// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tejzpr/moodlog-mcp/internal/database"
	"github.com/tejzpr/moodlog-mcp/internal/server"
	"github.com/tejzpr/moodlog-mcp/internal/tools"
	"go.uber.org/zap"
)

var serveHTTP bool

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveHTTP, "http", false, "Serve MCP over HTTP with /metrics and /healthz (default: stdio)")
	rootCmd.RunE = runServe
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long: `Run the MCP server. This is also what moodlog does with no arguments.

In stdio mode (the default) stdout carries only JSON-RPC and all logging goes
to stderr. With --http the server listens on server.host:server.port and exposes:

  /mcp       streamable HTTP MCP transport
  /metrics   prometheus metrics
  /healthz   liveness and database reachability

Examples:
  # Editor or agent integration
  moodlog serve

  # HTTP on a custom port
  moodlog serve --http --port 9090`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, seedFromConfig)
	if err != nil {
		return err
	}
	defer a.Close()

	toolCtx := tools.NewToolContext(a.journal, a.logger, a.defaultRange)
	mcpServer := server.NewMCPServer(toolCtx, version())

	if !serveHTTP {
		a.logger.Info("MCP server ready (stdio mode)",
			zap.Int("tools", len(mcpServer.ToolNames())),
			zap.Int("activities", len(a.journal.Activities())))
		if err := mcpServer.ServeStdio(); err != nil {
			return fmt.Errorf("mcp server error: %w", err)
		}
		return nil
	}

	health := func(context.Context) error { return database.Ping(a.db) }
	httpServer, err := server.NewHTTPServer(mcpServer, health, a.logger, a.cfg.Server.Addr())
	if err != nil {
		return err
	}
	if err := httpServer.Run(ctx); err != nil {
		return err
	}
	a.logger.Info("server shutdown complete")
	return nil
}
