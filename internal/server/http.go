// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/tejzpr/moodlog-mcp/internal/metrics"
	"go.uber.org/zap"
)

// ShutdownTimeout bounds graceful shutdown of the HTTP listener
const ShutdownTimeout = 10 * time.Second

// HealthCheck reports whether a backing dependency is reachable
type HealthCheck func(ctx context.Context) error

// HealthResponse is the response body for GET /healthz
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Revision uint64 `json:"revision"`
}

// HTTPServer exposes the MCP server over streamable HTTP next to /metrics and /healthz
type HTTPServer struct {
	echo   *echo.Echo
	mcp    *MCPServer
	health HealthCheck
	logger *zap.Logger
	addr   string
}

// NewHTTPServer creates the HTTP surface for mcp
func NewHTTPServer(mcp *MCPServer, health HealthCheck, logger *zap.Logger, addr string) (*HTTPServer, error) {
	if mcp == nil {
		return nil, fmt.Errorf("mcp server cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			logger.Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
			return err
		}
	})

	s := &HTTPServer{
		echo:   e,
		mcp:    mcp,
		health: health,
		logger: logger,
		addr:   addr,
	}
	s.registerRoutes()

	return s, nil
}

func (s *HTTPServer) registerRoutes() {
	streamable := mcpserver.NewStreamableHTTPServer(s.mcp.GetMCPServer())
	s.echo.Any("/mcp", echo.WrapHandler(streamable))
	s.echo.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	s.echo.GET("/healthz", s.handleHealth)
}

func (s *HTTPServer) handleHealth(c echo.Context) error {
	resp := HealthResponse{Status: "ok", Database: "ok"}
	if s.mcp.toolCtx != nil && s.mcp.toolCtx.Journal != nil {
		j := s.mcp.toolCtx.Journal
		resp.Revision = j.Revision()
	}

	if s.health != nil {
		if err := s.health(c.Request().Context()); err != nil {
			s.logger.Warn("health check failed", zap.Error(err))
			resp.Status = "degraded"
			resp.Database = err.Error()
			return c.JSON(http.StatusServiceUnavailable, resp)
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// ServeHTTP implements http.Handler
func (s *HTTPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *HTTPServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting http server", zap.String("addr", s.addr))
		errCh <- s.echo.Start(s.addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
