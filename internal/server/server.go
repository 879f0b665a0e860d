// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package server

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/tejzpr/moodlog-mcp/internal/tools"
)

// Name is the MCP server name reported to clients
const Name = "Moodlog"

// MCPServer wraps the mcp-go server with the journal tools
type MCPServer struct {
	mcpServer *server.MCPServer
	toolCtx   *tools.ToolContext
	toolNames []string
}

// NewMCPServer creates a new MCP server with every journal tool registered
func NewMCPServer(toolCtx *tools.ToolContext, version string) *MCPServer {
	if version == "" {
		version = "dev"
	}

	mcpServer := server.NewMCPServer(
		Name,
		version,
		server.WithToolCapabilities(true),
	)

	srv := &MCPServer{
		mcpServer: mcpServer,
		toolCtx:   toolCtx,
	}

	// Activities: log, delete, browse
	srv.addTool(tools.NewLogActivityTool(), tools.LogActivityHandler(toolCtx))
	srv.addTool(tools.NewDeleteActivityTool(), tools.DeleteActivityHandler(toolCtx))
	srv.addTool(tools.NewListActivitiesTool(), tools.ListActivitiesHandler(toolCtx))
	srv.addTool(tools.NewTimelineTool(), tools.TimelineHandler(toolCtx))

	// Pattern analysis over the current day, week or month
	srv.addTool(tools.NewAnalyzeTool(), tools.AnalyzeHandler(toolCtx))

	// Moods
	srv.addTool(tools.NewLogMoodTool(), tools.LogMoodHandler(toolCtx))
	srv.addTool(tools.NewMoodHistoryTool(), tools.MoodHistoryHandler(toolCtx))

	return srv
}

func (s *MCPServer) addTool(tool mcp.Tool, handler server.ToolHandlerFunc) {
	s.mcpServer.AddTool(tool, handler)
	s.toolNames = append(s.toolNames, tool.Name)
}

// ToolNames returns the registered tool names in registration order
func (s *MCPServer) ToolNames() []string {
	return append([]string(nil), s.toolNames...)
}

// GetMCPServer returns the underlying MCP server
func (s *MCPServer) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves MCP over stdin/stdout until the client disconnects
func (s *MCPServer) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
