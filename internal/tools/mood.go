// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/tejzpr/moodlog-mcp/internal/analysis"
	"github.com/tejzpr/moodlog-mcp/internal/journal"
	"go.uber.org/zap"
)

// NewLogMoodTool creates the moodlog_log_mood tool definition
func NewLogMoodTool() mcp.Tool {
	var labels []string
	for _, m := range journal.Moods() {
		labels = append(labels, m.Label())
	}

	return mcp.NewTool("moodlog_log_mood",
		mcp.WithDescription("Record how you feel right now on a five point scale."),
		mcp.WithString("mood",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("One of: %s. A number from 1 (Very Sad) to 5 (Very Happy) also works.", strings.Join(labels, ", "))),
		),
		mcp.WithString("note",
			mcp.Description("Optional free-text note"),
		),
	)
}

// LogMoodHandler handles the moodlog_log_mood tool
func LogMoodHandler(ctx *ToolContext) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(c context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := request.RequireString("mood")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		mood, err := journal.ParseMood(strings.TrimSpace(raw))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		entry, err := ctx.Journal.AddMood(c, journal.MoodInput{
			Mood: mood,
			Note: request.GetString("note", ""),
		})
		if err != nil {
			if isInputError(err) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			ctx.Logger.Error("failed to log mood", zap.Error(err))
			return mcp.NewToolResultError(fmt.Sprintf("failed to log mood: %v", err)), nil
		}

		return mcp.NewToolResultText("Logged mood: " + FormatMood(entry)), nil
	}
}

// NewMoodHistoryTool creates the moodlog_mood_history tool definition
func NewMoodHistoryTool() mcp.Tool {
	return mcp.NewTool("moodlog_mood_history",
		mcp.WithDescription("List recent mood entries, newest first, with the average and most frequent mood across all entries."),
		mcp.WithNumber("limit",
			mcp.Description("Max entries shown. Default: 10"),
		),
	)
}

// MoodHistoryHandler handles the moodlog_mood_history tool
func MoodHistoryHandler(ctx *ToolContext) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(c context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := int(request.GetFloat("limit", defaultMoodLimit))
		if limit < 1 {
			return mcp.NewToolResultError("limit must be at least 1"), nil
		}

		entries := ctx.Journal.Moods()
		summary, ok := analysis.SummarizeMoods(entries)
		if !ok {
			return mcp.NewToolResultText("No mood entries yet."), nil
		}

		var sb strings.Builder
		sb.WriteString(FormatMoodSummary(summary))
		sb.WriteString("\n\n")

		shown := entries
		if len(shown) > limit {
			shown = shown[:limit]
		}
		for _, e := range shown {
			sb.WriteString("- ")
			sb.WriteString(FormatMood(e))
			sb.WriteString("\n")
		}

		return mcp.NewToolResultText(sb.String()), nil
	}
}
