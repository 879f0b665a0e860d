// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/tejzpr/moodlog-mcp/internal/analysis"
	"github.com/tejzpr/moodlog-mcp/internal/metrics"
	"go.uber.org/zap"
)

// NewAnalyzeTool creates the moodlog_analyze tool definition
func NewAnalyzeTool() mcp.Tool {
	return mcp.NewTool("moodlog_analyze",
		mcp.WithDescription(`Analyze satisfaction patterns over the current day, week or month.

Returns a YAML report with:
- time_of_day: count and average satisfaction for morning, afternoon, evening and night
- day_of_week: the same per weekday, Sunday first
- best_combinations: category pairs done on the same day, ranked by average satisfaction
- streaks: categories logged several times in a row`),
		mcp.WithString("range",
			mcp.Description("Time window. Default comes from configuration (usually 'week')"),
			mcp.Enum(rangeNames()...),
		),
		mcp.WithString("category",
			mcp.Description("Restrict to one category. Default: all"),
			mcp.Enum(append([]string{"all"}, categoryNames()...)...),
		),
	)
}

// AnalyzeHandler handles the moodlog_analyze tool
func AnalyzeHandler(ctx *ToolContext) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(c context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		r, category, err := parseWindow(ctx, request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		activities, revision := ctx.Journal.Snapshot()
		report, cached := ctx.Cache.Analyze(revision, activities, r, category, ctx.Journal.Now())
		metrics.RecordAnalysis(string(r), cached)

		text, err := report.YAML()
		if err != nil {
			ctx.Logger.Error("failed to render report", zap.Error(err))
			return mcp.NewToolResultError(fmt.Sprintf("failed to render report: %v", err)), nil
		}

		return mcp.NewToolResultText(text), nil
	}
}

// NewTimelineTool creates the moodlog_timeline tool definition
func NewTimelineTool() mcp.Tool {
	return mcp.NewTool("moodlog_timeline",
		mcp.WithDescription("Show activities grouped by hour of day (00:00 to 23:00) with a count and average satisfaction per hour."),
		mcp.WithString("range",
			mcp.Description("Time window. Default: all time"),
			mcp.Enum(rangeNames()...),
		),
		mcp.WithString("category",
			mcp.Description("Restrict to one category. Default: all"),
			mcp.Enum(append([]string{"all"}, categoryNames()...)...),
		),
		mcp.WithNumber("per_hour",
			mcp.Description("Max activity titles shown per hour. Default: 3"),
		),
	)
}

// TimelineHandler handles the moodlog_timeline tool
func TimelineHandler(ctx *ToolContext) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(c context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		category, err := analysis.ParseCategoryFilter(request.GetString("category", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		perHour := int(request.GetFloat("per_hour", defaultPerHour))
		if perHour < 0 {
			return mcp.NewToolResultError("per_hour must not be negative"), nil
		}

		activities, err := SelectActivities(ctx.Journal.Activities(), request.GetString("range", ""), category, ctx.Journal.Now())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if len(activities) == 0 {
			return mcp.NewToolResultText("No activities found."), nil
		}

		return mcp.NewToolResultText(FormatTimeline(activities, perHour)), nil
	}
}

func parseWindow(ctx *ToolContext, request mcp.CallToolRequest) (analysis.Range, analysis.CategoryFilter, error) {
	r := ctx.DefaultRange
	if name := request.GetString("range", ""); name != "" {
		parsed, err := analysis.ParseRange(name)
		if err != nil {
			return "", analysis.AllCategories, err
		}
		r = parsed
	}
	category, err := analysis.ParseCategoryFilter(request.GetString("category", ""))
	if err != nil {
		return "", analysis.AllCategories, err
	}
	return r, category, nil
}
