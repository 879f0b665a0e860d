// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/tejzpr/moodlog-mcp/internal/analysis"
	"github.com/tejzpr/moodlog-mcp/internal/journal"
	"github.com/tejzpr/moodlog-mcp/internal/records"
	"go.uber.org/zap"
)

// NewLogActivityTool creates the moodlog_log_activity tool definition
func NewLogActivityTool() mcp.Tool {
	var durations []string
	for _, d := range journal.Durations() {
		durations = append(durations, string(d))
	}

	return mcp.NewTool("moodlog_log_activity",
		mcp.WithDescription("Log something you just did, with how satisfying it was. The activity is stamped with the current time."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Short name of the activity. Example: 'Morning Jog'"),
		),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("Kind of activity"),
			mcp.Enum(categoryNames()...),
		),
		mcp.WithString("duration",
			mcp.Description("How long it took (optional)"),
			mcp.Enum(durations...),
		),
		mcp.WithString("description",
			mcp.Description("Optional free-text note"),
		),
		mcp.WithNumber("satisfaction",
			mcp.Description("Rating from 1 to 5 stars. 0 or omitted means unrated."),
		),
	)
}

// LogActivityHandler handles the moodlog_log_activity tool
func LogActivityHandler(ctx *ToolContext) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(c context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := request.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		category, err := request.RequireString("category")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		satisfaction := request.GetFloat("satisfaction", 0)
		if satisfaction != float64(int(satisfaction)) {
			return mcp.NewToolResultError(fmt.Sprintf("satisfaction must be a whole number, got %v", satisfaction)), nil
		}

		activity, err := ctx.Journal.AddActivity(c, journal.ActivityInput{
			Title:        title,
			Category:     category,
			Duration:     request.GetString("duration", ""),
			Description:  request.GetString("description", ""),
			Satisfaction: int(satisfaction),
		})
		if err != nil {
			if isInputError(err) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			ctx.Logger.Error("failed to log activity", zap.Error(err))
			return mcp.NewToolResultError(fmt.Sprintf("failed to log activity: %v", err)), nil
		}

		return mcp.NewToolResultText("Logged activity: " + FormatActivity(activity)), nil
	}
}

// NewDeleteActivityTool creates the moodlog_delete_activity tool definition
func NewDeleteActivityTool() mcp.Tool {
	return mcp.NewTool("moodlog_delete_activity",
		mcp.WithDescription("Permanently delete a logged activity by id. Ids are shown by moodlog_list_activities."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Id of the activity to delete"),
		),
	)
}

// DeleteActivityHandler handles the moodlog_delete_activity tool
func DeleteActivityHandler(ctx *ToolContext) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(c context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := ctx.Journal.DeleteActivity(c, strings.TrimSpace(id)); err != nil {
			if errors.Is(err, records.ErrActivityNotFound) {
				return mcp.NewToolResultError(fmt.Sprintf("activity not found: %s", id)), nil
			}
			ctx.Logger.Error("failed to delete activity", zap.String("id", id), zap.Error(err))
			return mcp.NewToolResultError(fmt.Sprintf("failed to delete activity: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Activity '%s' deleted", id)), nil
	}
}

// NewListActivitiesTool creates the moodlog_list_activities tool definition
func NewListActivitiesTool() mcp.Tool {
	return mcp.NewTool("moodlog_list_activities",
		mcp.WithDescription("List logged activities, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Max results. Default: 20"),
		),
		mcp.WithString("category",
			mcp.Description("Only show this category. Default: all"),
			mcp.Enum(append([]string{"all"}, categoryNames()...)...),
		),
		mcp.WithString("range",
			mcp.Description("Only show activities from the current day, week or month. Default: all time"),
			mcp.Enum(rangeNames()...),
		),
	)
}

// ListActivitiesHandler handles the moodlog_list_activities tool
func ListActivitiesHandler(ctx *ToolContext) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(c context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := int(request.GetFloat("limit", defaultActivityLimit))
		if limit < 1 {
			return mcp.NewToolResultError("limit must be at least 1"), nil
		}
		category, err := analysis.ParseCategoryFilter(request.GetString("category", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		all := ctx.Journal.Activities()
		present := analysis.CategoriesPresent(all)

		activities, err := SelectActivities(all, request.GetString("range", ""), category, ctx.Journal.Now())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if len(activities) == 0 {
			return mcp.NewToolResultText("No activities found."), nil
		}

		total := len(activities)
		if len(activities) > limit {
			activities = activities[:limit]
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Showing %d of %d activities\n", len(activities), total)
		for _, a := range activities {
			sb.WriteString("- ")
			sb.WriteString(FormatActivity(a))
			sb.WriteString("\n")
		}
		if len(present) > 0 {
			names := make([]string, 0, len(present))
			for _, cat := range present {
				names = append(names, cat.String())
			}
			fmt.Fprintf(&sb, "\nCategories in journal: %s\n", strings.Join(names, ", "))
		}

		return mcp.NewToolResultText(sb.String()), nil
	}
}

// SelectActivities narrows activities to category and, when rangeName is
// set, to the current day, week or month. An empty rangeName means all time.
func SelectActivities(activities []journal.Activity, rangeName string, category analysis.CategoryFilter, now time.Time) ([]journal.Activity, error) {
	if rangeName != "" {
		r, err := analysis.ParseRange(rangeName)
		if err != nil {
			return nil, err
		}
		return analysis.Filter(activities, r, category, now), nil
	}

	out := make([]journal.Activity, 0, len(activities))
	for _, a := range activities {
		if category.Matches(a.Category) {
			out = append(out, a)
		}
	}
	return out, nil
}

// isInputError reports whether err is a validation failure rather than a storage failure
func isInputError(err error) bool {
	for _, target := range []error{
		journal.ErrTitleRequired,
		journal.ErrInvalidCategory,
		journal.ErrInvalidDuration,
		journal.ErrInvalidSatisfaction,
		journal.ErrInvalidMood,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
