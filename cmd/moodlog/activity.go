// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tejzpr/moodlog-mcp/internal/analysis"
	"github.com/tejzpr/moodlog-mcp/internal/journal"
	"github.com/tejzpr/moodlog-mcp/internal/tools"
)

var (
	actTitle        string
	actCategory     string
	actDuration     string
	actDescription  string
	actSatisfaction int
	actLimit        int
	actRange        string
	actPerHour      int
)

func init() {
	rootCmd.AddCommand(activityCmd)
	activityCmd.AddCommand(activityAddCmd)
	activityCmd.AddCommand(activityDeleteCmd)
	activityCmd.AddCommand(activityListCmd)
	activityCmd.AddCommand(activityTimelineCmd)

	activityCmd.PersistentFlags().StringVar(&actCategory, "category", "", "Activity category")

	activityAddCmd.Flags().StringVar(&actTitle, "title", "", "Activity title (required)")
	activityAddCmd.Flags().StringVar(&actDuration, "duration", "", "Duration label, e.g. \"30 minutes\"")
	activityAddCmd.Flags().StringVar(&actDescription, "description", "", "Free-text note")
	activityAddCmd.Flags().IntVar(&actSatisfaction, "satisfaction", 0, "Rating from 1 to 5 (0 = unrated)")
	_ = activityAddCmd.MarkFlagRequired("title")

	activityListCmd.Flags().IntVar(&actLimit, "limit", 20, "Maximum number of activities to print")
	activityListCmd.Flags().StringVar(&actRange, "range", "", "Only the current day, week or month")

	activityTimelineCmd.Flags().StringVar(&actRange, "range", "", "Only the current day, week or month")
	activityTimelineCmd.Flags().IntVar(&actPerHour, "per-hour", 3, "Maximum titles shown per hour")
}

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Log and browse activities",
	Long: `Log and browse activities.

Categories: Work, Exercise, Study, Leisure, Social, Self-care, Other.

Examples:
  moodlog activity add --title "Morning Jog" --category Exercise --duration "30 minutes" --satisfaction 4
  moodlog activity list --category Work --limit 5
  moodlog activity timeline --range week
  moodlog activity delete 3f1c...`,
}

var activityAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log an activity stamped with the current time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		a, err := newApp(ctx, seedFromConfig)
		if err != nil {
			return err
		}
		defer a.Close()

		activity, err := a.journal.AddActivity(ctx, journal.ActivityInput{
			Title:        actTitle,
			Category:     actCategory,
			Duration:     actDuration,
			Description:  actDescription,
			Satisfaction: actSatisfaction,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tools.FormatActivity(activity))
		return nil
	},
}

var activityDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an activity by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		a, err := newApp(ctx, seedFromConfig)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.journal.DeleteActivity(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

var activityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List activities, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		activities, err := selectActivities()
		if err != nil {
			return err
		}
		if len(activities) > actLimit && actLimit > 0 {
			activities = activities[:actLimit]
		}
		if len(activities) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No activities found.")
			return nil
		}
		for _, activity := range activities {
			fmt.Fprintln(cmd.OutOrStdout(), tools.FormatActivity(activity))
		}
		return nil
	},
}

var activityTimelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show activities grouped by hour of day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		activities, err := selectActivities()
		if err != nil {
			return err
		}
		if len(activities) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No activities found.")
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), tools.FormatTimeline(activities, actPerHour))
		return nil
	},
}

func selectActivities() ([]journal.Activity, error) {
	a, err := newApp(context.Background(), seedFromConfig)
	if err != nil {
		return nil, err
	}
	defer a.Close()

	category, err := analysis.ParseCategoryFilter(actCategory)
	if err != nil {
		return nil, err
	}
	return tools.SelectActivities(a.journal.Activities(), actRange, category, a.journal.Now())
}
