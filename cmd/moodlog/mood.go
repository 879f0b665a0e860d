// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tejzpr/moodlog-mcp/internal/analysis"
	"github.com/tejzpr/moodlog-mcp/internal/journal"
	"github.com/tejzpr/moodlog-mcp/internal/tools"
)

var (
	moodNote  string
	moodLimit int
)

func init() {
	rootCmd.AddCommand(moodCmd)
	moodCmd.AddCommand(moodAddCmd)
	moodCmd.AddCommand(moodListCmd)
	moodCmd.AddCommand(moodStatsCmd)

	moodAddCmd.Flags().StringVar(&moodNote, "note", "", "Free-text note")
	moodListCmd.Flags().IntVar(&moodLimit, "limit", 10, "Maximum number of entries to print")
}

var moodCmd = &cobra.Command{
	Use:   "mood",
	Short: "Log and review moods",
	Long: `Log and review moods on a five point scale:
Very Happy (5), Happy (4), Neutral (3), Sad (2), Very Sad (1).

Examples:
  moodlog mood add Happy --note "sunny walk"
  moodlog mood add 2
  moodlog mood list --limit 5
  moodlog mood stats`,
}

var moodAddCmd = &cobra.Command{
	Use:   "add <mood>",
	Short: "Record a mood by label or value",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Labels like "Very Happy" may arrive unquoted
		mood, err := journal.ParseMood(strings.Join(args, " "))
		if err != nil {
			return err
		}

		ctx := context.Background()
		a, err := newApp(ctx, seedFromConfig)
		if err != nil {
			return err
		}
		defer a.Close()

		entry, err := a.journal.AddMood(ctx, journal.MoodInput{Mood: mood, Note: moodNote})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tools.FormatMood(entry))
		return nil
	},
}

var moodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List mood entries, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(context.Background(), seedFromConfig)
		if err != nil {
			return err
		}
		defer a.Close()

		entries := a.journal.Moods()
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No mood entries yet.")
			return nil
		}
		if moodLimit > 0 && len(entries) > moodLimit {
			entries = entries[:moodLimit]
		}
		for _, e := range entries {
			fmt.Fprintln(cmd.OutOrStdout(), tools.FormatMood(e))
		}
		return nil
	},
}

var moodStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the average and most frequent mood",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(context.Background(), seedFromConfig)
		if err != nil {
			return err
		}
		defer a.Close()

		summary, ok := analysis.SummarizeMoods(a.journal.Moods())
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "No mood entries yet.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), tools.FormatMoodSummary(summary))
		return nil
	},
}
