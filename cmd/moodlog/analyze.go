// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tejzpr/moodlog-mcp/internal/analysis"
)

var (
	analyzeRange    string
	analyzeCategory string
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeRange, "range", "", "Time window: day, week or month (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeCategory, "category", "all", "Restrict to one category")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Print the satisfaction pattern report",
	Long: `Print a YAML report of satisfaction by time of day and weekday, the best
same-day category pairings, and categories logged several times in a row.

Examples:
  moodlog analyze
  moodlog analyze --range month --category Exercise`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, err := newApp(context.Background(), seedFromConfig)
	if err != nil {
		return err
	}
	defer a.Close()

	r := a.defaultRange
	if analyzeRange != "" {
		if r, err = analysis.ParseRange(analyzeRange); err != nil {
			return err
		}
	}
	category, err := analysis.ParseCategoryFilter(analyzeCategory)
	if err != nil {
		return err
	}

	report := analysis.Analyze(a.journal.Activities(), r, category, a.journal.Now())
	text, err := report.YAML()
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), text)
	return err
}
