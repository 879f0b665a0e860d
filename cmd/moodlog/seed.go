// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var seedForce bool

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "Merge synthetic history even when the journal already has enough")
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill a thin journal with synthetic history",
	Long: `Generate synthetic activities for every day of the configured number of
years when the journal has too few records or too short a history. Existing
records are never replaced. Runs even when seed.enabled is false.

Examples:
  moodlog seed
  moodlog seed --force`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx, seedAlways)
	if err != nil {
		return err
	}
	defer a.Close()

	if seedForce {
		added, err := a.journal.Backfill(ctx)
		if err != nil {
			return fmt.Errorf("backfill failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %d synthetic activities\n", added)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Journal holds %d activities\n", len(a.journal.Activities()))
	return nil
}
