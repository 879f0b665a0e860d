// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package analysis

import (
	"fmt"
	"time"

	"github.com/tejzpr/moodlog-mcp/internal/journal"
	"gopkg.in/yaml.v3"
)

// Report is the combined output of the filter stage and all four analyzers.
// Reports may be shared through Cache; treat them as read-only.
type Report struct {
	Range        Range
	Category     CategoryFilter
	WindowStart  time.Time
	Total        int
	TimeOfDay    TimeOfDayStats
	DayOfWeek    DayOfWeekStats
	Combinations []Combination
	Streaks      []Streak
}

// Analyze filters activities to the window and category, then runs every analyzer
func Analyze(activities []journal.Activity, r Range, category CategoryFilter, now time.Time) Report {
	filtered := Filter(activities, r, category, now)
	return Report{
		Range:        r,
		Category:     category,
		WindowStart:  r.Start(now),
		Total:        len(filtered),
		TimeOfDay:    AnalyzeTimeOfDay(filtered),
		DayOfWeek:    AnalyzeDayOfWeek(filtered),
		Combinations: AnalyzeCombinations(filtered),
		Streaks:      AnalyzeStreaks(filtered),
	}
}

type namedBucket struct {
	Name   string `yaml:"name"`
	Bucket `yaml:",inline"`
}

type reportView struct {
	Range        string        `yaml:"range"`
	Category     string        `yaml:"category"`
	WindowStart  string        `yaml:"window_start"`
	Activities   int           `yaml:"activities"`
	TimeOfDay    []namedBucket `yaml:"time_of_day"`
	DayOfWeek    []namedBucket `yaml:"day_of_week"`
	Combinations []Combination `yaml:"best_combinations"`
	Streaks      []Streak      `yaml:"streaks"`
}

// YAML renders the report for display
func (r Report) YAML() (string, error) {
	view := reportView{
		Range:        string(r.Range),
		Category:     r.Category.String(),
		WindowStart:  r.WindowStart.Format(time.RFC3339),
		Activities:   r.Total,
		TimeOfDay:    make([]namedBucket, 0, len(r.TimeOfDay)),
		DayOfWeek:    make([]namedBucket, 0, len(r.DayOfWeek)),
		Combinations: r.Combinations,
		Streaks:      r.Streaks,
	}
	for _, slot := range Slots() {
		view.TimeOfDay = append(view.TimeOfDay, namedBucket{Name: slot.String(), Bucket: r.TimeOfDay.Get(slot)})
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		view.DayOfWeek = append(view.DayOfWeek, namedBucket{Name: day.String(), Bucket: r.DayOfWeek.Get(day)})
	}

	out, err := yaml.Marshal(view)
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return string(out), nil
}
