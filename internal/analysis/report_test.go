// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejzpr/moodlog-mcp/internal/journal"
	"gopkg.in/yaml.v3"
)

func TestAnalyze(t *testing.T) {
	now := time.Date(2025, time.October, 15, 21, 0, 0, 0, time.UTC)
	activities := []journal.Activity{
		at(15, 18, journal.CategoryWork, 4),
		at(15, 12, journal.CategoryExercise, 3),
		at(15, 8, journal.CategoryWork, 5),
		at(14, 9, journal.CategoryWork, 2),
		at(3, 9, journal.CategoryStudy, 2),
	}

	report := Analyze(activities, RangeWeek, AllCategories, now)
	assert.Equal(t, RangeWeek, report.Range)
	assert.Equal(t, time.Date(2025, time.October, 12, 0, 0, 0, 0, time.UTC), report.WindowStart)
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 2, report.TimeOfDay.Get(SlotMorning).Count)
	assert.Equal(t, 3, report.DayOfWeek.Get(time.Wednesday).Count)
	require.Len(t, report.Combinations, 2)
	require.Len(t, report.Streaks, 1)
	assert.Equal(t, journal.CategoryWork, report.Streaks[0].Category)

	workOnly := Analyze(activities, RangeWeek, OnlyCategory(journal.CategoryWork), now)
	assert.Equal(t, 3, workOnly.Total)
	require.Len(t, workOnly.Combinations, 1)
	assert.Equal(t, "Work + Work", workOnly.Combinations[0].Combination)
	assert.Equal(t, 3, workOnly.Streaks[0].MaxStreak)
}

func TestAnalyze_Empty(t *testing.T) {
	report := Analyze(nil, RangeDay, AllCategories, time.Now())
	assert.Equal(t, 0, report.Total)
	assert.Empty(t, report.Combinations)
	assert.Empty(t, report.Streaks)
	for _, slot := range Slots() {
		assert.Equal(t, Bucket{}, report.TimeOfDay.Get(slot))
	}
}

func TestReport_YAML(t *testing.T) {
	now := time.Date(2025, time.October, 15, 21, 0, 0, 0, time.UTC)
	report := Analyze([]journal.Activity{
		at(15, 8, journal.CategoryWork, 5),
		at(15, 12, journal.CategoryExercise, 3),
		at(15, 18, journal.CategoryWork, 4),
	}, RangeDay, AllCategories, now)

	text, err := report.YAML()
	require.NoError(t, err)

	var decoded struct {
		Range     string `yaml:"range"`
		Category  string `yaml:"category"`
		TimeOfDay []struct {
			Name            string  `yaml:"name"`
			Count           int     `yaml:"count"`
			AvgSatisfaction float64 `yaml:"avg_satisfaction"`
		} `yaml:"time_of_day"`
		DayOfWeek []struct {
			Name string `yaml:"name"`
		} `yaml:"day_of_week"`
		Combinations []struct {
			Combination string `yaml:"combination"`
		} `yaml:"best_combinations"`
		Streaks []struct {
			Category  string `yaml:"category"`
			MaxStreak int    `yaml:"max_streak"`
		} `yaml:"streaks"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(text), &decoded))

	assert.Equal(t, "day", decoded.Range)
	assert.Equal(t, "all", decoded.Category)
	require.Len(t, decoded.TimeOfDay, 4)
	assert.Equal(t, "morning", decoded.TimeOfDay[0].Name)
	assert.Equal(t, 1, decoded.TimeOfDay[0].Count)
	require.Len(t, decoded.DayOfWeek, 7)
	assert.Equal(t, "Sunday", decoded.DayOfWeek[0].Name)
	assert.Equal(t, "Saturday", decoded.DayOfWeek[6].Name)
	require.Len(t, decoded.Combinations, 2)
	assert.Equal(t, "Work + Work", decoded.Combinations[0].Combination)
	assert.Empty(t, decoded.Streaks)
}
