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
)

func TestParseRange(t *testing.T) {
	for _, r := range Ranges() {
		parsed, err := ParseRange(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}

	parsed, err := ParseRange(" Week ")
	require.NoError(t, err)
	assert.Equal(t, RangeWeek, parsed)

	_, err = ParseRange("year")
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestRange_Start(t *testing.T) {
	// Wednesday
	now := time.Date(2025, time.October, 15, 14, 30, 45, 123, time.UTC)

	tests := []struct {
		name  string
		r     Range
		now   time.Time
		start time.Time
	}{
		{"day", RangeDay, now, time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC)},
		{"week", RangeWeek, now, time.Date(2025, time.October, 12, 0, 0, 0, 0, time.UTC)},
		{"month", RangeMonth, now, time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)},
		{
			name:  "week starting on sunday",
			r:     RangeWeek,
			now:   time.Date(2025, time.October, 12, 8, 0, 0, 0, time.UTC),
			start: time.Date(2025, time.October, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "week crossing a month boundary",
			r:     RangeWeek,
			now:   time.Date(2025, time.October, 2, 23, 0, 0, 0, time.UTC),
			start: time.Date(2025, time.September, 28, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.start, tt.r.Start(tt.now))
		})
	}
}

func TestRange_StartUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	// 2025-10-15 20:00 UTC is already the 16th in UTC+9
	now := time.Date(2025, time.October, 15, 20, 0, 0, 0, time.UTC).In(loc)

	start := RangeDay.Start(now)
	assert.Equal(t, time.Date(2025, time.October, 16, 0, 0, 0, 0, loc), start)
}

func TestParseCategoryFilter(t *testing.T) {
	f, err := ParseCategoryFilter("all")
	require.NoError(t, err)
	assert.Equal(t, AllCategories, f)
	assert.Equal(t, "all", f.String())

	f, err = ParseCategoryFilter("")
	require.NoError(t, err)
	assert.Equal(t, AllCategories, f)

	f, err = ParseCategoryFilter("Self-care")
	require.NoError(t, err)
	c, ok := f.Category()
	assert.True(t, ok)
	assert.Equal(t, journal.CategorySelfCare, c)
	assert.Equal(t, "Self-care", f.String())

	_, err = ParseCategoryFilter("Gardening")
	assert.ErrorIs(t, err, journal.ErrInvalidCategory)
}

func TestFilter(t *testing.T) {
	now := time.Date(2025, time.October, 15, 14, 30, 0, 0, time.UTC)
	activities := []journal.Activity{
		at(15, 9, journal.CategoryWork, 4),
		at(14, 9, journal.CategoryExercise, 5),
		at(12, 0, journal.CategoryWork, 3),
		at(11, 23, journal.CategoryWork, 2),
		at(1, 0, journal.CategoryStudy, 1),
	}
	september := activities[0]
	september.ID = "september"
	september.Timestamp = time.Date(2025, time.September, 30, 23, 59, 59, 0, time.UTC)
	activities = append(activities, september)

	ids := func(in []journal.Activity) []string {
		out := make([]string, 0, len(in))
		for _, a := range in {
			out = append(out, a.ID)
		}
		return out
	}

	day := Filter(activities, RangeDay, AllCategories, now)
	assert.Equal(t, ids(activities[:1]), ids(day))

	week := Filter(activities, RangeWeek, AllCategories, now)
	assert.Equal(t, ids(activities[:3]), ids(week))

	month := Filter(activities, RangeMonth, AllCategories, now)
	assert.Equal(t, ids(activities[:5]), ids(month))

	workThisWeek := Filter(activities, RangeWeek, OnlyCategory(journal.CategoryWork), now)
	assert.Equal(t, []string{activities[0].ID, activities[2].ID}, ids(workThisWeek))
}

func TestFilter_Idempotent(t *testing.T) {
	now := time.Date(2025, time.October, 15, 14, 30, 0, 0, time.UTC)
	activities := []journal.Activity{
		at(15, 9, journal.CategoryWork, 4),
		at(13, 9, journal.CategoryExercise, 5),
		at(13, 10, journal.CategoryWork, 3),
		at(2, 22, journal.CategoryWork, 2),
	}

	for _, r := range Ranges() {
		for _, f := range []CategoryFilter{AllCategories, OnlyCategory(journal.CategoryWork)} {
			once := Filter(activities, r, f, now)
			twice := Filter(once, r, f, now)
			assert.Equal(t, once, twice, "range=%s category=%s", r, f)
		}
	}
}

func TestFilter_Empty(t *testing.T) {
	out := Filter(nil, RangeMonth, AllCategories, time.Now())
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
