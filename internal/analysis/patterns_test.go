// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tejzpr/moodlog-mcp/internal/journal"
)

func TestSlotOf(t *testing.T) {
	tests := []struct {
		hour int
		want Slot
	}{
		{0, SlotNight},
		{4, SlotNight},
		{5, SlotMorning},
		{11, SlotMorning},
		{12, SlotAfternoon},
		{16, SlotAfternoon},
		{17, SlotEvening},
		{21, SlotEvening},
		{22, SlotNight},
		{23, SlotNight},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SlotOf(tt.hour), "hour %d", tt.hour)
	}
}

func TestAnalyzeTimeOfDay_Empty(t *testing.T) {
	stats := AnalyzeTimeOfDay(nil)
	for _, slot := range Slots() {
		assert.Equal(t, Bucket{}, stats.Get(slot), slot.String())
	}
}

func TestAnalyzeTimeOfDay_MorningAverage(t *testing.T) {
	stats := AnalyzeTimeOfDay([]journal.Activity{
		at(15, 9, journal.CategoryWork, 4),
		at(15, 10, journal.CategoryWork, 2),
	})

	assert.Equal(t, Bucket{Count: 2, AvgSatisfaction: 3.00}, stats.Get(SlotMorning))
	assert.Equal(t, Bucket{}, stats.Get(SlotAfternoon))
	assert.Equal(t, Bucket{}, stats.Get(SlotEvening))
	assert.Equal(t, Bucket{}, stats.Get(SlotNight))
}

func TestAnalyzeTimeOfDay_RoundsToTwoDecimals(t *testing.T) {
	stats := AnalyzeTimeOfDay([]journal.Activity{
		at(15, 18, journal.CategoryLeisure, 5),
		at(15, 19, journal.CategoryLeisure, 4),
		at(15, 20, journal.CategorySocial, 4),
		at(15, 23, journal.CategoryOther, 0),
		at(16, 2, journal.CategoryOther, 3),
	})

	assert.Equal(t, Bucket{Count: 3, AvgSatisfaction: 4.33}, stats.Get(SlotEvening))
	assert.Equal(t, Bucket{Count: 2, AvgSatisfaction: 1.5}, stats.Get(SlotNight))
}

func TestAnalyzeDayOfWeek(t *testing.T) {
	stats := AnalyzeDayOfWeek([]journal.Activity{
		at(12, 9, journal.CategoryWork, 5),  // Sunday
		at(12, 20, journal.CategoryWork, 2), // Sunday
		at(13, 9, journal.CategoryWork, 3),  // Monday
		at(18, 9, journal.CategoryWork, 4),  // Saturday
	})

	assert.Equal(t, Bucket{Count: 2, AvgSatisfaction: 3.5}, stats.Get(time.Sunday))
	assert.Equal(t, Bucket{Count: 1, AvgSatisfaction: 3}, stats.Get(time.Monday))
	assert.Equal(t, Bucket{Count: 1, AvgSatisfaction: 4}, stats.Get(time.Saturday))
	for _, day := range []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday, time.Friday} {
		assert.Equal(t, Bucket{}, stats.Get(day), day.String())
	}
}

func TestAnalyzeDayOfWeek_Empty(t *testing.T) {
	stats := AnalyzeDayOfWeek([]journal.Activity{})
	assert.Len(t, stats, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		assert.Equal(t, 0, stats.Get(day).Count)
		assert.Equal(t, 0.0, stats.Get(day).AvgSatisfaction)
	}
}
