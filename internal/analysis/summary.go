// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package analysis

import (
	"math"

	"github.com/tejzpr/moodlog-mcp/internal/journal"
)

// HoursPerDay is the number of buckets in an hourly timeline
const HoursPerDay = 24

// HourlyTimeline places every activity in the bucket of its hour of day,
// keeping input order within each hour.
func HourlyTimeline(activities []journal.Activity) [HoursPerDay][]journal.Activity {
	var timeline [HoursPerDay][]journal.Activity
	for _, a := range activities {
		h := a.Timestamp.Hour()
		timeline[h] = append(timeline[h], a)
	}
	return timeline
}

// CategoriesPresent lists the distinct categories in activities, first-seen order
func CategoriesPresent(activities []journal.Activity) []journal.Category {
	seen := make(map[journal.Category]bool)
	var out []journal.Category
	for _, a := range activities {
		if seen[a.Category] {
			continue
		}
		seen[a.Category] = true
		out = append(out, a.Category)
	}
	return out
}

// MoodSummary describes a set of mood entries
type MoodSummary struct {
	Total        int          `json:"total" yaml:"total"`
	Average      float64      `json:"average" yaml:"average"`
	MostFrequent journal.Mood `json:"mostFrequent" yaml:"most_frequent"`
}

// SummarizeMoods computes the average (one decimal) and the most frequent mood.
// Ties go to the mood listed first on the scale (Very Happy first).
// It returns false when there are no entries.
func SummarizeMoods(entries []journal.MoodEntry) (MoodSummary, bool) {
	if len(entries) == 0 {
		return MoodSummary{}, false
	}

	counts := make(map[journal.Mood]int)
	total := 0
	for _, e := range entries {
		counts[e.Mood]++
		total += e.Mood.Value()
	}

	scale := journal.Moods()
	most := scale[0]
	for _, m := range scale[1:] {
		if counts[m] > counts[most] {
			most = m
		}
	}

	return MoodSummary{
		Total:        len(entries),
		Average:      math.Round(float64(total)/float64(len(entries))*10) / 10,
		MostFrequent: most,
	}, true
}
