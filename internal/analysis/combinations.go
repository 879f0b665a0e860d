// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package analysis

import (
	"sort"
	"time"

	"github.com/tejzpr/moodlog-mcp/internal/journal"
)

// MaxCombinations is how many combinations AnalyzeCombinations keeps
const MaxCombinations = 5

// CombinationSeparator joins the two category names of a combination key
const CombinationSeparator = " + "

// Combination is a pair of categories logged on the same calendar day
type Combination struct {
	Combination     string  `json:"combination" yaml:"combination"`
	Count           int     `json:"count" yaml:"count"`
	AvgSatisfaction float64 `json:"avgSatisfaction" yaml:"avg_satisfaction"`
}

// CombinationKey names an unordered category pair, e.g. "Exercise + Work"
func CombinationKey(a, b journal.Category) string {
	x, y := a.String(), b.String()
	if y < x {
		x, y = y, x
	}
	return x + CombinationSeparator + y
}

type civilDate struct {
	year  int
	month time.Month
	day   int
}

func dateOf(t time.Time) civilDate {
	y, m, d := t.Date()
	return civilDate{year: y, month: m, day: d}
}

// groupByDate buckets activities by calendar date, keeping first-seen date
// order and input order within each date.
func groupByDate(activities []journal.Activity) [][]journal.Activity {
	index := make(map[civilDate]int)
	var groups [][]journal.Activity
	for _, a := range activities {
		key := dateOf(a.Timestamp)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], a)
	}
	return groups
}

// DailyPairs returns C(k,2) for a day holding k activities
func DailyPairs(k int) int {
	if k < 2 {
		return 0
	}
	return k * (k - 1) / 2
}

// AnalyzeCombinations pairs every two activities logged on the same day and
// ranks the resulting category pairs by mean pair satisfaction, best first.
// Only the top MaxCombinations are returned; ties keep first-seen order.
func AnalyzeCombinations(activities []journal.Activity) []Combination {
	type pairTotals struct {
		count int
		sum   float64
	}

	totals := make(map[string]*pairTotals)
	var order []string

	for _, day := range groupByDate(activities) {
		if len(day) < 2 {
			continue
		}
		for i := 0; i < len(day); i++ {
			for j := i + 1; j < len(day); j++ {
				key := CombinationKey(day[i].Category, day[j].Category)
				t, ok := totals[key]
				if !ok {
					t = &pairTotals{}
					totals[key] = t
					order = append(order, key)
				}
				t.count++
				t.sum += float64(day[i].Satisfaction+day[j].Satisfaction) / 2
			}
		}
	}

	out := make([]Combination, 0, len(order))
	for _, key := range order {
		t := totals[key]
		out = append(out, Combination{
			Combination:     key,
			Count:           t.count,
			AvgSatisfaction: average(t.sum, t.count),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AvgSatisfaction > out[j].AvgSatisfaction
	})
	if len(out) > MaxCombinations {
		out = out[:MaxCombinations]
	}
	return out
}
