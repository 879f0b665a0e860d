// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package analysis

import (
	"slices"
	"sort"

	"github.com/tejzpr/moodlog-mcp/internal/journal"
)

// Streak summarises the runs of one category.
//
// A run is a maximal sequence of consecutive same-category activities in
// timestamp order; calendar gaps do not break it, another category does.
// Runs of length 1 are not streaks.
type Streak struct {
	Category        journal.Category `json:"category" yaml:"category"`
	MaxStreak       int              `json:"maxStreak" yaml:"max_streak"`
	AvgSatisfaction float64          `json:"avgSatisfaction" yaml:"avg_satisfaction"`
}

type run struct {
	category journal.Category
	length   int
	sum      float64
}

// AnalyzeStreaks finds same-category runs and reports, per category, the
// longest run and the mean of the per-run average satisfactions. Results are
// ordered by longest run, ties by the order categories first recorded a run.
func AnalyzeStreaks(activities []journal.Activity) []Streak {
	sorted := slices.Clone(activities)
	slices.SortStableFunc(sorted, func(a, b journal.Activity) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	type history struct {
		max      int
		averages []float64
	}
	byCategory := make(map[journal.Category]*history)
	var order []journal.Category

	record := func(r run) {
		if r.length <= 1 {
			return
		}
		h, ok := byCategory[r.category]
		if !ok {
			h = &history{}
			byCategory[r.category] = h
			order = append(order, r.category)
		}
		h.max = max(h.max, r.length)
		h.averages = append(h.averages, average(r.sum, r.length))
	}

	var current run
	for _, a := range sorted {
		if current.length > 0 && a.Category == current.category {
			current.length++
			current.sum += float64(a.Satisfaction)
			continue
		}
		record(current)
		current = run{category: a.Category, length: 1, sum: float64(a.Satisfaction)}
	}
	record(current)

	out := make([]Streak, 0, len(order))
	for _, c := range order {
		h := byCategory[c]
		var sum float64
		for _, avg := range h.averages {
			sum += avg
		}
		out = append(out, Streak{
			Category:        c,
			MaxStreak:       h.max,
			AvgSatisfaction: average(sum, len(h.averages)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MaxStreak > out[j].MaxStreak
	})
	return out
}
