// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package analysis derives satisfaction statistics and temporal patterns
// from a journal's activity history. Every function here is pure: calendar
// fields (hour, weekday, date) are read from each timestamp in its own
// location, so callers convert timestamps to the user's zone beforehand.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tejzpr/moodlog-mcp/internal/journal"
)

// ErrInvalidRange is returned by ParseRange for unknown window names
var ErrInvalidRange = errors.New("invalid time range")

// Range selects the analysis window
type Range string

const (
	RangeDay   Range = "day"
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
)

// Ranges returns every supported window
func Ranges() []Range {
	return []Range{RangeDay, RangeWeek, RangeMonth}
}

// ParseRange validates a window name
func ParseRange(s string) (Range, error) {
	r := Range(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RangeDay, RangeWeek, RangeMonth:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q (want day, week or month)", ErrInvalidRange, s)
}

// Start returns the first instant of the window containing now, in now's location.
// Weeks begin on Sunday.
func (r Range) Start(now time.Time) time.Time {
	y, m, d := now.Date()
	loc := now.Location()
	switch r {
	case RangeDay:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	case RangeWeek:
		return time.Date(y, m, d-int(now.Weekday()), 0, 0, 0, 0, loc)
	case RangeMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	default:
		return now
	}
}

// CategoryFilter narrows analysis to a single category, or matches all of them
type CategoryFilter struct {
	only     bool
	category journal.Category
}

// AllCategories matches every activity
var AllCategories = CategoryFilter{}

// OnlyCategory matches activities of exactly c
func OnlyCategory(c journal.Category) CategoryFilter {
	return CategoryFilter{only: true, category: c}
}

// ParseCategoryFilter accepts "all" (or empty) or a category name
func ParseCategoryFilter(s string) (CategoryFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return AllCategories, nil
	}
	c, err := journal.ParseCategory(s)
	if err != nil {
		return CategoryFilter{}, err
	}
	return OnlyCategory(c), nil
}

// Matches reports whether c passes the filter
func (f CategoryFilter) Matches(c journal.Category) bool {
	return !f.only || f.category == c
}

// Category returns the selected category and whether one is selected
func (f CategoryFilter) Category() (journal.Category, bool) {
	return f.category, f.only
}

func (f CategoryFilter) String() string {
	if !f.only {
		return "all"
	}
	return f.category.String()
}

// Filter returns the activities at or after the window start that match the
// category filter, in input order.
func Filter(activities []journal.Activity, r Range, category CategoryFilter, now time.Time) []journal.Activity {
	start := r.Start(now)
	out := make([]journal.Activity, 0, len(activities))
	for _, a := range activities {
		if a.Timestamp.Before(start) {
			continue
		}
		if !category.Matches(a.Category) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// round2 rounds to two decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// average returns sum/count rounded to two decimals, or 0 for an empty group
func average(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return round2(sum / float64(count))
}
