// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package seed generates plausible synthetic activity history so that pattern
// analysis has data to work with on a fresh journal.
package seed

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/tejzpr/moodlog-mcp/internal/journal"
)

// Defaults for Options
const (
	DefaultYears          = 2
	DefaultMinRecords     = 100
	DefaultMinHistoryDays = 365
)

// Options configures a Generator. Zero values take the defaults.
type Options struct {
	Years          int
	MinRecords     int
	MinHistoryDays int
	// RandomSeed makes output reproducible; 0 seeds from the clock
	RandomSeed uint64
	Location   *time.Location
	Catalog    *Catalog
}

// Generator produces synthetic activities and decides when they are needed
type Generator struct {
	rng            *rand.Rand
	years          int
	minRecords     int
	minHistoryDays int
	location       *time.Location
	catalog        *Catalog
}

var categoryModifiers = map[journal.Category]float64{
	journal.CategorySelfCare: 0.5,
	journal.CategorySocial:   0.4,
	journal.CategoryExercise: 0.3,
	journal.CategoryLeisure:  0.2,
	journal.CategoryStudy:    -0.1,
	journal.CategoryWork:     -0.2,
}

// seedNamespace scopes the name-based ids of generated activities
var seedNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("moodlog:seed"))

// NewGenerator creates a generator from opts
func NewGenerator(opts Options) (*Generator, error) {
	if opts.Catalog == nil {
		c, err := DefaultCatalog()
		if err != nil {
			return nil, err
		}
		opts.Catalog = c
	}
	if opts.Years <= 0 {
		opts.Years = DefaultYears
	}
	if opts.MinRecords <= 0 {
		opts.MinRecords = DefaultMinRecords
	}
	if opts.MinHistoryDays <= 0 {
		opts.MinHistoryDays = DefaultMinHistoryDays
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	seed := opts.RandomSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &Generator{
		rng:            rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		years:          opts.Years,
		minRecords:     opts.MinRecords,
		minHistoryDays: opts.MinHistoryDays,
		location:       opts.Location,
		catalog:        opts.Catalog,
	}, nil
}

// NeedsBackfill reports whether activities are too few or too recent to analyze
func (g *Generator) NeedsBackfill(activities []journal.Activity, now time.Time) bool {
	if len(activities) < g.minRecords {
		return true
	}
	oldest := activities[0].Timestamp
	for _, a := range activities[1:] {
		if a.Timestamp.Before(oldest) {
			oldest = a.Timestamp
		}
	}
	return oldest.After(now.AddDate(0, 0, -g.minHistoryDays))
}

// Generate returns synthetic history for every day from years ago through
// today, newest first. Nothing is generated after now.
func (g *Generator) Generate(now time.Time) []journal.Activity {
	now = now.In(g.location)
	first := now.AddDate(-g.years, 0, 0)
	day := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, g.location)

	var out []journal.Activity
	for ; !day.After(now); day = day.AddDate(0, 0, 1) {
		count := 2 + g.rng.IntN(4)
		hours := g.rng.Perm(24)[:count]
		for _, hour := range hours {
			minute := g.rng.IntN(60)
			ts := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, g.location)
			if ts.After(now) {
				continue
			}
			a := g.activity(ts)
			a.ID = syntheticID(day, hour, minute)
			out = append(out, a)
		}
	}

	slices.SortStableFunc(out, func(a, b journal.Activity) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}

// syntheticID names a generated activity by its drawn wall-clock slot.
// Two slots can share an instant on a DST spring-forward day.
func syntheticID(day time.Time, hour, minute int) string {
	name := fmt.Sprintf("%s %02d:%02d", day.Format(time.DateOnly), hour, minute)
	return uuid.NewSHA1(seedNamespace, []byte(name)).String()
}

func (g *Generator) activity(ts time.Time) journal.Activity {
	categories := journal.Categories()
	category := categories[g.rng.IntN(len(categories))]
	durations := journal.Durations()

	return journal.Activity{
		Title:        pick(g.rng, g.catalog.Titles[category.String()]),
		Category:     category,
		Duration:     durations[g.rng.IntN(len(durations))],
		Description:  g.description(),
		Satisfaction: g.satisfaction(category, ts.Hour()),
		Timestamp:    ts,
	}
}

func (g *Generator) description() string {
	roll := g.rng.Float64()
	switch {
	case roll > 0.7:
		return pick(g.rng, g.catalog.Descriptions.Positive)
	case roll > 0.3:
		return pick(g.rng, g.catalog.Descriptions.Neutral)
	default:
		return pick(g.rng, g.catalog.Descriptions.Negative)
	}
}

func (g *Generator) satisfaction(category journal.Category, hour int) int {
	base := 3 + g.rng.Float64()*2
	return Satisfaction(base, category, hour)
}

// Satisfaction applies the category and hour-of-day adjustments to a base
// score in [3,5) and rounds the result into 1..5.
func Satisfaction(base float64, category journal.Category, hour int) int {
	var timeModifier float64
	switch {
	case hour >= 9 && hour <= 11:
		timeModifier = 0.3
	case hour >= 14 && hour <= 16:
		timeModifier = -0.2
	case hour >= 20 || hour <= 5:
		timeModifier = -0.4
	}

	score := base + categoryModifiers[category] + timeModifier
	score = math.Max(1, math.Min(journal.MaxSatisfaction, score))
	return int(math.Round(score))
}

// Merge combines existing records with generated ones, newest first.
// When ids collide the existing record is kept.
func Merge(existing, generated []journal.Activity) []journal.Activity {
	seen := make(map[string]bool, len(existing))
	out := make([]journal.Activity, 0, len(existing)+len(generated))
	for _, a := range existing {
		seen[a.ID] = true
		out = append(out, a)
	}
	for _, a := range generated {
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		out = append(out, a)
	}

	slices.SortStableFunc(out, func(a, b journal.Activity) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.IntN(len(pool))]
}
