// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package analysis

import (
	"fmt"
	"time"

	"github.com/tejzpr/moodlog-mcp/internal/journal"
)

// Bucket is the count and mean satisfaction of a group of activities
type Bucket struct {
	Count           int     `json:"count" yaml:"count"`
	AvgSatisfaction float64 `json:"avgSatisfaction" yaml:"avg_satisfaction"`
}

type accumulator struct {
	count int
	sum   float64
}

func (a *accumulator) add(satisfaction int) {
	a.count++
	a.sum += float64(satisfaction)
}

func (a accumulator) bucket() Bucket {
	return Bucket{Count: a.count, AvgSatisfaction: average(a.sum, a.count)}
}

// Slot is one of the four time-of-day buckets
type Slot int

const (
	SlotMorning   Slot = iota // 05:00-11:59
	SlotAfternoon             // 12:00-16:59
	SlotEvening               // 17:00-21:59
	SlotNight                 // 22:00-04:59
)

// Slots returns the slots in display order
func Slots() []Slot {
	return []Slot{SlotMorning, SlotAfternoon, SlotEvening, SlotNight}
}

func (s Slot) String() string {
	switch s {
	case SlotMorning:
		return "morning"
	case SlotAfternoon:
		return "afternoon"
	case SlotEvening:
		return "evening"
	case SlotNight:
		return "night"
	}
	return fmt.Sprintf("Slot(%d)", int(s))
}

// SlotOf maps an hour of day to its slot
func SlotOf(hour int) Slot {
	switch {
	case hour >= 5 && hour < 12:
		return SlotMorning
	case hour >= 12 && hour < 17:
		return SlotAfternoon
	case hour >= 17 && hour < 22:
		return SlotEvening
	default:
		return SlotNight
	}
}

// TimeOfDayStats holds one bucket per Slot, indexed by Slot
type TimeOfDayStats [4]Bucket

// Get returns the bucket for s
func (s TimeOfDayStats) Get(slot Slot) Bucket {
	return s[slot]
}

// AnalyzeTimeOfDay groups activities by the slot of their hour
func AnalyzeTimeOfDay(activities []journal.Activity) TimeOfDayStats {
	var acc [4]accumulator
	for _, a := range activities {
		acc[SlotOf(a.Timestamp.Hour())].add(a.Satisfaction)
	}

	var stats TimeOfDayStats
	for i := range acc {
		stats[i] = acc[i].bucket()
	}
	return stats
}

// DayOfWeekStats holds one bucket per weekday, indexed by time.Weekday (Sunday first)
type DayOfWeekStats [7]Bucket

// Get returns the bucket for day
func (s DayOfWeekStats) Get(day time.Weekday) Bucket {
	return s[day]
}

// AnalyzeDayOfWeek groups activities by the weekday of their timestamp
func AnalyzeDayOfWeek(activities []journal.Activity) DayOfWeekStats {
	var acc [7]accumulator
	for _, a := range activities {
		acc[a.Timestamp.Weekday()].add(a.Satisfaction)
	}

	var stats DayOfWeekStats
	for i := range acc {
		stats[i] = acc[i].bucket()
	}
	return stats
}
