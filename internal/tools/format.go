// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package tools

import (
	"fmt"
	"strings"

	"github.com/tejzpr/moodlog-mcp/internal/analysis"
	"github.com/tejzpr/moodlog-mcp/internal/journal"
)

const timestampLayout = "2006-01-02 15:04"

// stars renders a satisfaction rating, or "unrated" for zero
func stars(satisfaction int) string {
	if satisfaction <= 0 {
		return "unrated"
	}
	return strings.Repeat("★", satisfaction) + strings.Repeat("☆", journal.MaxSatisfaction-satisfaction)
}

// FormatActivity renders one activity on a single line
func FormatActivity(a journal.Activity) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s (%s", a.Timestamp.Format(timestampLayout), a.Title, a.Category)
	if a.Duration != journal.DurationUnset {
		fmt.Fprintf(&sb, ", %s", a.Duration)
	}
	fmt.Fprintf(&sb, ") %s", stars(a.Satisfaction))
	if a.Description != "" {
		fmt.Fprintf(&sb, " - %s", a.Description)
	}
	fmt.Fprintf(&sb, " {id: %s}", a.ID)
	return sb.String()
}

// FormatMood renders one mood entry on a single line
func FormatMood(m journal.MoodEntry) string {
	line := fmt.Sprintf("[%s] %s %s (%d/5)", m.Timestamp.Format(timestampLayout), m.Mood.Emoji(), m.Mood.Label(), m.Mood.Value())
	if m.Note != "" {
		line += " - " + m.Note
	}
	return line
}

// FormatMoodSummary renders mood statistics on a single line
func FormatMoodSummary(s analysis.MoodSummary) string {
	return fmt.Sprintf("%d entries, average %.1f/5, most frequent: %s %s",
		s.Total, s.Average, s.MostFrequent.Emoji(), s.MostFrequent.Label())
}

// FormatTimeline renders one line per hour of day with the count, average
// satisfaction and up to perHour titles of the activities in that hour.
func FormatTimeline(activities []journal.Activity, perHour int) string {
	timeline := analysis.HourlyTimeline(activities)

	var sb strings.Builder
	for hour, bucket := range timeline {
		if len(bucket) == 0 {
			fmt.Fprintf(&sb, "%02d:00  -\n", hour)
			continue
		}
		sum := 0
		titles := make([]string, 0, perHour)
		for i, a := range bucket {
			sum += a.Satisfaction
			if i < perHour {
				titles = append(titles, a.Title)
			}
		}
		avg := float64(sum) / float64(len(bucket))
		fmt.Fprintf(&sb, "%02d:00  %d activities, avg %.2f", hour, len(bucket), avg)
		if len(titles) > 0 {
			fmt.Fprintf(&sb, "  [%s]", strings.Join(titles, ", "))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
