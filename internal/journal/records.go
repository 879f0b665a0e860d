// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package journal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrTitleRequired is returned when an activity has an empty title
	ErrTitleRequired = errors.New("title is required")
	// ErrInvalidSatisfaction is returned when satisfaction is outside 0..5
	ErrInvalidSatisfaction = errors.New("satisfaction must be between 0 and 5")
)

// MaxSatisfaction is the highest star rating. Zero means unrated.
const MaxSatisfaction = 5

// Activity is a logged event. Records are immutable once created.
type Activity struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Category     Category  `json:"category"`
	Duration     Duration  `json:"duration"`
	Description  string    `json:"description"`
	Satisfaction int       `json:"satisfaction"`
	Timestamp    time.Time `json:"timestamp"`
}

// MoodEntry is a logged mood sample, independent of activities
type MoodEntry struct {
	ID        string    `json:"id"`
	Mood      Mood      `json:"mood"`
	Note      string    `json:"note"`
	Timestamp time.Time `json:"timestamp"`
}

// ActivityInput is what a user submits to log an activity
type ActivityInput struct {
	Title        string
	Category     string
	Duration     string
	Description  string
	Satisfaction int
}

// MoodInput is what a user submits to log a mood
type MoodInput struct {
	Mood Mood
	Note string
}

// Validate checks the submission and returns the parsed enumerations
func (in ActivityInput) Validate() (Category, Duration, error) {
	if strings.TrimSpace(in.Title) == "" {
		return 0, DurationUnset, ErrTitleRequired
	}
	category, err := ParseCategory(strings.TrimSpace(in.Category))
	if err != nil {
		return 0, DurationUnset, err
	}
	duration, err := ParseDuration(strings.TrimSpace(in.Duration))
	if err != nil {
		return 0, DurationUnset, err
	}
	if in.Satisfaction < 0 || in.Satisfaction > MaxSatisfaction {
		return 0, DurationUnset, fmt.Errorf("%w, got %d", ErrInvalidSatisfaction, in.Satisfaction)
	}
	return category, duration, nil
}

// NewActivity validates input and stamps a fresh id and timestamp
func NewActivity(in ActivityInput, now time.Time) (Activity, error) {
	category, duration, err := in.Validate()
	if err != nil {
		return Activity{}, err
	}
	return Activity{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(in.Title),
		Category:     category,
		Duration:     duration,
		Description:  strings.TrimSpace(in.Description),
		Satisfaction: in.Satisfaction,
		Timestamp:    now,
	}, nil
}

// NewMoodEntry validates input and stamps a fresh id and timestamp
func NewMoodEntry(in MoodInput, now time.Time) (MoodEntry, error) {
	if !in.Mood.Valid() {
		return MoodEntry{}, fmt.Errorf("%w: a mood must be selected", ErrInvalidMood)
	}
	return MoodEntry{
		ID:        uuid.NewString(),
		Mood:      in.Mood,
		Note:      strings.TrimSpace(in.Note),
		Timestamp: now,
	}, nil
}
