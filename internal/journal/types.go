// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package journal defines the activity and mood records kept by moodlog.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidCategory is returned when a category is not one of the fixed set
	ErrInvalidCategory = errors.New("invalid category")
	// ErrInvalidDuration is returned when a duration label is not recognised
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrInvalidMood is returned when a mood value is off the five-point scale
	ErrInvalidMood = errors.New("invalid mood")
)

// Category is the closed set of activity categories
type Category int

const (
	CategoryWork Category = iota
	CategoryExercise
	CategoryStudy
	CategoryLeisure
	CategorySocial
	CategorySelfCare
	CategoryOther
)

var categoryNames = [...]string{
	CategoryWork:     "Work",
	CategoryExercise: "Exercise",
	CategoryStudy:    "Study",
	CategoryLeisure:  "Leisure",
	CategorySocial:   "Social",
	CategorySelfCare: "Self-care",
	CategoryOther:    "Other",
}

// Categories returns every category in display order
func Categories() []Category {
	return []Category{
		CategoryWork,
		CategoryExercise,
		CategoryStudy,
		CategoryLeisure,
		CategorySocial,
		CategorySelfCare,
		CategoryOther,
	}
}

// String returns the stored name of the category
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Valid reports whether c is one of the fixed categories
func (c Category) Valid() bool {
	return c >= CategoryWork && c <= CategoryOther
}

// ParseCategory maps a stored name back to its Category
func ParseCategory(name string) (Category, error) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, name)
}

// MarshalJSON encodes the category by name
func (c Category) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCategory, int(c))
	}
	return json.Marshal(categoryNames[c])
}

// MarshalYAML renders the category by name
func (c Category) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// UnmarshalJSON decodes a category name
func (c *Category) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseCategory(name)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Duration is a human-readable duration label. It is informational only.
type Duration string

const (
	DurationUnset         Duration = ""
	Duration15Minutes     Duration = "15 minutes"
	Duration20Minutes     Duration = "20 minutes"
	Duration30Minutes     Duration = "30 minutes"
	Duration45Minutes     Duration = "45 minutes"
	Duration1Hour         Duration = "1 hour"
	Duration1AndHalfHours Duration = "1.5 hours"
	Duration2Hours        Duration = "2 hours"
)

// Durations returns the selectable duration labels in form order
func Durations() []Duration {
	return []Duration{
		Duration15Minutes,
		Duration30Minutes,
		Duration1Hour,
		Duration2Hours,
		Duration45Minutes,
		Duration1AndHalfHours,
		Duration20Minutes,
	}
}

// Valid reports whether d is unset or one of the known labels
func (d Duration) Valid() bool {
	if d == DurationUnset {
		return true
	}
	for _, known := range Durations() {
		if d == known {
			return true
		}
	}
	return false
}

// ParseDuration validates a duration label
func ParseDuration(label string) (Duration, error) {
	d := Duration(label)
	if !d.Valid() {
		return DurationUnset, fmt.Errorf("%w: %q", ErrInvalidDuration, label)
	}
	return d, nil
}

// UnmarshalJSON rejects unknown labels
func (d *Duration) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	parsed, err := ParseDuration(label)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Mood is a point on the five-point mood scale, valued 1 (Very Sad) to 5 (Very Happy)
type Mood int

const (
	MoodVerySad   Mood = 1
	MoodSad       Mood = 2
	MoodNeutral   Mood = 3
	MoodHappy     Mood = 4
	MoodVeryHappy Mood = 5
)

type moodInfo struct {
	label string
	emoji string
}

var moodScale = map[Mood]moodInfo{
	MoodVeryHappy: {label: "Very Happy", emoji: "😄"},
	MoodHappy:     {label: "Happy", emoji: "🙂"},
	MoodNeutral:   {label: "Neutral", emoji: "😐"},
	MoodSad:       {label: "Sad", emoji: "😕"},
	MoodVerySad:   {label: "Very Sad", emoji: "😢"},
}

// Moods returns the scale in display order, happiest first
func Moods() []Mood {
	return []Mood{MoodVeryHappy, MoodHappy, MoodNeutral, MoodSad, MoodVerySad}
}

// Valid reports whether m is on the scale
func (m Mood) Valid() bool {
	return m >= MoodVerySad && m <= MoodVeryHappy
}

// Value returns the numeric value of the mood
func (m Mood) Value() int {
	return int(m)
}

// Label returns the human-readable name of the mood
func (m Mood) Label() string {
	return moodScale[m].label
}

// Emoji returns the display glyph of the mood
func (m Mood) Emoji() string {
	return moodScale[m].emoji
}

// String implements fmt.Stringer
func (m Mood) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mood(%d)", int(m))
	}
	return m.Label()
}

// ParseMood accepts either a label ("Happy") or a numeric value ("4")
func ParseMood(s string) (Mood, error) {
	for _, m := range Moods() {
		if s == m.Label() || s == fmt.Sprint(m.Value()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMood, s)
}

type moodWire struct {
	Emoji string `json:"emoji"`
	Label string `json:"label"`
	Value int    `json:"value"`
}

// MarshalJSON encodes the mood as {emoji, label, value}
func (m Mood) MarshalJSON() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMood, int(m))
	}
	return json.Marshal(moodWire{Emoji: m.Emoji(), Label: m.Label(), Value: m.Value()})
}

// MarshalYAML renders the mood by label
func (m Mood) MarshalYAML() (interface{}, error) {
	return m.Label(), nil
}

// UnmarshalJSON decodes a mood object; only value is authoritative
func (m *Mood) UnmarshalJSON(data []byte) error {
	var w moodWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	parsed := Mood(w.Value)
	if !parsed.Valid() {
		return fmt.Errorf("%w: value %d", ErrInvalidMood, w.Value)
	}
	*m = parsed
	return nil
}
