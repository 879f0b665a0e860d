// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package database

import (
	"time"

	"gorm.io/datatypes"
)

// Collection names used by the journal
const (
	CollectionActivities  = "activities"
	CollectionMoodEntries = "moodEntries"
)

// MoodlogCollection stores one logical collection as a JSON document
type MoodlogCollection struct {
	Name      string         `gorm:"primaryKey;size:64" json:"name"`
	Value     datatypes.JSON `gorm:"not null" json:"value"`
	Revision  uint64         `gorm:"not null;default:1" json:"revision"` // bumped on every save
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TableName specifies the table name for MoodlogCollection
func (MoodlogCollection) TableName() string {
	return "moodlog_collections"
}
