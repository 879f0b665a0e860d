// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrCollectionNotFound is returned by Load when nothing was ever saved under the key
var ErrCollectionNotFound = errors.New("collection not found")

// CollectionStore is a key-value store of JSON documents backed by gorm
type CollectionStore struct {
	db *gorm.DB
}

// NewCollectionStore creates a store over an already migrated database
func NewCollectionStore(db *gorm.DB) *CollectionStore {
	return &CollectionStore{db: db}
}

// Load returns the raw JSON saved under key
func (s *CollectionStore) Load(ctx context.Context, key string) ([]byte, error) {
	var row MoodlogCollection
	err := s.db.WithContext(ctx).Where("name = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCollectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load collection %s: %w", key, err)
	}
	return []byte(row.Value), nil
}

// Save replaces the document under key, creating it if needed
func (s *CollectionStore) Save(ctx context.Context, key string, value []byte) error {
	row := MoodlogCollection{
		Name:      key,
		Value:     datatypes.JSON(value),
		Revision:  1,
		UpdatedAt: time.Now(),
	}

	updates := clause.AssignmentColumns([]string{"value", "updated_at"})
	updates = append(updates, clause.Assignment{
		Column: clause.Column{Name: "revision"},
		Value:  gorm.Expr("moodlog_collections.revision + 1"),
	})

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: updates,
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save collection %s: %w", key, err)
	}
	return nil
}

// Revision returns how many times key has been saved, or 0 if never
func (s *CollectionStore) Revision(ctx context.Context, key string) (uint64, error) {
	var row MoodlogCollection
	err := s.db.WithContext(ctx).Select("revision").Where("name = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read revision of %s: %w", key, err)
	}
	return row.Revision, nil
}
