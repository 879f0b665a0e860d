// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package database

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestCollectionStore_LoadMissing(t *testing.T) {
	store := NewCollectionStore(setupTestDB(t))

	_, err := store.Load(context.Background(), CollectionActivities)
	assert.ErrorIs(t, err, ErrCollectionNotFound)

	rev, err := store.Revision(context.Background(), CollectionActivities)
	require.NoError(t, err)
	assert.Zero(t, rev)
}

func TestCollectionStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := NewCollectionStore(setupTestDB(t))

	doc := []byte(`[{"id":"a1","satisfaction":4,"timestamp":"2025-10-15T09:00:00Z"}]`)
	require.NoError(t, store.Save(ctx, CollectionActivities, doc))

	loaded, err := store.Load(ctx, CollectionActivities)
	require.NoError(t, err)
	assert.JSONEq(t, string(doc), string(loaded))

	// Collections are independent
	_, err = store.Load(ctx, CollectionMoodEntries)
	assert.ErrorIs(t, err, ErrCollectionNotFound)
}

func TestCollectionStore_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	store := NewCollectionStore(db)

	require.NoError(t, store.Save(ctx, CollectionMoodEntries, []byte(`[]`)))
	require.NoError(t, store.Save(ctx, CollectionMoodEntries, []byte(`[{"id":"m1"}]`)))
	require.NoError(t, store.Save(ctx, CollectionMoodEntries, []byte(`[{"id":"m2"}]`)))

	loaded, err := store.Load(ctx, CollectionMoodEntries)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"m2"}]`, string(loaded))

	rev, err := store.Revision(ctx, CollectionMoodEntries)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), rev)

	var count int64
	require.NoError(t, db.Model(&MoodlogCollection{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCollectionStore_ClosedDatabase(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(t.TempDir()+"/closed.db"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, Close(db))

	store := NewCollectionStore(db)
	err = store.Save(context.Background(), CollectionActivities, []byte(`[]`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCollectionNotFound)

	_, err = store.Load(context.Background(), CollectionActivities)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCollectionNotFound)
}
