// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package records

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejzpr/moodlog-mcp/internal/database"
	"github.com/tejzpr/moodlog-mcp/internal/journal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm/logger"
)

// memoryStore is an in-memory Store that can be told to fail
type memoryStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	saves   int
	failing bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string][]byte)}
}

func (s *memoryStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return nil, database.ErrCollectionNotFound
	}
	return v, nil
}

func (s *memoryStore) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return errors.New("disk full")
	}
	s.saves++
	s.data[key] = value
	return nil
}

type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fixedClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Minute)
	return c.t
}

func newTestJournal(t *testing.T, store Store, opts ...Option) *Journal {
	t.Helper()
	clock := &fixedClock{t: time.Date(2025, time.October, 15, 9, 0, 0, 0, time.UTC)}
	base := []Option{WithLogger(zaptest.NewLogger(t)), WithClock(clock.now), WithLocation(time.UTC)}
	j := New(store, append(base, opts...)...)
	require.NoError(t, j.Open(context.Background()))
	return j
}

func workInput(title string, satisfaction int) journal.ActivityInput {
	return journal.ActivityInput{Title: title, Category: "Work", Duration: "1 hour", Satisfaction: satisfaction}
}

func TestJournal_OpenEmpty(t *testing.T) {
	j := newTestJournal(t, newMemoryStore())

	assert.Empty(t, j.Activities())
	assert.Empty(t, j.Moods())
	assert.Equal(t, uint64(1), j.Revision())
}

func TestJournal_AddActivity(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	j := newTestJournal(t, store)

	first, err := j.AddActivity(ctx, workInput("  Standup  ", 3))
	require.NoError(t, err)
	second, err := j.AddActivity(ctx, journal.ActivityInput{Title: "Run", Category: "Exercise", Satisfaction: 5})
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "Standup", first.Title)
	assert.True(t, second.Timestamp.After(first.Timestamp))

	activities := j.Activities()
	require.Len(t, activities, 2)
	assert.Equal(t, second.ID, activities[0].ID, "newest first")
	assert.Equal(t, first.ID, activities[1].ID)
	assert.Equal(t, uint64(3), j.Revision())
	assert.Equal(t, 2, store.saves)
}

func TestJournal_AddActivityRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	j := newTestJournal(t, store)

	tests := []struct {
		name  string
		input journal.ActivityInput
		err   error
	}{
		{"empty title", journal.ActivityInput{Title: "   ", Category: "Work"}, journal.ErrTitleRequired},
		{"no category", journal.ActivityInput{Title: "x"}, journal.ErrInvalidCategory},
		{"unknown category", journal.ActivityInput{Title: "x", Category: "Chores"}, journal.ErrInvalidCategory},
		{"unknown duration", journal.ActivityInput{Title: "x", Category: "Work", Duration: "3 days"}, journal.ErrInvalidDuration},
		{"satisfaction too high", journal.ActivityInput{Title: "x", Category: "Work", Satisfaction: 6}, journal.ErrInvalidSatisfaction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := j.AddActivity(ctx, tt.input)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	assert.Empty(t, j.Activities())
	assert.Zero(t, store.saves)
}

func TestJournal_SaveFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	j := newTestJournal(t, store)

	kept, err := j.AddActivity(ctx, workInput("kept", 4))
	require.NoError(t, err)
	rev := j.Revision()

	store.failing = true
	_, err = j.AddActivity(ctx, workInput("lost", 2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	err = j.DeleteActivity(ctx, kept.ID)
	require.Error(t, err)

	_, err = j.AddMood(ctx, journal.MoodInput{Mood: journal.MoodHappy})
	require.Error(t, err)

	activities := j.Activities()
	require.Len(t, activities, 1)
	assert.Equal(t, kept.ID, activities[0].ID)
	assert.Empty(t, j.Moods())
	assert.Equal(t, rev, j.Revision())
}

func TestJournal_DeleteActivity(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t, newMemoryStore())

	a, err := j.AddActivity(ctx, workInput("a", 1))
	require.NoError(t, err)
	b, err := j.AddActivity(ctx, workInput("b", 2))
	require.NoError(t, err)

	require.NoError(t, j.DeleteActivity(ctx, a.ID))
	activities := j.Activities()
	require.Len(t, activities, 1)
	assert.Equal(t, b.ID, activities[0].ID)

	err = j.DeleteActivity(ctx, a.ID)
	assert.ErrorIs(t, err, ErrActivityNotFound)
}

func TestJournal_SnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t, newMemoryStore())
	_, err := j.AddActivity(ctx, workInput("original", 3))
	require.NoError(t, err)

	snapshot, rev := j.Snapshot()
	snapshot[0].Title = "changed"

	assert.Equal(t, "original", j.Activities()[0].Title)
	assert.Equal(t, j.Revision(), rev)
}

func TestJournal_AddMood(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t, newMemoryStore())

	_, err := j.AddMood(ctx, journal.MoodInput{})
	assert.ErrorIs(t, err, journal.ErrInvalidMood)

	first, err := j.AddMood(ctx, journal.MoodInput{Mood: journal.MoodSad})
	require.NoError(t, err)
	second, err := j.AddMood(ctx, journal.MoodInput{Mood: journal.MoodVeryHappy, Note: " sunny "})
	require.NoError(t, err)
	assert.Equal(t, "sunny", second.Note)

	moods := j.Moods()
	require.Len(t, moods, 2)
	assert.Equal(t, second.ID, moods[0].ID)
	assert.Equal(t, first.ID, moods[1].ID)
}

func TestJournal_ReopenRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	j := newTestJournal(t, store)

	a, err := j.AddActivity(ctx, journal.ActivityInput{
		Title:        "Climbing",
		Category:     "Self-care",
		Duration:     "1.5 hours",
		Description:  "bouldering gym",
		Satisfaction: 5,
	})
	require.NoError(t, err)
	m, err := j.AddMood(ctx, journal.MoodInput{Mood: journal.MoodNeutral, Note: "ok"})
	require.NoError(t, err)

	reopened := newTestJournal(t, store)
	activities := reopened.Activities()
	require.Len(t, activities, 1)
	got := activities[0]
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, a.Title, got.Title)
	assert.Equal(t, journal.CategorySelfCare, got.Category)
	assert.Equal(t, journal.Duration1AndHalfHours, got.Duration)
	assert.Equal(t, a.Description, got.Description)
	assert.Equal(t, 5, got.Satisfaction)
	assert.True(t, a.Timestamp.Equal(got.Timestamp))

	moods := reopened.Moods()
	require.Len(t, moods, 1)
	assert.Equal(t, m.ID, moods[0].ID)
	assert.Equal(t, journal.MoodNeutral, moods[0].Mood)
	assert.True(t, m.Timestamp.Equal(moods[0].Timestamp))
}

func TestJournal_MalformedDataFallsBackToEmpty(t *testing.T) {
	tests := []struct {
		name       string
		activities string
		moods      string
	}{
		{"not json", `{{{`, `[{"id":"m1","mood":{"value":4},"timestamp":"2025-10-10T10:00:00Z"}]`},
		{"unknown category", `[{"id":"a1","title":"x","category":"Chores","satisfaction":1,"timestamp":"2025-10-10T10:00:00Z"}]`, `[]`},
		{"satisfaction out of range", `[{"id":"a1","title":"x","category":"Work","satisfaction":9,"timestamp":"2025-10-10T10:00:00Z"}]`, `[]`},
		{"bad timestamp", `[{"id":"a1","title":"x","category":"Work","satisfaction":1,"timestamp":"yesterday"}]`, `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			store.data[database.CollectionActivities] = []byte(tt.activities)
			store.data[database.CollectionMoodEntries] = []byte(tt.moods)

			core, logs := observer.New(zapcore.WarnLevel)
			j := New(store, WithLogger(zap.New(core)), WithLocation(time.UTC))
			require.NoError(t, j.Open(context.Background()))

			assert.NotNil(t, j.Activities())
			assert.Empty(t, j.Activities())
			assert.Equal(t, 1, logs.FilterMessage("stored collection is unreadable, starting empty; the next write replaces it").Len())
		})
	}
}

func TestJournal_WriteReplacesUnreadableCollection(t *testing.T) {
	store := newMemoryStore()
	store.data[database.CollectionActivities] = []byte(`{{{`)

	core, logs := observer.New(zapcore.WarnLevel)
	j := New(store, WithLogger(zap.New(core)), WithLocation(time.UTC))
	require.NoError(t, j.Open(context.Background()))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "the next write replaces it")
	assert.Equal(t, database.CollectionActivities, entries[0].ContextMap()["collection"])

	_, err := j.AddActivity(context.Background(), workInput("Standup", 3))
	require.NoError(t, err)

	var stored []journal.Activity
	require.NoError(t, json.Unmarshal(store.data[database.CollectionActivities], &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, "Standup", stored[0].Title)
}

func TestJournal_MalformedMoodsKeepActivities(t *testing.T) {
	store := newMemoryStore()
	store.data[database.CollectionActivities] = []byte(`[{"id":"a1","title":"x","category":"Work","satisfaction":1,"timestamp":"2025-10-10T10:00:00Z"}]`)
	store.data[database.CollectionMoodEntries] = []byte(`[{"id":"m1","mood":{"value":9},"timestamp":"2025-10-10T10:00:00Z"}]`)

	j := New(store, WithLocation(time.UTC))
	require.NoError(t, j.Open(context.Background()))

	assert.Len(t, j.Activities(), 1)
	assert.Empty(t, j.Moods())
}

func TestJournal_OpenSortsAndConvertsZone(t *testing.T) {
	store := newMemoryStore()
	store.data[database.CollectionActivities] = []byte(`[
		{"id":"old","title":"x","category":"Work","satisfaction":1,"timestamp":"2025-10-10T10:00:00Z"},
		{"id":"new","title":"y","category":"Work","satisfaction":1,"timestamp":"2025-10-11T10:00:00Z"}
	]`)

	tokyo := time.FixedZone("JST", 9*60*60)
	j := New(store, WithLocation(tokyo))
	require.NoError(t, j.Open(context.Background()))

	activities := j.Activities()
	require.Len(t, activities, 2)
	assert.Equal(t, "new", activities[0].ID)
	assert.Equal(t, 19, activities[0].Timestamp.Hour())
	assert.Equal(t, tokyo, activities[0].Timestamp.Location())
}

type stubBackfiller struct {
	needs     bool
	generated []journal.Activity
	calls     int
}

func (b *stubBackfiller) NeedsBackfill([]journal.Activity, time.Time) bool { return b.needs }

func (b *stubBackfiller) Generate(time.Time) []journal.Activity {
	b.calls++
	return b.generated
}

func TestJournal_BackfillOnOpen(t *testing.T) {
	generated := []journal.Activity{
		{ID: "g1", Title: "Jog", Category: journal.CategoryExercise, Satisfaction: 4, Timestamp: time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)},
		{ID: "g2", Title: "Read", Category: journal.CategoryLeisure, Satisfaction: 3, Timestamp: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)},
	}
	store := newMemoryStore()
	b := &stubBackfiller{needs: true, generated: generated}

	j := newTestJournal(t, store, WithBackfiller(b))
	assert.Len(t, j.Activities(), 2)
	assert.Equal(t, 1, b.calls)
	assert.Equal(t, 1, store.saves)

	// Persisted, so a plain reopen sees the history
	reopened := newTestJournal(t, store)
	assert.Len(t, reopened.Activities(), 2)
}

func TestJournal_NoBackfillWhenHistoryIsSufficient(t *testing.T) {
	store := newMemoryStore()
	b := &stubBackfiller{needs: false}

	newTestJournal(t, store, WithBackfiller(b))
	assert.Zero(t, b.calls)
	assert.Zero(t, store.saves)
}

func TestJournal_ForcedBackfillMerges(t *testing.T) {
	ctx := context.Background()
	b := &stubBackfiller{needs: false, generated: []journal.Activity{
		{ID: "g1", Title: "Jog", Category: journal.CategoryExercise, Satisfaction: 4, Timestamp: time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)},
	}}
	j := newTestJournal(t, newMemoryStore(), WithBackfiller(b))

	mine, err := j.AddActivity(ctx, workInput("mine", 3))
	require.NoError(t, err)

	added, err := j.Backfill(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	activities := j.Activities()
	require.Len(t, activities, 2)
	assert.Equal(t, mine.ID, activities[0].ID)

	// Same ids again add nothing
	added, err = j.Backfill(ctx)
	require.NoError(t, err)
	assert.Zero(t, added)

	_, err = New(newMemoryStore()).Backfill(ctx)
	assert.Error(t, err)
}

func TestJournal_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	j := newTestJournal(t, store)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := j.AddActivity(ctx, workInput("parallel", 3))
			assert.NoError(t, err)
			_ = j.Activities()
		}()
	}
	wg.Wait()

	assert.Len(t, j.Activities(), 20)
	reopened := newTestJournal(t, store)
	assert.Len(t, reopened.Activities(), 20)
}

func TestJournal_WithCollectionStore(t *testing.T) {
	ctx := context.Background()
	db, err := database.Connect(&database.Config{
		Type:       "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "moodlog.db"),
		LogLevel:   logger.Silent,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db))

	store := database.NewCollectionStore(db)
	j := newTestJournal(t, store)

	a, err := j.AddActivity(ctx, workInput("persisted", 4))
	require.NoError(t, err)
	_, err = j.AddMood(ctx, journal.MoodInput{Mood: journal.MoodHappy})
	require.NoError(t, err)

	reopened := newTestJournal(t, store)
	require.Len(t, reopened.Activities(), 1)
	assert.Equal(t, a.ID, reopened.Activities()[0].ID)
	assert.Equal(t, 4, reopened.Activities()[0].Satisfaction)
	require.Len(t, reopened.Moods(), 1)
	assert.Equal(t, journal.MoodHappy, reopened.Moods()[0].Mood)
}
