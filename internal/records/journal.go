// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package records keeps the activity and mood collections in memory over a
// key-value store. Writes are serialized and persisted before they become
// visible; readers always get a consistent snapshot.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/tejzpr/moodlog-mcp/internal/database"
	"github.com/tejzpr/moodlog-mcp/internal/journal"
	"github.com/tejzpr/moodlog-mcp/internal/metrics"
	"github.com/tejzpr/moodlog-mcp/internal/seed"
	"go.uber.org/zap"
)

// ErrActivityNotFound is returned when deleting an id that is not in the journal
var ErrActivityNotFound = errors.New("activity not found")

// Store persists JSON documents by collection name.
// Load returns database.ErrCollectionNotFound for a name never saved.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Backfiller supplies synthetic history for thin journals
type Backfiller interface {
	NeedsBackfill(activities []journal.Activity, now time.Time) bool
	Generate(now time.Time) []journal.Activity
}

// Journal holds both collections. It is safe for concurrent use.
type Journal struct {
	store      Store
	logger     *zap.Logger
	now        func() time.Time
	location   *time.Location
	backfiller Backfiller

	mu         sync.RWMutex
	activities []journal.Activity // newest first
	moods      []journal.MoodEntry
	revision   uint64
}

// Option configures a Journal
type Option func(*Journal)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(j *Journal) { j.logger = logger }
}

// WithClock sets the time source used to stamp new records
func WithClock(now func() time.Time) Option {
	return func(j *Journal) { j.now = now }
}

// WithLocation sets the zone timestamps are presented in
func WithLocation(loc *time.Location) Option {
	return func(j *Journal) { j.location = loc }
}

// WithBackfiller enables synthetic history on Open
func WithBackfiller(b Backfiller) Option {
	return func(j *Journal) { j.backfiller = b }
}

// New creates a journal over store. Call Open before use.
func New(store Store, opts ...Option) *Journal {
	j := &Journal{
		store:    store,
		logger:   zap.NewNop(),
		now:      time.Now,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Location returns the zone timestamps are presented in
func (j *Journal) Location() *time.Location {
	return j.location
}

// Now returns the journal clock's current time in the journal's zone
func (j *Journal) Now() time.Time {
	return j.now().In(j.location)
}

// Open loads both collections. Unreadable data is logged and replaced by an
// empty collection. If a backfiller is set and the history is thin, synthetic
// activities are merged in and saved.
func (j *Journal) Open(ctx context.Context) error {
	activities, err := loadCollection[journal.Activity](ctx, j, database.CollectionActivities)
	if err != nil {
		return err
	}
	moods, err := loadCollection[journal.MoodEntry](ctx, j, database.CollectionMoodEntries)
	if err != nil {
		return err
	}

	for i := range activities {
		if activities[i].Satisfaction < 0 || activities[i].Satisfaction > journal.MaxSatisfaction {
			j.fallback(database.CollectionActivities, fmt.Errorf("activity %s: %w", activities[i].ID, journal.ErrInvalidSatisfaction))
			activities = []journal.Activity{}
			break
		}
		activities[i].Timestamp = activities[i].Timestamp.In(j.location)
	}
	for i := range moods {
		moods[i].Timestamp = moods[i].Timestamp.In(j.location)
	}
	sortNewestFirst(activities, func(a journal.Activity) time.Time { return a.Timestamp })
	sortNewestFirst(moods, func(m journal.MoodEntry) time.Time { return m.Timestamp })

	j.mu.Lock()
	j.activities = activities
	j.moods = moods
	j.revision++
	j.mu.Unlock()

	j.logger.Debug("journal opened",
		zap.Int("activities", len(activities)),
		zap.Int("moods", len(moods)))

	if j.backfiller == nil {
		return nil
	}
	_, err = j.backfill(ctx, false)
	return err
}

// Backfill merges synthetic history into the journal even when the history
// is not thin. It returns the number of activities added.
func (j *Journal) Backfill(ctx context.Context) (int, error) {
	if j.backfiller == nil {
		return 0, errors.New("no backfiller configured")
	}
	return j.backfill(ctx, true)
}

func (j *Journal) backfill(ctx context.Context, force bool) (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.Now()
	if !force && !j.backfiller.NeedsBackfill(j.activities, now) {
		return 0, nil
	}

	merged := seed.Merge(j.activities, j.backfiller.Generate(now))
	added := len(merged) - len(j.activities)
	if added == 0 {
		return 0, nil
	}
	if err := j.save(ctx, database.CollectionActivities, merged); err != nil {
		return 0, err
	}
	j.activities = merged
	j.revision++

	metrics.RecordBackfill(added)
	j.logger.Info("backfilled synthetic history",
		zap.Int("added", added),
		zap.Int("total", len(merged)))
	return added, nil
}

// AddActivity validates input, stamps it and persists it
func (j *Journal) AddActivity(ctx context.Context, in journal.ActivityInput) (journal.Activity, error) {
	activity, err := journal.NewActivity(in, j.Now())
	if err != nil {
		return journal.Activity{}, err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	next := make([]journal.Activity, 0, len(j.activities)+1)
	next = append(next, activity)
	next = append(next, j.activities...)
	if err := j.save(ctx, database.CollectionActivities, next); err != nil {
		return journal.Activity{}, err
	}
	j.activities = next
	j.revision++

	metrics.RecordActivityLogged(activity.Category.String())
	j.logger.Debug("activity logged",
		zap.String("id", activity.ID),
		zap.String("category", activity.Category.String()))
	return activity, nil
}

// DeleteActivity removes the activity with id
func (j *Journal) DeleteActivity(ctx context.Context, id string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	idx := slices.IndexFunc(j.activities, func(a journal.Activity) bool { return a.ID == id })
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrActivityNotFound, id)
	}

	next := slices.Delete(slices.Clone(j.activities), idx, idx+1)
	if err := j.save(ctx, database.CollectionActivities, next); err != nil {
		return err
	}
	j.activities = next
	j.revision++

	metrics.RecordActivityDeleted()
	j.logger.Debug("activity deleted", zap.String("id", id))
	return nil
}

// Activities returns a copy of all activities, newest first
func (j *Journal) Activities() []journal.Activity {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return slices.Clone(j.activities)
}

// Snapshot returns a copy of all activities together with the revision they belong to
func (j *Journal) Snapshot() ([]journal.Activity, uint64) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return slices.Clone(j.activities), j.revision
}

// AddMood validates input, stamps it and persists it
func (j *Journal) AddMood(ctx context.Context, in journal.MoodInput) (journal.MoodEntry, error) {
	entry, err := journal.NewMoodEntry(in, j.Now())
	if err != nil {
		return journal.MoodEntry{}, err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	next := make([]journal.MoodEntry, 0, len(j.moods)+1)
	next = append(next, entry)
	next = append(next, j.moods...)
	if err := j.save(ctx, database.CollectionMoodEntries, next); err != nil {
		return journal.MoodEntry{}, err
	}
	j.moods = next
	j.revision++

	metrics.RecordMoodLogged(entry.Mood.Label())
	j.logger.Debug("mood logged", zap.String("id", entry.ID), zap.String("mood", entry.Mood.Label()))
	return entry, nil
}

// Moods returns a copy of all mood entries, newest first
func (j *Journal) Moods() []journal.MoodEntry {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return slices.Clone(j.moods)
}

// Revision increases on every successful write
func (j *Journal) Revision() uint64 {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.revision
}

// save must be called with the write lock held
func (j *Journal) save(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := j.store.Save(ctx, key, data); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}

func (j *Journal) fallback(key string, err error) {
	metrics.RecordLoadFallback(key)
	j.logger.Warn("stored collection is unreadable, starting empty; the next write replaces it",
		zap.String("collection", key),
		zap.Error(err))
}

func loadCollection[T any](ctx context.Context, j *Journal, key string) ([]T, error) {
	data, err := j.store.Load(ctx, key)
	if errors.Is(err, database.ErrCollectionNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		j.fallback(key, err)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func sortNewestFirst[T any](items []T, ts func(T) time.Time) {
	slices.SortStableFunc(items, func(a, b T) int {
		return ts(b).Compare(ts(a))
	})
}
