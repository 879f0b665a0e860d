// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package analysis

import (
	"sync"
	"time"

	"github.com/tejzpr/moodlog-mcp/internal/journal"
)

type cacheKey struct {
	rangeName   Range
	category    CategoryFilter
	windowStart int64
}

// Cache memoizes reports for one journal revision. A new revision drops
// every entry; a new day, week or month changes the window start and so the key.
type Cache struct {
	mu       sync.Mutex
	revision uint64
	entries  map[cacheKey]Report
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]Report)}
}

// Analyze returns the cached report for the inputs or computes and stores it.
// The boolean reports a cache hit.
func (c *Cache) Analyze(revision uint64, activities []journal.Activity, r Range, category CategoryFilter, now time.Time) (Report, bool) {
	key := cacheKey{rangeName: r, category: category, windowStart: r.Start(now).UnixNano()}

	c.mu.Lock()
	defer c.mu.Unlock()

	if revision != c.revision {
		c.revision = revision
		c.entries = make(map[cacheKey]Report)
	}
	if report, ok := c.entries[key]; ok {
		return report, true
	}

	report := Analyze(activities, r, category, now)
	c.entries[key] = report
	return report, false
}

// Len returns the number of cached reports
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
