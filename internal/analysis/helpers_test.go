// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package analysis

import (
	"fmt"
	"time"

	"github.com/tejzpr/moodlog-mcp/internal/journal"
)

var activitySeq int

// at builds an activity on the given day of October 2025 (UTC). October 12th is a Sunday.
func at(day, hour int, category journal.Category, satisfaction int) journal.Activity {
	activitySeq++
	return journal.Activity{
		ID:           fmt.Sprintf("act-%d", activitySeq),
		Title:        category.String() + " session",
		Category:     category,
		Satisfaction: satisfaction,
		Timestamp:    time.Date(2025, time.October, day, hour, 0, 0, 0, time.UTC),
	}
}
