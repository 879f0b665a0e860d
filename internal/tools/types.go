// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package tools

import (
	"github.com/tejzpr/moodlog-mcp/internal/analysis"
	"github.com/tejzpr/moodlog-mcp/internal/journal"
	"github.com/tejzpr/moodlog-mcp/internal/records"
	"go.uber.org/zap"
)

// Default limits for list tools
const (
	defaultActivityLimit = 20
	defaultMoodLimit     = 10
	defaultPerHour       = 3
)

// ToolContext holds shared dependencies for all tools
type ToolContext struct {
	Journal      *records.Journal
	Cache        *analysis.Cache
	Logger       *zap.Logger
	DefaultRange analysis.Range
}

// NewToolContext creates a tool context over an opened journal
func NewToolContext(j *records.Journal, logger *zap.Logger, defaultRange analysis.Range) *ToolContext {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultRange == "" {
		defaultRange = analysis.RangeWeek
	}
	return &ToolContext{
		Journal:      j,
		Cache:        analysis.NewCache(),
		Logger:       logger,
		DefaultRange: defaultRange,
	}
}

// categoryNames lists every category for tool schemas
func categoryNames() []string {
	var names []string
	for _, c := range journal.Categories() {
		names = append(names, c.String())
	}
	return names
}

// rangeNames lists the analysis windows for tool schemas
func rangeNames() []string {
	var names []string
	for _, r := range analysis.Ranges() {
		names = append(names, string(r))
	}
	return names
}
