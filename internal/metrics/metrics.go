// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package metrics exposes prometheus counters for journal and analysis events.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "moodlog"

var (
	activitiesLogged = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activities_logged_total",
		Help:      "Number of activities logged, labeled by category.",
	}, []string{"category"})

	activitiesDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activities_deleted_total",
		Help:      "Number of activities deleted.",
	})

	moodsLogged = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "moods_logged_total",
		Help:      "Number of mood entries logged, labeled by mood.",
	}, []string{"mood"})

	analyses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_total",
		Help:      "Number of pattern analyses served, labeled by range and whether the cache answered.",
	}, []string{"range", "cached"})

	storeLoadFallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_load_fallbacks_total",
		Help:      "Number of times a stored collection was unreadable and replaced by an empty one.",
	}, []string{"collection"})

	backfilledActivities = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backfilled_activities_total",
		Help:      "Number of synthetic activities added by backfill.",
	})
)

func init() {
	prometheus.MustRegister(
		activitiesLogged,
		activitiesDeleted,
		moodsLogged,
		analyses,
		storeLoadFallbacks,
		backfilledActivities,
	)
}

// RecordActivityLogged counts a new activity
func RecordActivityLogged(category string) {
	activitiesLogged.WithLabelValues(category).Inc()
}

// RecordActivityDeleted counts a deleted activity
func RecordActivityDeleted() {
	activitiesDeleted.Inc()
}

// RecordMoodLogged counts a new mood entry
func RecordMoodLogged(mood string) {
	moodsLogged.WithLabelValues(mood).Inc()
}

// RecordAnalysis counts an analysis request for the given range
func RecordAnalysis(rangeName string, cached bool) {
	analyses.WithLabelValues(rangeName, strconv.FormatBool(cached)).Inc()
}

// RecordLoadFallback counts a collection that failed to decode on load
func RecordLoadFallback(collection string) {
	storeLoadFallbacks.WithLabelValues(collection).Inc()
}

// RecordBackfill counts synthetic activities merged into the journal
func RecordBackfill(added int) {
	if added <= 0 {
		return
	}
	backfilledActivities.Add(float64(added))
}

// Handler serves the default registry in the prometheus text format
func Handler() http.Handler {
	return promhttp.Handler()
}
