// Package stats holds the shared numeric routines every report surface
// consumes: one aggregation rule for descriptive statistics and one
// least-squares fit for trendlines. Both are pure and total; garbage
// input yields a zero-valued result or a nil fit, never a panic.
package stats

import (
	"math"
	"sort"

	"compscope/server/internal/models"
)

// ValuePolicy controls which raw values an aggregation keeps.
type ValuePolicy int

const (
	// PositiveOnly drops values <= 0. Used for metrics where zero is
	// meaningless: prices, sizes, days on market.
	PositiveOnly ValuePolicy = iota
	// AllFinite keeps any finite value, including zero and negatives.
	AllFinite
)

// Aggregate computes the range, mean and median of a numeric series
// under the given policy. Non-finite values are always dropped. An
// empty or fully-dropped series yields the all-zero StatMetric; the
// median is sorted by value, so input order never matters.
func Aggregate(values []float64, policy ValuePolicy) models.StatMetric {
	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if policy == PositiveOnly && v <= 0 {
			continue
		}
		kept = append(kept, v)
	}
	if len(kept) == 0 {
		return models.StatMetric{}
	}

	sort.Float64s(kept)

	var sum float64
	for _, v := range kept {
		sum += v
	}
	n := len(kept)

	var median float64
	if n%2 == 1 {
		median = kept[n/2]
	} else {
		median = (kept[n/2-1] + kept[n/2]) / 2
	}

	return models.StatMetric{
		Range:   models.Range{Min: kept[0], Max: kept[n-1]},
		Average: sum / float64(n),
		Median:  median,
		Count:   n,
	}
}

// Collect extracts one numeric concept from each record, skipping
// records where the extractor reports no value. The result feeds
// Aggregate; keeping extraction separate is what lets every metric
// share the single aggregation rule.
func Collect(records []*models.PropertyRecord, extract func(*models.PropertyRecord) *float64) []float64 {
	values := make([]float64, 0, len(records))
	for _, rec := range records {
		if v := extract(rec); v != nil {
			values = append(values, *v)
		}
	}
	return values
}

// Mean returns the arithmetic mean of values, or nil for an empty
// slice. Callers that must distinguish "no samples" from a genuine
// zero mean use this instead of Aggregate.
func Mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	m := sum / float64(len(values))
	return &m
}
