// Package timeseries buckets closed sales into calendar months for the
// report's price-trend chart.
package timeseries

import (
	"sort"

	"compscope/server/internal/models"
	"compscope/server/internal/normalize"
)

// monthKey formats a close date as "YYYY-MM", the bucket identity.
const monthKeyLayout = "2006-01"

// MonthlyTrend groups closed sales by close month, chronologically.
// A sale needs a close date and a positive price to land in a bucket;
// records missing either are dropped from this aggregation only and
// still count everywhere else.
func MonthlyTrend(closedSales []*models.PropertyRecord) []models.TrendPoint {
	type bucket struct {
		sum   float64
		count int
		min   float64
		max   float64
	}
	buckets := make(map[string]*bucket)

	for _, rec := range closedSales {
		if rec == nil || rec.CloseDate == nil {
			continue
		}
		price := normalize.Price(rec)
		if price <= 0 {
			continue
		}
		key := rec.CloseDate.Format(monthKeyLayout)
		b, ok := buckets[key]
		if !ok {
			buckets[key] = &bucket{sum: price, count: 1, min: price, max: price}
			continue
		}
		b.sum += price
		b.count++
		if price < b.min {
			b.min = price
		}
		if price > b.max {
			b.max = price
		}
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	// "YYYY-MM" sorts chronologically as text.
	sort.Strings(keys)

	points := make([]models.TrendPoint, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]
		points = append(points, models.TrendPoint{
			MonthKey:     key,
			AveragePrice: b.sum / float64(b.count),
			SaleCount:    b.count,
			MinPrice:     b.min,
			MaxPrice:     b.max,
		})
	}
	return points
}

// PeriodChange is the percent change between the first and last bucket
// averages. Nil when fewer than two buckets exist — a flat trend and an
// unmeasurable one are different answers.
func PeriodChange(points []models.TrendPoint) *float64 {
	if len(points) < 2 {
		return nil
	}
	first := points[0].AveragePrice
	if first == 0 {
		return nil
	}
	change := (points[len(points)-1].AveragePrice - first) / first * 100
	return &change
}
