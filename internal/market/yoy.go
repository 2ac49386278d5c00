package market

import (
	"time"

	"compscope/server/internal/models"
	"compscope/server/internal/normalize"
	"compscope/server/internal/stats"
)

// CompareYearOverYear partitions closed sales into two trailing
// 12-month windows ending at now and compares average and median close
// prices. Sales need a close date and a positive price to qualify; a
// window with no qualifying sales leaves the change percentages nil so
// a flat market is never confused with missing data.
func CompareYearOverYear(closedSales []*models.PropertyRecord, now time.Time) models.YoYComparison {
	currentStart := now.AddDate(-1, 0, 0)
	priorStart := now.AddDate(-2, 0, 0)

	var currentPrices, priorPrices []float64
	for _, rec := range closedSales {
		if rec == nil || rec.CloseDate == nil {
			continue
		}
		price := normalize.Price(rec)
		if price <= 0 {
			continue
		}
		closed := *rec.CloseDate
		switch {
		case closed.After(currentStart) && !closed.After(now):
			currentPrices = append(currentPrices, price)
		case closed.After(priorStart) && !closed.After(currentStart):
			priorPrices = append(priorPrices, price)
		}
	}

	current := stats.Aggregate(currentPrices, stats.PositiveOnly)
	prior := stats.Aggregate(priorPrices, stats.PositiveOnly)

	out := models.YoYComparison{
		Current: models.WindowStats{
			Count:       current.Count,
			AvgPrice:    current.Average,
			MedianPrice: current.Median,
		},
		Prior: models.WindowStats{
			Count:       prior.Count,
			AvgPrice:    prior.Average,
			MedianPrice: prior.Median,
		},
	}

	if current.Count > 0 && prior.Count > 0 {
		avgChange := (current.Average - prior.Average) / prior.Average * 100
		medianChange := (current.Median - prior.Median) / prior.Median * 100
		out.AvgChangePct = &avgChange
		out.MedianChangePct = &medianChange
	}
	return out
}
