// Package market translates active/closed listing counts and closed-sale
// histories into market-health readings: absorption rate, months of
// inventory, a three-way classification with a gauge position for the
// report dial, and year-over-year price comparisons.
package market

import (
	"compscope/server/internal/models"
)

// Months-of-inventory thresholds for the three-way classification.
const (
	sellersMarketBelow = 4.0
	buyersMarketAbove  = 6.0
)

// Gauge band edges. Below the seller threshold maps into [10,25), the
// balanced band onto [25,75], above the buyer threshold into (75,90].
const (
	gaugeFloor   = 10.0
	gaugeLowBand = 25.0
	gaugeHiBand  = 75.0
	gaugeCeil    = 90.0
	// Inventory beyond twice the buyer threshold pins the gauge.
	gaugeSaturationMonths = 12.0
)

// Classify derives the market reading from listing counts. The closed
// count is assumed to cover a trailing window of windowMonths months;
// the caller keeps that consistent with how it filtered records. When
// no sales closed in the window the absorption rate is zero and
// months of inventory is nil — rendered as "N/A", never 0.
func Classify(activeCount, closedCount, windowMonths int) models.MarketConditions {
	if windowMonths <= 0 {
		windowMonths = 6
	}

	out := models.MarketConditions{
		ActiveCount: activeCount,
		ClosedCount: closedCount,
	}

	out.AbsorptionRate = float64(closedCount) / float64(windowMonths)
	if out.AbsorptionRate <= 0 {
		// No sales to absorb supply: standing inventory with no
		// takers is a buyer's market unless there is no market at all.
		if activeCount > 0 {
			out.Condition = models.BuyersMarket
			out.GaugePosition = gaugeCeil
		} else {
			out.Condition = models.BalancedMarket
			out.GaugePosition = (gaugeLowBand + gaugeHiBand) / 2
		}
		return out
	}

	moi := float64(activeCount) / out.AbsorptionRate
	out.MonthsOfInventory = &moi

	switch {
	case moi < sellersMarketBelow:
		out.Condition = models.SellersMarket
		out.GaugePosition = gaugeFloor + (moi/sellersMarketBelow)*(gaugeLowBand-gaugeFloor)
	case moi > buyersMarketAbove:
		out.Condition = models.BuyersMarket
		over := (moi - buyersMarketAbove) / (gaugeSaturationMonths - buyersMarketAbove)
		if over > 1 {
			over = 1
		}
		out.GaugePosition = gaugeHiBand + over*(gaugeCeil-gaugeHiBand)
	default:
		out.Condition = models.BalancedMarket
		span := buyersMarketAbove - sellersMarketBelow
		out.GaugePosition = gaugeLowBand + ((moi-sellersMarketBelow)/span)*(gaugeHiBand-gaugeLowBand)
	}
	return out
}
