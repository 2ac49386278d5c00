// Package pricing builds the suggested list-price range from closed
// comparables: quartile anchors, a capped recent-trend adjustment,
// list-to-sale and days-on-market context, and a confidence score for
// how much evidence backs the range.
package pricing

import (
	"math"
	"sort"

	"compscope/server/internal/models"
	"compscope/server/internal/normalize"
	"compscope/server/internal/stats"
)

// Options are the tunable heuristics. The zero value is not usable;
// start from DefaultOptions.
type Options struct {
	// TrendCapPct bounds the market-trend adjustment in percent.
	TrendCapPct float64
	// HotMaxDOM and SlowMinDOM split average days on market into
	// hot / balanced / slow.
	HotMaxDOM  float64
	SlowMinDOM float64
}

// DefaultOptions returns the stock heuristics: trend influence capped
// at ±10%, hot under 21 days, slow over 60.
func DefaultOptions() Options {
	return Options{
		TrendCapPct: 10,
		HotMaxDOM:   21,
		SlowMinDOM:  60,
	}
}

// minClosedSales is the evidence floor below which no suggestion is
// produced at all.
const minClosedSales = 2

// minTrendSamples is how many dated sales the half-split trend needs.
const minTrendSamples = 3

// Discounts applied to the suggested bounds for the quick-sale and
// maximum-value figures.
const (
	quickSaleFactor = 0.98
	maxValueFactor  = 1.02
)

// Confidence score composition.
const (
	confidenceBase          = 50
	confidencePerComp       = 2
	confidencePerCompCap    = 20
	confidencePPSFBonus     = 10
	confidencePPSFMinComps  = 4
	confidenceRatioBonus    = 10
	confidenceRatioMinComps = 3
	confidenceTrendPenalty  = 10
)

// Suggest derives a PricingSuggestion from the closed-sale subset.
// Returns nil when fewer than two sales carry a positive price — an
// explicit "unavailable", never a degenerate range. The result is
// recomputed fresh on every call; nothing is cached across filter
// changes.
func Suggest(closedSales []*models.PropertyRecord, opts Options) *models.PricingSuggestion {
	priced := make([]*models.PropertyRecord, 0, len(closedSales))
	prices := make([]float64, 0, len(closedSales))
	for _, rec := range closedSales {
		if rec == nil {
			continue
		}
		if p := normalize.Price(rec); p > 0 {
			priced = append(priced, rec)
			prices = append(prices, p)
		}
	}
	if len(priced) < minClosedSales {
		return nil
	}

	sort.Float64s(prices)
	q1 := prices[quartileIndex(len(prices), 0.25)]
	q3 := prices[quartileIndex(len(prices), 0.75)]

	trendPct := marketTrendPct(priced)
	capped := trendPct / 100
	limit := opts.TrendCapPct / 100
	if capped > limit {
		capped = limit
	} else if capped < -limit {
		capped = -limit
	}
	multiplier := 1 + capped

	low := math.Round(q1 * multiplier)
	high := math.Round(q3 * multiplier)
	mid := math.Round((q1 + q3) / 2 * multiplier)

	suggestion := &models.PricingSuggestion{
		SuggestedLow:             low,
		SuggestedMid:             mid,
		SuggestedHigh:            high,
		QuickSalePrice:           math.Round(low * quickSaleFactor),
		MaxValuePrice:            math.Round(high * maxValueFactor),
		MarketTrendAdjustmentPct: trendPct,
		CompsAnalyzed:            len(priced),
		PriceRange:               models.Range{Min: prices[0], Max: prices[len(prices)-1]},
	}

	ppsfSamples := pricePerSqFtSamples(priced)
	suggestion.AvgPricePerSqFt = stats.Mean(ppsfSamples)

	ratioSamples := listToSaleSamples(priced)
	suggestion.AvgListToSaleRatioPct = stats.Mean(ratioSamples)

	domSamples := daysOnMarketSamples(priced)
	suggestion.AvgDaysOnMarket = stats.Mean(domSamples)

	suggestion.MarketCondition = models.PaceBalanced
	if suggestion.AvgDaysOnMarket != nil {
		switch {
		case *suggestion.AvgDaysOnMarket < opts.HotMaxDOM:
			suggestion.MarketCondition = models.PaceHot
		case *suggestion.AvgDaysOnMarket > opts.SlowMinDOM:
			suggestion.MarketCondition = models.PaceSlow
		}
	}

	suggestion.ConfidenceScore = confidence(len(priced), len(ppsfSamples), len(ratioSamples), trendPct, opts)
	return suggestion
}

// quartileIndex maps a fraction onto the sorted-slice index, clamped to
// the valid range.
func quartileIndex(n int, fraction float64) int {
	idx := int(math.Floor(float64(n) * fraction))
	if idx < 0 {
		return 0
	}
	if idx > n-1 {
		return n - 1
	}
	return idx
}

// marketTrendPct splits dated sales into earlier and later halves by
// close date and returns the percent change between half averages.
// Fewer than three dated sales means no measurable trend: 0.
func marketTrendPct(priced []*models.PropertyRecord) float64 {
	dated := make([]*models.PropertyRecord, 0, len(priced))
	for _, rec := range priced {
		if rec.CloseDate != nil {
			dated = append(dated, rec)
		}
	}
	if len(dated) < minTrendSamples {
		return 0
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].CloseDate.Before(*dated[j].CloseDate)
	})

	half := len(dated) / 2
	earlier := stats.Mean(closePrices(dated[:half]))
	later := stats.Mean(closePrices(dated[half:]))
	if earlier == nil || later == nil || *earlier <= 0 {
		return 0
	}
	return (*later - *earlier) / *earlier * 100
}

func closePrices(records []*models.PropertyRecord) []float64 {
	prices := make([]float64, 0, len(records))
	for _, rec := range records {
		if p := normalize.Price(rec); p > 0 {
			prices = append(prices, p)
		}
	}
	return prices
}

func pricePerSqFtSamples(records []*models.PropertyRecord) []float64 {
	samples := make([]float64, 0, len(records))
	for _, rec := range records {
		price := normalize.Price(rec)
		size := normalize.LivingAreaSqFt(rec)
		if price > 0 && size > 0 {
			samples = append(samples, price/size)
		}
	}
	return samples
}

func listToSaleSamples(records []*models.PropertyRecord) []float64 {
	samples := make([]float64, 0, len(records))
	for _, rec := range records {
		if rec.ListPrice == nil || *rec.ListPrice <= 0 {
			continue
		}
		if price := normalize.Price(rec); price > 0 {
			samples = append(samples, price / *rec.ListPrice*100)
		}
	}
	return samples
}

func daysOnMarketSamples(records []*models.PropertyRecord) []float64 {
	samples := make([]float64, 0, len(records))
	for _, rec := range records {
		if rec.DaysOnMarket != nil && *rec.DaysOnMarket > 0 {
			samples = append(samples, float64(*rec.DaysOnMarket))
		}
	}
	return samples
}

func confidence(comps, ppsfCount, ratioCount int, trendPct float64, opts Options) int {
	score := confidenceBase

	perComp := comps * confidencePerComp
	if perComp > confidencePerCompCap {
		perComp = confidencePerCompCap
	}
	score += perComp

	if ppsfCount >= confidencePPSFMinComps {
		score += confidencePPSFBonus
	}
	if ratioCount >= confidenceRatioMinComps {
		score += confidenceRatioBonus
	}
	if math.Abs(trendPct) > opts.TrendCapPct {
		score -= confidenceTrendPenalty
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
