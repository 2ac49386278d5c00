package models

// Range is the min/max of a numeric series.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// StatMetric is the descriptive summary of one numeric series. It is
// always a concrete value: on empty or all-invalid input every field is
// zero. Consumers that need to tell "no data" from "zero" check the
// sample count.
type StatMetric struct {
	Range   Range   `json:"range"`
	Average float64 `json:"average"`
	Median  float64 `json:"median"`
	Count   int     `json:"count"`
}

// RegressionResult is a least-squares line. A nil *RegressionResult
// means the fit is undefined (fewer than two distinct x-values).
type RegressionResult struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// MarketCondition is the three-way supply/demand classification derived
// from months of inventory.
type MarketCondition string

const (
	SellersMarket  MarketCondition = "Seller's Market"
	BalancedMarket MarketCondition = "Balanced"
	BuyersMarket   MarketCondition = "Buyer's Market"
)

// MarketConditions summarizes liquidity for the active/closed mix.
// MonthsOfInventory is nil when the absorption rate is zero; rendering
// layers show "N/A", never 0.
type MarketConditions struct {
	AbsorptionRate    float64         `json:"absorption_rate"`
	MonthsOfInventory *float64        `json:"months_of_inventory"`
	Condition         MarketCondition `json:"condition"`
	GaugePosition     float64         `json:"gauge_position"`
	ActiveCount       int             `json:"active_count"`
	ClosedCount       int             `json:"closed_count"`
}

// WindowStats is one trailing 12-month window of closed sales.
type WindowStats struct {
	Count       int     `json:"count"`
	AvgPrice    float64 `json:"avg_price"`
	MedianPrice float64 `json:"median_price"`
}

// YoYComparison compares the current trailing 12 months of closed sales
// against the prior 12. Change percentages are nil when either window
// has no qualifying sales.
type YoYComparison struct {
	Current         WindowStats `json:"current"`
	Prior           WindowStats `json:"prior"`
	AvgChangePct    *float64    `json:"avg_change_pct"`
	MedianChangePct *float64    `json:"median_change_pct"`
}

// PaceCondition rates how quickly closed comparables moved.
type PaceCondition string

const (
	PaceHot      PaceCondition = "hot"
	PaceBalanced PaceCondition = "balanced"
	PaceSlow     PaceCondition = "slow"
)

// PricingSuggestion is the heuristic list-price recommendation built
// from closed comparables. It is recomputed from the current included
// subset on every call; a nil *PricingSuggestion means fewer than two
// priced closed sales were available.
type PricingSuggestion struct {
	SuggestedLow  float64 `json:"suggested_low"`
	SuggestedMid  float64 `json:"suggested_mid"`
	SuggestedHigh float64 `json:"suggested_high"`

	QuickSalePrice float64 `json:"quick_sale_price"`
	MaxValuePrice  float64 `json:"max_value_price"`

	AvgPricePerSqFt          *float64 `json:"avg_price_per_sqft"`
	MarketTrendAdjustmentPct float64  `json:"market_trend_adjustment_pct"`
	AvgListToSaleRatioPct    *float64 `json:"avg_list_to_sale_ratio_pct"`
	AvgDaysOnMarket          *float64 `json:"avg_days_on_market"`

	MarketCondition PaceCondition `json:"market_condition"`
	ConfidenceScore int           `json:"confidence_score"`
	CompsAnalyzed   int           `json:"comps_analyzed"`
	PriceRange      Range         `json:"price_range"`
}

// TrendPoint is one calendar month of closed sales.
type TrendPoint struct {
	MonthKey     string  `json:"month_key"`
	AveragePrice float64 `json:"average_price"`
	SaleCount    int     `json:"sale_count"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`
}
