package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compscope/server/internal/models"
)

func TestClassify_Balanced(t *testing.T) {
	got := Classify(10, 12, 6)

	assert.Equal(t, 2.0, got.AbsorptionRate)
	require.NotNil(t, got.MonthsOfInventory)
	assert.Equal(t, 5.0, *got.MonthsOfInventory)
	assert.Equal(t, models.BalancedMarket, got.Condition)
	// 5 months sits dead center of the balanced band.
	assert.InDelta(t, 50.0, got.GaugePosition, 1e-9)
}

func TestClassify_SellersMarket(t *testing.T) {
	// 6 active, 24 closed over 6 months: 1.5 months of inventory.
	got := Classify(6, 24, 6)

	require.NotNil(t, got.MonthsOfInventory)
	assert.InDelta(t, 1.5, *got.MonthsOfInventory, 1e-9)
	assert.Equal(t, models.SellersMarket, got.Condition)
	assert.GreaterOrEqual(t, got.GaugePosition, 10.0)
	assert.Less(t, got.GaugePosition, 25.0)
}

func TestClassify_BuyersMarket(t *testing.T) {
	// 40 active, 30 closed over 6 months: 8 months of inventory.
	got := Classify(40, 30, 6)

	require.NotNil(t, got.MonthsOfInventory)
	assert.InDelta(t, 8.0, *got.MonthsOfInventory, 1e-9)
	assert.Equal(t, models.BuyersMarket, got.Condition)
	assert.Greater(t, got.GaugePosition, 75.0)
	assert.LessOrEqual(t, got.GaugePosition, 90.0)
}

func TestClassify_GaugeSaturates(t *testing.T) {
	got := Classify(500, 6, 6)
	assert.Equal(t, 90.0, got.GaugePosition)
}

func TestClassify_NoClosedSales(t *testing.T) {
	got := Classify(15, 0, 6)

	assert.Zero(t, got.AbsorptionRate)
	assert.Nil(t, got.MonthsOfInventory) // "N/A", not 0
	assert.Equal(t, models.BuyersMarket, got.Condition)

	empty := Classify(0, 0, 6)
	assert.Nil(t, empty.MonthsOfInventory)
	assert.Equal(t, models.BalancedMarket, empty.Condition)
}

func TestClassify_WindowAffectsAbsorption(t *testing.T) {
	got := Classify(10, 12, 12)
	assert.Equal(t, 1.0, got.AbsorptionRate)
	require.NotNil(t, got.MonthsOfInventory)
	assert.Equal(t, 10.0, *got.MonthsOfInventory)
	assert.Equal(t, models.BuyersMarket, got.Condition)
}

func closedSale(id string, price float64, closed time.Time) *models.PropertyRecord {
	return &models.PropertyRecord{
		ID:         id,
		Status:     models.StatusClosed,
		ClosePrice: &price,
		CloseDate:  &closed,
	}
}

func TestCompareYearOverYear(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	sales := []*models.PropertyRecord{
		closedSale("cur1", 330000, now.AddDate(0, -2, 0)),
		closedSale("cur2", 310000, now.AddDate(0, -8, 0)),
		closedSale("pri1", 290000, now.AddDate(-1, -3, 0)),
		closedSale("pri2", 310000, now.AddDate(-1, -6, 0)),
		// Too old for either window.
		closedSale("old", 500000, now.AddDate(-3, 0, 0)),
	}

	got := CompareYearOverYear(sales, now)

	assert.Equal(t, 2, got.Current.Count)
	assert.Equal(t, 2, got.Prior.Count)
	assert.InDelta(t, 320000, got.Current.AvgPrice, 1e-9)
	assert.InDelta(t, 300000, got.Prior.AvgPrice, 1e-9)

	require.NotNil(t, got.AvgChangePct)
	assert.InDelta(t, 6.666666667, *got.AvgChangePct, 1e-6)
	require.NotNil(t, got.MedianChangePct)
	assert.InDelta(t, 6.666666667, *got.MedianChangePct, 1e-6)
}

func TestCompareYearOverYear_EmptyWindowMeansNil(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	// Sales only in the current window: change is undefined, not 0.
	got := CompareYearOverYear([]*models.PropertyRecord{
		closedSale("cur1", 330000, now.AddDate(0, -2, 0)),
	}, now)
	assert.Nil(t, got.AvgChangePct)
	assert.Nil(t, got.MedianChangePct)
	assert.Equal(t, 1, got.Current.Count)
	assert.Equal(t, 0, got.Prior.Count)

	// Undated or unpriced sales never qualify.
	price := 100000.0
	got = CompareYearOverYear([]*models.PropertyRecord{
		{ID: "x", Status: models.StatusClosed, ClosePrice: &price},
	}, now)
	assert.Equal(t, 0, got.Current.Count)
	assert.Nil(t, got.AvgChangePct)
}
