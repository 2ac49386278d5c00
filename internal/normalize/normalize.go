// Package normalize maps the feed-dependent fields of a property record
// onto canonical numeric concepts. Each concept has one fixed precedence
// chain over the alternative field names the MLS feeds use; the first
// usable value wins. Every function is pure, never errors, and degrades
// to 0 or nil when a record carries none of the candidate fields.
package normalize

import (
	"math"

	"compscope/server/internal/models"
)

// SqFtPerAcre converts lot sizes reported in square feet.
const SqFtPerAcre = 43560.0

// Normalized is the canonical numeric view of one record.
type Normalized struct {
	Price        float64  `json:"price"`
	SizeSqFt     float64  `json:"size_sqft"`
	Acres        *float64 `json:"acres"`
	PricePerSqFt *float64 `json:"price_per_sqft"`
}

// Normalize resolves every canonical concept for one record.
func Normalize(rec *models.PropertyRecord) Normalized {
	return Normalized{
		Price:        Price(rec),
		SizeSqFt:     LivingAreaSqFt(rec),
		Acres:        LotAcres(rec),
		PricePerSqFt: PricePerSqFt(rec),
	}
}

// Price returns the record's effective price: the close price (or its
// alternate sold-price column) when the listing is Closed, the list
// price otherwise. Returns 0 when no price is present.
func Price(rec *models.PropertyRecord) float64 {
	if rec == nil {
		return 0
	}
	if rec.Status == models.StatusClosed {
		if v := positive(rec.ClosePrice); v > 0 {
			return v
		}
		if v := positive(rec.SoldPrice); v > 0 {
			return v
		}
	}
	if v := positive(rec.ListPrice); v > 0 {
		return v
	}
	// Closed records from feeds that only report a sale figure.
	if v := positive(rec.ClosePrice); v > 0 {
		return v
	}
	return positive(rec.SoldPrice)
}

// LivingAreaSqFt returns the interior size. Lot size is never a
// fallback here.
func LivingAreaSqFt(rec *models.PropertyRecord) float64 {
	if rec == nil {
		return 0
	}
	return positive(rec.LivingArea)
}

// LotAcres resolves the lot size in acres. Precedence: explicit acres
// field, the nested lot object's acres, the generic acres column, lot
// square footage divided by 43,560, then the alternate square-footage
// column divided by 43,560. The first positive result wins; nil means
// no candidate produced one.
func LotAcres(rec *models.PropertyRecord) *float64 {
	if rec == nil {
		return nil
	}
	candidates := []*float64{rec.LotSizeAcres, nil, rec.Acres}
	if rec.Lot != nil {
		candidates[1] = rec.Lot.Acres
	}
	for _, c := range candidates {
		if v := positive(c); v > 0 {
			out := v
			return &out
		}
	}
	for _, sqft := range []*float64{rec.LotSizeSquareFeet, rec.LotSizeArea} {
		if v := positive(sqft); v > 0 {
			out := v / SqFtPerAcre
			return &out
		}
	}
	return nil
}

// PricePerSqFt resolves dollars per square foot of living area. An
// explicit positive precomputed field wins; otherwise price divided by
// size, rounded to the nearest dollar. A result of zero or less is "not
// available", never a valid zero.
func PricePerSqFt(rec *models.PropertyRecord) *float64 {
	if rec == nil {
		return nil
	}
	if v := positive(rec.PricePerSqFt); v > 0 {
		out := v
		return &out
	}
	price := Price(rec)
	size := LivingAreaSqFt(rec)
	if price <= 0 || size <= 0 {
		return nil
	}
	ppsf := math.Round(price / size)
	if ppsf <= 0 {
		return nil
	}
	return &ppsf
}

// PricePerAcre resolves dollars per acre of lot, rounded to the nearest
// dollar. Nil when price or acreage is unavailable.
func PricePerAcre(rec *models.PropertyRecord) *float64 {
	price := Price(rec)
	acres := LotAcres(rec)
	if price <= 0 || acres == nil || *acres <= 0 {
		return nil
	}
	ppa := math.Round(price / *acres)
	if ppa <= 0 {
		return nil
	}
	return &ppa
}

// positive dereferences p, treating nil, NaN, infinities and
// non-positive values as 0.
func positive(p *float64) float64 {
	if p == nil {
		return 0
	}
	v := *p
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return v
}
