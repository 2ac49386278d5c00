package models

import "time"

// RecordStatus is the listing status as reported by the MLS feed.
type RecordStatus string

const (
	StatusActive              RecordStatus = "Active"
	StatusActiveUnderContract RecordStatus = "Active Under Contract"
	StatusPending             RecordStatus = "Pending"
	StatusClosed              RecordStatus = "Closed"
)

// ValidStatuses lists every status the engine partitions on.
var ValidStatuses = []RecordStatus{
	StatusActive,
	StatusActiveUnderContract,
	StatusPending,
	StatusClosed,
}

// LotDetails is the nested lot object some feeds deliver instead of
// flat lot-size fields.
type LotDetails struct {
	Acres      *float64 `json:"acres,omitempty"`
	SquareFeet *float64 `json:"square_feet,omitempty"`
}

// PropertyRecord is a subject or comparable listing. Field values arrive
// under different names depending on the originating feed, so several
// concepts carry more than one column; the normalize package resolves
// them to one canonical value each. Optional numerics are pointers: nil
// means the feed did not supply the field, which is not the same as 0.
//
// Records are immutable once constructed; the engine never writes to
// them. DistanceMiles is the one annotation filled in by the loader
// before a record reaches the engine.
type PropertyRecord struct {
	ID           string       `json:"id" gorm:"primaryKey"`
	SubjectID    string       `json:"subject_id,omitempty" gorm:"index"`
	Status       RecordStatus `json:"status"`
	PropertyType string       `json:"property_type,omitempty"`
	Address      string       `json:"address,omitempty"`

	ListPrice  *float64 `json:"list_price,omitempty"`
	ClosePrice *float64 `json:"close_price,omitempty"`
	SoldPrice  *float64 `json:"sold_price,omitempty"`

	LivingArea *float64 `json:"living_area,omitempty"`

	LotSizeAcres      *float64    `json:"lot_size_acres,omitempty"`
	Lot               *LotDetails `json:"lot,omitempty" gorm:"-"`
	Acres             *float64    `json:"acres,omitempty"`
	LotSizeSquareFeet *float64    `json:"lot_size_square_feet,omitempty"`
	LotSizeArea       *float64    `json:"lot_size_area,omitempty"`

	PricePerSqFt *float64 `json:"price_per_sqft,omitempty"`

	Bedrooms       *int     `json:"bedrooms,omitempty"`
	BathroomsTotal *float64 `json:"bathrooms_total,omitempty"`
	YearBuilt      *int     `json:"year_built,omitempty"`
	DaysOnMarket   *int     `json:"days_on_market,omitempty"`

	ListDate  *time.Time `json:"list_date,omitempty"`
	CloseDate *time.Time `json:"close_date,omitempty"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	// Distance from the report's subject property, computed at load
	// time, never stored.
	DistanceMiles *float64 `json:"distance_miles,omitempty" gorm:"-"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// StatusFilter selects one status partition, or "all" to bypass
// partitioning.
type StatusFilter string

// FilterAll bypasses status partitioning.
const FilterAll StatusFilter = "all"

// FilterState is the caller-owned view state: which status partition is
// selected and which comparables the user has toggled off. The engine
// receives it by value on every call and never mutates it.
type FilterState struct {
	Status   StatusFilter    `json:"status"`
	Excluded map[string]bool `json:"excluded,omitempty"`
}

// IsExcluded reports whether the record with the given identifier has
// been toggled off.
func (f FilterState) IsExcluded(id string) bool {
	return f.Excluded[id]
}
