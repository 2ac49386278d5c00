// Package filter turns the full comparable set plus the caller-owned
// FilterState into the included subset every downstream computation
// consumes. Resolution is deterministic: the same records and state
// always produce the same subset, in input order.
package filter

import (
	"strings"

	"compscope/server/internal/models"
)

// RentalPredicate classifies a record as a rental/lease listing. The
// rule belongs to the caller; the engine only applies it. A nil
// predicate classifies nothing as a rental.
type RentalPredicate func(*models.PropertyRecord) bool

// DefaultRentalPredicate flags the lease property types the common
// feeds use. Callers with feed-specific conventions supply their own.
func DefaultRentalPredicate(rec *models.PropertyRecord) bool {
	if rec == nil {
		return false
	}
	t := strings.ToLower(rec.PropertyType)
	return strings.Contains(t, "rental") || strings.Contains(t, "lease")
}

// ResolveIncluded applies the status partition and the exclusion set.
// A Status of "all" (or empty) bypasses partitioning. Exclusions are
// subtracted regardless of the partition. Rentals are dropped from the
// Closed partition only; they may still appear under "all".
func ResolveIncluded(records []*models.PropertyRecord, state models.FilterState, isRental RentalPredicate) []*models.PropertyRecord {
	included := make([]*models.PropertyRecord, 0, len(records))
	partition := state.Status
	for _, rec := range records {
		if rec == nil || state.IsExcluded(rec.ID) {
			continue
		}
		if partition != "" && partition != models.FilterAll {
			if string(rec.Status) != string(partition) {
				continue
			}
			if partition == models.StatusFilter(models.StatusClosed) && isRental != nil && isRental(rec) {
				continue
			}
		}
		included = append(included, rec)
	}
	return included
}

// ClosedSales resolves the closed-sale subset used for pricing and
// trend analysis: exclusions subtracted, rentals always dropped,
// independent of the state's selected partition.
func ClosedSales(records []*models.PropertyRecord, state models.FilterState, isRental RentalPredicate) []*models.PropertyRecord {
	closed := make([]*models.PropertyRecord, 0, len(records))
	for _, rec := range records {
		if rec == nil || rec.Status != models.StatusClosed {
			continue
		}
		if state.IsExcluded(rec.ID) {
			continue
		}
		if isRental != nil && isRental(rec) {
			continue
		}
		closed = append(closed, rec)
	}
	return closed
}

// CountByStatus tallies the resolved records per status after
// exclusions, for the market classifier's active/closed inputs.
func CountByStatus(records []*models.PropertyRecord, state models.FilterState) map[models.RecordStatus]int {
	counts := make(map[models.RecordStatus]int, len(models.ValidStatuses))
	for _, rec := range records {
		if rec == nil || state.IsExcluded(rec.ID) {
			continue
		}
		counts[rec.Status]++
	}
	return counts
}
