package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"compscope/server/internal/models"
)

func sampleRecords() []*models.PropertyRecord {
	return []*models.PropertyRecord{
		{ID: "a1", Status: models.StatusActive},
		{ID: "a2", Status: models.StatusActive},
		{ID: "p1", Status: models.StatusPending},
		{ID: "u1", Status: models.StatusActiveUnderContract},
		{ID: "c1", Status: models.StatusClosed},
		{ID: "c2", Status: models.StatusClosed},
		{ID: "r1", Status: models.StatusClosed, PropertyType: "Residential Lease"},
	}
}

func TestResolveIncluded_StatusPartitions(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		status  models.StatusFilter
		wantIDs []string
	}{
		{models.FilterAll, []string{"a1", "a2", "p1", "u1", "c1", "c2", "r1"}},
		{"", []string{"a1", "a2", "p1", "u1", "c1", "c2", "r1"}},
		{models.StatusFilter(models.StatusActive), []string{"a1", "a2"}},
		{models.StatusFilter(models.StatusPending), []string{"p1"}},
		{models.StatusFilter(models.StatusActiveUnderContract), []string{"u1"}},
		// Rentals never appear in the Closed partition.
		{models.StatusFilter(models.StatusClosed), []string{"c1", "c2"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			got := ResolveIncluded(records, models.FilterState{Status: tt.status}, DefaultRentalPredicate)
			ids := make([]string, 0, len(got))
			for _, rec := range got {
				ids = append(ids, rec.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestResolveIncluded_ExclusionsApplyToEveryPartition(t *testing.T) {
	records := sampleRecords()
	state := models.FilterState{
		Status:   models.FilterAll,
		Excluded: map[string]bool{"a1": true, "c2": true},
	}

	got := ResolveIncluded(records, state, DefaultRentalPredicate)
	for _, rec := range got {
		assert.NotEqual(t, "a1", rec.ID)
		assert.NotEqual(t, "c2", rec.ID)
	}
	assert.Len(t, got, 5)
}

func TestResolveIncluded_Idempotent(t *testing.T) {
	records := sampleRecords()
	state := models.FilterState{
		Status:   models.StatusFilter(models.StatusClosed),
		Excluded: map[string]bool{"c1": true},
	}

	first := ResolveIncluded(records, state, DefaultRentalPredicate)
	second := ResolveIncluded(records, state, DefaultRentalPredicate)
	assert.Equal(t, first, second)
}

func TestClosedSales_IgnoresSelectedPartition(t *testing.T) {
	records := sampleRecords()
	// Even while the UI shows actives, pricing still sees closed sales.
	state := models.FilterState{Status: models.StatusFilter(models.StatusActive)}

	got := ClosedSales(records, state, DefaultRentalPredicate)
	assert.Len(t, got, 2)
	for _, rec := range got {
		assert.Equal(t, models.StatusClosed, rec.Status)
	}
}

func TestClosedSales_NilPredicateKeepsRentals(t *testing.T) {
	records := sampleRecords()
	got := ClosedSales(records, models.FilterState{}, nil)
	assert.Len(t, got, 3)
}

func TestCountByStatus(t *testing.T) {
	records := sampleRecords()
	state := models.FilterState{Excluded: map[string]bool{"a2": true}}

	counts := CountByStatus(records, state)
	assert.Equal(t, 1, counts[models.StatusActive])
	assert.Equal(t, 1, counts[models.StatusPending])
	assert.Equal(t, 1, counts[models.StatusActiveUnderContract])
	assert.Equal(t, 3, counts[models.StatusClosed])
}

func TestDefaultRentalPredicate(t *testing.T) {
	assert.True(t, DefaultRentalPredicate(&models.PropertyRecord{PropertyType: "Residential Lease"}))
	assert.True(t, DefaultRentalPredicate(&models.PropertyRecord{PropertyType: "Rental"}))
	assert.False(t, DefaultRentalPredicate(&models.PropertyRecord{PropertyType: "Residential"}))
	assert.False(t, DefaultRentalPredicate(nil))
}
